package domain

import (
	"regexp"
	"strings"

	dErrors "agrisurvey/pkg/domain-errors"
)

// maxEmailLength follows RFC 5321's path length limit.
const maxEmailLength = 254

// emailPattern is a conservative RFC-5322-style check. It deliberately
// rejects quoted local parts and address literals; field agents type these
// by hand and anything exotic is a typo in practice.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Email is an immutable, self-validating address. The zero value represents
// an absent email; a non-zero value is always normalized and well-formed.
// Changing an email means constructing a new value.
type Email struct {
	value string
}

// NewEmail normalizes (trim, lowercase) and validates raw. Construct at
// trust boundaries; direct struct literals bypass validation and are not
// possible outside this package.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, dErrors.New(dErrors.CodeValidation, "email cannot be empty")
	}
	if len(normalized) > maxEmailLength {
		return Email{}, dErrors.Newf(dErrors.CodeValidation, "email exceeds %d characters", maxEmailLength)
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, dErrors.New(dErrors.CodeValidation, "email format is invalid")
	}
	return Email{value: normalized}, nil
}

// Value returns the normalized address, or "" for the zero value.
func (e Email) Value() string {
	return e.value
}

// String implements fmt.Stringer.
func (e Email) String() string {
	return e.value
}

// IsZero reports whether the email is absent.
func (e Email) IsZero() bool {
	return e.value == ""
}

// LocalPart returns the substring before the @.
func (e Email) LocalPart() string {
	at := strings.LastIndexByte(e.value, '@')
	if at < 0 {
		return ""
	}
	return e.value[:at]
}

// Domain returns the substring after the @.
func (e Email) Domain() string {
	at := strings.LastIndexByte(e.value, '@')
	if at < 0 {
		return ""
	}
	return e.value[at+1:]
}

// Equals compares by normalized value.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
