package question

import (
	"strconv"
	"time"

	"agrisurvey/internal/domain"
	dErrors "agrisurvey/pkg/domain-errors"
)

// ValidateResponse checks a candidate answer against the question's type and
// options. This is the question's contract surface: interview flow, imports,
// and API validation all go through it, so it accepts the loose value shapes
// JSON decoding produces (float64, string, bool, []any).
func (q *Question) ValidateResponse(response any) error {
	if isEmptyResponse(response) {
		if q.Obligatoire {
			return dErrors.Newf(dErrors.CodeValidation, "question %s requires a response", q.Code)
		}
		return nil
	}

	switch q.Type {
	case TypeText:
		return nil
	case TypeNumber:
		if _, ok := asNumber(response); !ok {
			return dErrors.Newf(dErrors.CodeValidation, "question %s expects a numeric response", q.Code)
		}
		return nil
	case TypeDate:
		return q.validateDateResponse(response)
	case TypeBoolean:
		return q.validateBooleanResponse(response)
	case TypeSingleChoice:
		return q.validateSingleChoice(response)
	case TypeMultiChoice:
		return q.validateMultiChoice(response)
	default:
		return dErrors.Newf(dErrors.CodeValidation, "unknown question type %q", q.Type)
	}
}

// NextQuestionCode resolves goto branching: it returns the goto code of the
// option whose valeur matches the response, or "" when no branching applies
// (no response, no matching option, or the option carries no goto).
func (q *Question) NextQuestionCode(response string) string {
	if response == "" {
		return ""
	}
	for _, opt := range q.Options {
		if opt.Valeur == response {
			return opt.Goto
		}
	}
	return ""
}

func (q *Question) validateDateResponse(response any) error {
	switch v := response.(type) {
	case time.Time:
		return nil
	case string:
		if _, err := domain.ParseDate(v); err != nil {
			return dErrors.Newf(dErrors.CodeValidation, "question %s expects a parseable date", q.Code)
		}
		return nil
	default:
		return dErrors.Newf(dErrors.CodeValidation, "question %s expects a parseable date", q.Code)
	}
}

func (q *Question) validateBooleanResponse(response any) error {
	switch v := response.(type) {
	case bool:
		return nil
	case string:
		if v == "true" || v == "false" {
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeValidation, "question %s expects a boolean response", q.Code)
}

func (q *Question) validateSingleChoice(response any) error {
	value, ok := asString(response)
	if !ok {
		return dErrors.Newf(dErrors.CodeValidation, "question %s expects an option value", q.Code)
	}
	for _, opt := range q.Options {
		if opt.Valeur == value {
			return nil
		}
	}
	return dErrors.Newf(dErrors.CodeValidation, "value %q is not an option of question %s", value, q.Code)
}

func (q *Question) validateMultiChoice(response any) error {
	values, ok := asStringSlice(response)
	if !ok {
		return dErrors.Newf(dErrors.CodeValidation, "question %s expects a list of option values", q.Code)
	}
	for _, value := range values {
		if err := q.validateSingleChoice(value); err != nil {
			return err
		}
	}
	return nil
}

func isEmptyResponse(response any) bool {
	switch v := response.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func asNumber(response any) (float64, bool) {
	switch v := response.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asString(response any) (string, bool) {
	s, ok := response.(string)
	return s, ok
}

func asStringSlice(response any) ([]string, bool) {
	switch v := response.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
