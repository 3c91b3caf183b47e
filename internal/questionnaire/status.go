// Package questionnaire implements the multi-section questionnaire
// aggregate: its publication lifecycle, owned section/question records,
// usage and feedback metrics, and the API boundary converters.
package questionnaire

import (
	dErrors "agrisurvey/pkg/domain-errors"
)

// Status is the questionnaire publication state.
//
// Transitions are one-directional along
// brouillon → en_revision → valide → publie, with two exits: archive is
// reachable from any non-archived state and suspendu only from a usable
// state (valide or publie). archive is terminal.
type Status string

const (
	StatusBrouillon  Status = "brouillon"
	StatusEnRevision Status = "en_revision"
	StatusValide     Status = "valide"
	StatusPublie     Status = "publie"
	StatusArchive    Status = "archive"
	StatusSuspendu   Status = "suspendu"
)

var validStatuses = map[Status]bool{
	StatusBrouillon:  true,
	StatusEnRevision: true,
	StatusValide:     true,
	StatusPublie:     true,
	StatusArchive:    true,
	StatusSuspendu:   true,
}

// ParseStatus validates external input against the status enum.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown questionnaire status %q", s)
	}
	return status, nil
}

// IsValid checks membership in the status enum.
func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo enforces the one-directional lifecycle.
func (s Status) CanTransitionTo(target Status) bool {
	if s == StatusArchive {
		return false
	}
	if target == StatusArchive {
		return true
	}
	switch target {
	case StatusEnRevision:
		return s == StatusBrouillon
	case StatusValide:
		return s == StatusEnRevision
	case StatusPublie:
		return s == StatusValide
	case StatusSuspendu:
		return s == StatusValide || s == StatusPublie
	default:
		return false
	}
}
