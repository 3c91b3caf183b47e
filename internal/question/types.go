// Package question implements the standalone survey question entity: typed
// prompts, answer options, conditional goto branching, and reference-table
// bindings. Response validation lives here so interview flows and imports
// share one contract surface.
package question

import (
	dErrors "agrisurvey/pkg/domain-errors"
)

// Type discriminates how a question's response is captured and validated.
type Type string

const (
	TypeText         Type = "text"
	TypeNumber       Type = "number"
	TypeDate         Type = "date"
	TypeSingleChoice Type = "single_choice"
	TypeMultiChoice  Type = "multi_choice"
	TypeBoolean      Type = "boolean"
)

var validTypes = map[Type]bool{
	TypeText:         true,
	TypeNumber:       true,
	TypeDate:         true,
	TypeSingleChoice: true,
	TypeMultiChoice:  true,
	TypeBoolean:      true,
}

// ParseType validates external input against the type enum.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown question type %q", s)
	}
	return t, nil
}

// IsValid checks membership in the type enum.
func (t Type) IsValid() bool {
	return validTypes[t]
}

// IsChoice reports whether the type carries answer options.
func (t Type) IsChoice() bool {
	return t == TypeSingleChoice || t == TypeMultiChoice
}

func (t Type) String() string {
	return string(t)
}

// Option is one selectable answer. Goto names the question code the flow
// jumps to when this option is chosen; empty means sequential flow.
type Option struct {
	Libelle string `json:"libelle"`
	Valeur  string `json:"valeur"`
	Goto    string `json:"goto,omitempty"`
	Ordre   int    `json:"ordre"`
}

// ReferenceTable names an external lookup domain a question may bind to.
// The set is closed: answers bound to a table are validated against that
// table by the caller resolving the reference.
type ReferenceTable string

const (
	RefDistrict       ReferenceTable = "District"
	RefRegion         ReferenceTable = "Region"
	RefDepartement    ReferenceTable = "Departement"
	RefSouspref       ReferenceTable = "Souspref"
	RefVillage        ReferenceTable = "Village"
	RefPays           ReferenceTable = "Pays"
	RefNationalite    ReferenceTable = "Nationalite"
	RefNiveauScolaire ReferenceTable = "NiveauScolaire"
	RefPiece          ReferenceTable = "Piece"
	RefProducteur     ReferenceTable = "Producteur"
	RefParcelle       ReferenceTable = "Parcelle"
)

var validReferenceTables = map[ReferenceTable]bool{
	RefDistrict:       true,
	RefRegion:         true,
	RefDepartement:    true,
	RefSouspref:       true,
	RefVillage:        true,
	RefPays:           true,
	RefNationalite:    true,
	RefNiveauScolaire: true,
	RefPiece:          true,
	RefProducteur:     true,
	RefParcelle:       true,
}

// ParseReferenceTable validates external input against the whitelist.
func ParseReferenceTable(s string) (ReferenceTable, error) {
	rt := ReferenceTable(s)
	if !rt.IsValid() {
		return "", dErrors.Newf(dErrors.CodeValidation, "unknown reference table %q", s)
	}
	return rt, nil
}

// IsValid checks membership in the reference-table whitelist.
func (rt ReferenceTable) IsValid() bool {
	return validReferenceTables[rt]
}

func (rt ReferenceTable) String() string {
	return string(rt)
}
