// Package validation provides field-level validation for coursework records.
// Every model exposes a Validate method that collects Violations with the helpers
// in this package; an empty result means the record may be persisted.
package validation

import (
	"fmt"
	"strings"
	"time"
)

// Reasons attached to a Violation.
const (
	// ReasonPresence is used when a required field is blank, zero or nil.
	ReasonPresence = "presence"

	// ReasonExists is used when a reference points at a record that does not exist.
	ReasonExists = "exists"

	// ReasonReferenced is used when a delete is refused because other rows still point at the record.
	ReasonReferenced = "referenced"
)

// Violation names a single field that failed validation and the rule it broke.
type Violation struct {
	Field  string `json:"field"`  // Column name, e.g. "start_date"
	Reason string `json:"reason"` // Rule name, e.g. "presence"
}

// String renders the violation the way it is shown on forms ("name can't be blank").
func (v Violation) String() string {
	switch v.Reason {
	case ReasonPresence:
		return fmt.Sprintf("%s can't be blank", v.Field)
	case ReasonExists:
		return fmt.Sprintf("%s must exist", v.Field)
	case ReasonReferenced:
		return fmt.Sprintf("%s is still referenced by other records", v.Field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", v.Field, v.Reason)
	}
}

// Errors is the set of violations produced by validating one record.
// The zero value is an empty, valid result.
type Errors []Violation

// Error implements the error interface so a non-empty set can travel as an error.
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.String())
	}
	return strings.Join(msgs, ", ")
}

// Valid reports whether no violations were collected.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Has reports whether field has a violation with the given reason.
func (e Errors) Has(field, reason string) bool {
	for _, v := range e {
		if v.Field == field && v.Reason == reason {
			return true
		}
	}
	return false
}

// On returns the messages recorded for field, in insertion order.
func (e Errors) On(field string) []string {
	var msgs []string
	for _, v := range e {
		if v.Field == field {
			msgs = append(msgs, v.String())
		}
	}
	return msgs
}

// Add appends a violation.
func (e *Errors) Add(field, reason string) {
	*e = append(*e, Violation{Field: field, Reason: reason})
}

// RequireString records a presence violation when value is empty or whitespace only.
func (e *Errors) RequireString(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, ReasonPresence)
	}
}

// RequireDate records a presence violation when value is nil or the zero time.
func (e *Errors) RequireDate(field string, value *time.Time) {
	if value == nil || value.IsZero() {
		e.Add(field, ReasonPresence)
	}
}

// RequireID records a presence violation when id is not a positive key.
func (e *Errors) RequireID(field string, id int) {
	if id <= 0 {
		e.Add(field, ReasonPresence)
	}
}
