package model

import (
	"errors"
	"fmt"
	"time"
)

// Record is one availability lookup outcome for a (name, target) pair.
type Record struct {
	// Name is the candidate name as supplied by the user.
	Name string `json:"name"`

	// Kind is the kind of target that was checked.
	Kind TargetKind `json:"kind"`

	// Target is the TLD or platform identifier.
	Target string `json:"target"`

	// Status is the tri-state lookup result.
	Status Status `json:"status"`

	// Detail explains the status. It is always set for StatusUnknown and
	// may hold extra context (e.g. "confirmed by whois") otherwise.
	Detail string `json:"detail,omitempty"`

	// CheckedAt is when the lookup finished.
	CheckedAt time.Time `json:"checked_at"`
}

// NewUnknownRecord creates a record degraded to StatusUnknown.
// An empty detail is replaced by a generic message so that unknown records
// never lose their diagnostic text.
func NewUnknownRecord(name string, target Target, detail string) Record {
	if detail == "" {
		detail = "lookup failed without an error message"
	}
	return Record{
		Name:      name,
		Kind:      target.Kind,
		Target:    target.Name,
		Status:    StatusUnknown,
		Detail:    detail,
		CheckedAt: time.Now().UTC(),
	}
}

// TargetRef returns the record's target.
func (r Record) TargetRef() Target {
	return Target{Kind: r.Kind, Name: r.Target}
}

// Record validation errors.
var (
	// ErrEmptyName is returned for records without a name.
	ErrEmptyName = errors.New("record has an empty name")

	// ErrEmptyTarget is returned for records without a target.
	ErrEmptyTarget = errors.New("record has an empty target")

	// ErrInvalidKind is returned for records with an unknown target kind.
	ErrInvalidKind = errors.New("record has an invalid target kind")

	// ErrInvalidStatus is returned for records with a status outside the tri-state set.
	ErrInvalidStatus = errors.New("record has an invalid status")

	// ErrMissingDetail is returned for unknown records without an error detail.
	ErrMissingDetail = errors.New("unknown record has no error detail")
)

// Validate checks the record invariants.
func (r Record) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.Target == "" {
		return fmt.Errorf("%w (name %q)", ErrEmptyTarget, r.Name)
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
	}
	if r.Status == StatusUnknown && r.Detail == "" {
		return fmt.Errorf("%w (%s %s)", ErrMissingDetail, r.Name, r.TargetRef().Label())
	}
	return nil
}
