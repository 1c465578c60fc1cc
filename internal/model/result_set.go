package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the export schema version written by this build.
// Readers accept any version from 1 up to and including this one.
const SchemaVersion = 1

// Params records the inputs of a check run.
type Params struct {
	// Names are the candidate names in input order.
	Names []string `json:"names"`

	// TLDs are the domain targets in input order.
	TLDs []string `json:"tlds,omitempty"`

	// Handles are the platform targets in input order.
	Handles []string `json:"handles,omitempty"`

	// Timeout is the per-lookup timeout, formatted by time.Duration.String.
	Timeout string `json:"timeout,omitempty"`

	// Concurrency is the worker pool size used for the run.
	Concurrency int `json:"concurrency,omitempty"`

	// WhoisConfirm reports whether available domains were confirmed by WHOIS.
	WhoisConfirm bool `json:"whois_confirm,omitempty"`
}

// Targets returns the TLD and handle targets in record order.
func (p Params) Targets() []Target {
	targets := make([]Target, 0, len(p.TLDs)+len(p.Handles))
	for _, tld := range p.TLDs {
		targets = append(targets, DomainTarget(tld))
	}
	for _, platform := range p.Handles {
		targets = append(targets, HandleTarget(platform))
	}
	return targets
}

// ResultSet is the ordered output of one check run.
// It is the unit persisted to export files and to the run history.
type ResultSet struct {
	// SchemaVersion identifies the export layout.
	SchemaVersion int `json:"schema_version"`

	// ID uniquely identifies the run.
	ID string `json:"id"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `json:"created_at"`

	// Params are the inputs of the run.
	Params Params `json:"params"`

	// Records holds one entry per (name, target), name-major, in input order.
	Records []Record `json:"records"`

	// Checksum is the SHA3-256 digest of the records, set by the exporter.
	Checksum string `json:"checksum,omitempty"`
}

// NewResultSet creates an empty result set for the given parameters.
func NewResultSet(params Params) *ResultSet {
	return &ResultSet{
		SchemaVersion: SchemaVersion,
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Params:        params,
		Records:       make([]Record, 0),
	}
}

// ErrSchemaVersion is returned for result sets with an unsupported schema version.
var ErrSchemaVersion = errors.New("unsupported schema version")

// Validate checks the schema version and every record.
func (rs *ResultSet) Validate() error {
	if rs.SchemaVersion < 1 || rs.SchemaVersion > SchemaVersion {
		return fmt.Errorf("%w: %d (supported: 1..%d)", ErrSchemaVersion, rs.SchemaVersion, SchemaVersion)
	}
	for i, r := range rs.Records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// Group is the records of one name, in result-set order.
type Group struct {
	Name    string
	Records []Record
}

// Groups returns the records grouped by name. Groups appear in the order the
// name first appears, and records keep their relative order.
func (rs *ResultSet) Groups() []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, r := range rs.Records {
		i, ok := index[r.Name]
		if !ok {
			i = len(groups)
			index[r.Name] = i
			groups = append(groups, Group{Name: r.Name})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// Targets returns every distinct target in the order it first appears
// in the records. A set without records falls back to the targets its
// parameters requested.
func (rs *ResultSet) Targets() []Target {
	if len(rs.Records) == 0 {
		return rs.Params.Targets()
	}
	seen := make(map[Target]bool)
	targets := make([]Target, 0)
	for _, r := range rs.Records {
		t := r.TargetRef()
		if seen[t] {
			continue
		}
		seen[t] = true
		targets = append(targets, t)
	}
	return targets
}

// Summary counts records by status.
type Summary struct {
	Available int
	Taken     int
	Unknown   int
}

// Total returns the number of counted records.
func (s Summary) Total() int {
	return s.Available + s.Taken + s.Unknown
}

// Count returns the counter for a status.
func (s Summary) Count(status Status) int {
	switch status {
	case StatusAvailable:
		return s.Available
	case StatusTaken:
		return s.Taken
	default:
		return s.Unknown
	}
}

// Summary returns the status counters of the result set.
func (rs *ResultSet) Summary() Summary {
	var s Summary
	for _, r := range rs.Records {
		switch r.Status {
		case StatusAvailable:
			s.Available++
		case StatusTaken:
			s.Taken++
		default:
			s.Unknown++
		}
	}
	return s
}
