package model

import (
	"encoding/json"
	"fmt"
)

// Status is the availability of a name on a single target.
//
// Design decision: Status is string-typed rather than iota-based because it
// is persisted in export files; the JSON form must stay readable and stable
// even if new statuses are added later.
type Status string

const (
	// StatusAvailable means the lookup positively indicated the name is free.
	StatusAvailable Status = "available"

	// StatusTaken means the lookup positively indicated the name is in use.
	StatusTaken Status = "taken"

	// StatusUnknown means the lookup could not decide, usually because of a
	// timeout or network error. Records with this status carry a Detail.
	StatusUnknown Status = "unknown"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusAvailable, StatusTaken, StatusUnknown}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusTaken, StatusUnknown:
		return true
	default:
		return false
	}
}

// String returns the status as stored in exports.
func (s Status) String() string {
	return string(s)
}

// Symbol returns a short marker used in tabular reports.
func (s Status) Symbol() string {
	switch s {
	case StatusAvailable:
		return "✅"
	case StatusTaken:
		return "❌"
	default:
		return "❔"
	}
}

// UnmarshalJSON rejects statuses outside the tri-state set.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st := Status(raw)
	if !st.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	*s = st
	return nil
}
