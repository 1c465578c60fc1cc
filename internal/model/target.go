package model

import "fmt"

// TargetKind distinguishes domain targets from handle targets.
type TargetKind string

const (
	// KindDomain targets are top-level domains such as "com" or "com.br".
	KindDomain TargetKind = "domain"

	// KindHandle targets are profile platforms such as "instagram".
	KindHandle TargetKind = "handle"
)

// Valid reports whether k is a known target kind.
func (k TargetKind) Valid() bool {
	return k == KindDomain || k == KindHandle
}

// Target is something a candidate name is checked against.
type Target struct {
	// Kind is either KindDomain or KindHandle.
	Kind TargetKind `json:"kind"`

	// Name is the TLD (without leading dot) for domains or the platform
	// identifier for handles.
	Name string `json:"name"`
}

// DomainTarget returns a domain target for the given TLD.
func DomainTarget(tld string) Target {
	return Target{Kind: KindDomain, Name: tld}
}

// HandleTarget returns a handle target for the given platform.
func HandleTarget(platform string) Target {
	return Target{Kind: KindHandle, Name: platform}
}

// Label returns the column label used by reports: ".com" for domains and
// "@instagram" for handles.
func (t Target) Label() string {
	if t.Kind == KindDomain {
		return "." + t.Name
	}
	return "@" + t.Name
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return fmt.Sprintf("%s:%s", t.Kind, t.Name)
}
