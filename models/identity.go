package models

import (
	"fmt"
	"strings"
	"time"
)

// IdentityKind distinguishes a provider-verified profile identifier from a
// locally generated stand-in.
type IdentityKind string

const (
	// IdentityResolved means the provider's identity endpoint returned the
	// profile identifier.
	IdentityResolved IdentityKind = "resolved"
	// IdentityPlaceholder means the identity endpoint did not return a usable
	// identifier and a local stand-in was generated. Posting still works with
	// a placeholder; identity-facing features do not.
	IdentityPlaceholder IdentityKind = "placeholder"
)

// Identity is the external LinkedIn profile identity of an employee.
type Identity struct {
	Kind IdentityKind `json:"kind"`
	ID   string       `json:"id"`
}

const placeholderIDPrefix = "temp_"

// NewResolvedIdentity wraps a provider-returned profile identifier.
func NewResolvedIdentity(profileID string) Identity {
	return Identity{Kind: IdentityResolved, ID: profileID}
}

// NewPlaceholderIdentity generates a stand-in profile identifier unique to
// this employee and attempt time.
func NewPlaceholderIdentity(employeeID string, at time.Time) Identity {
	return Identity{
		Kind: IdentityPlaceholder,
		ID:   fmt.Sprintf("%s%s_%d", placeholderIDPrefix, employeeID, at.UnixMilli()),
	}
}

// ParseIdentity recovers the identity tag from a stored profile identifier.
// Placeholder identifiers carry a recognizable prefix; everything else is
// treated as resolved.
func ParseIdentity(profileID string) Identity {
	if strings.HasPrefix(profileID, placeholderIDPrefix) {
		return Identity{Kind: IdentityPlaceholder, ID: profileID}
	}
	return Identity{Kind: IdentityResolved, ID: profileID}
}

// IsResolved reports whether the identity was verified by the provider.
func (i Identity) IsResolved() bool {
	return i.Kind == IdentityResolved
}

// URN renders the LinkedIn member URN used as the author of posts.
func (i Identity) URN() string {
	return "urn:li:person:" + i.ID
}

// ProfileURL derives the public profile URL from the identifier.
func (i Identity) ProfileURL() string {
	return "https://linkedin.com/in/" + i.ID
}
