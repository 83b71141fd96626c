package auth

import "github.com/google/uuid"

// VerifierSet is the allow-list of identities permitted to flip
// verified flags. It is built once from configuration at startup and
// read-only afterwards.
type VerifierSet map[uuid.UUID]struct{}

// NewVerifierSet parses the configured id list, skipping entries
// that are not valid UUIDs.
func NewVerifierSet(ids []string) VerifierSet {
	set := make(VerifierSet, len(ids))
	for _, raw := range ids {
		if id, err := uuid.Parse(raw); err == nil {
			set[id] = struct{}{}
		}
	}
	return set
}

// Allows reports whether userID may flip verified flags.
func (s VerifierSet) Allows(userID uuid.UUID) bool {
	_, ok := s[userID]
	return ok
}
