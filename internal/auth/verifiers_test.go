package auth_test

import (
	"testing"

	"pedalboard/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewVerifierSet_SkipsMalformedIDs(t *testing.T) {
	allowed := uuid.New()
	other := uuid.New()

	set := auth.NewVerifierSet([]string{allowed.String(), "not-a-uuid", ""})

	assert.True(t, set.Allows(allowed))
	assert.False(t, set.Allows(other))
	assert.Len(t, set, 1)
}

func TestVerifierSet_EmptyDeniesEveryone(t *testing.T) {
	set := auth.NewVerifierSet(nil)

	assert.False(t, set.Allows(uuid.New()))
}
