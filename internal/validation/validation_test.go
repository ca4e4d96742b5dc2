package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("value", "field"))
	assert.Error(t, ValidateRequired("", "field"))
	assert.Error(t, ValidateRequired("   ", "field"))
}

func TestValidateLengths(t *testing.T) {
	assert.NoError(t, ValidateMinLength("abc", 3, "field"))
	assert.Error(t, ValidateMinLength("ab", 3, "field"))

	assert.NoError(t, ValidateMaxLength("abc", 3, "field"))
	assert.Error(t, ValidateMaxLength("abcd", 3, "field"))
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("a2c3e836-95a7-4a04-9a3f-6e9e40a2a2c1", "id"))
	assert.Error(t, ValidateUUID("not-a-uuid", "id"))
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("general-2026", "election_id"))
	assert.NoError(t, ValidateSlug("runoff", "election_id"))
	assert.Error(t, ValidateSlug("General 2026", "election_id"))
	assert.Error(t, ValidateSlug("-leading", "election_id"))
	assert.Error(t, ValidateSlug("", "election_id"))
}

func TestIsValidationError(t *testing.T) {
	err := ValidateRequired("", "field")
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsValidationError(errors.New("plain error")))
	assert.False(t, IsValidationError(nil))
}

func TestElectionValidation(t *testing.T) {
	v := ElectionValidation{}

	assert.NoError(t, v.ValidateElectionName("General Election"))
	assert.Error(t, v.ValidateElectionName("ab"))

	assert.NoError(t, v.ValidateElectionSlug("general-2026"))
	assert.Error(t, v.ValidateElectionSlug("General 2026"))
}

func TestContestantValidation(t *testing.T) {
	v := ContestantValidation{}

	assert.NoError(t, v.ValidateContestantName("Jane Doe"))
	assert.Error(t, v.ValidateContestantName("J"))
}
