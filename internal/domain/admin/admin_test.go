package admin

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAdminHashesPassword(t *testing.T) {
	a, err := NewAdmin("console", "s3cret-pass")
	assert.NoError(t, err)
	assert.Equal(t, "console", a.Username)
	assert.NotEqual(t, "s3cret-pass", a.PasswordHash)
	assert.True(t, strings.HasPrefix(a.PasswordHash, "$2"))
}

func TestNewAdminRequiresCredentials(t *testing.T) {
	_, err := NewAdmin("", "s3cret-pass")
	assert.Error(t, err)

	_, err = NewAdmin("console", "")
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	a, err := NewAdmin("console", "s3cret-pass")
	assert.NoError(t, err)

	assert.True(t, a.CheckPassword("s3cret-pass"))
	assert.False(t, a.CheckPassword("wrong-pass"))
	assert.False(t, a.CheckPassword(""))
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	a, err := NewAdmin("console", "s3cret-pass")
	assert.NoError(t, err)

	data, err := json.Marshal(a)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "$2")
	assert.NotContains(t, string(data), "password")
}
