package election

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewElectionStartsInactive(t *testing.T) {
	e := NewElection("Presidential Election 2026", "presidential-2026")

	assert.Equal(t, StatusInactive, e.Status)
	assert.Equal(t, "presidential-2026", e.Slug)
	assert.False(t, e.IsActive())
	assert.NotEqual(t, "", e.ID.String())
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"inactive to active", StatusInactive, StatusActive, true},
		{"inactive to ended", StatusInactive, StatusEnded, false},
		{"active to ended", StatusActive, StatusEnded, true},
		{"active to inactive", StatusActive, StatusInactive, true},
		{"ended to active", StatusEnded, StatusActive, true},
		{"ended to inactive", StatusEnded, StatusInactive, true},
		{"active to active", StatusActive, StatusActive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Election{Status: tt.from}
			assert.Equal(t, tt.allowed, e.CanTransitionTo(tt.to))
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	e := NewElection("Test Election", "test-election")

	err := e.UpdateStatus(StatusActive)
	assert.NoError(t, err)
	assert.True(t, e.IsActive())

	err = e.UpdateStatus(StatusEnded)
	assert.NoError(t, err)
	assert.Equal(t, StatusEnded, e.Status)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	e := NewElection("Test Election", "test-election")

	err := e.UpdateStatus(StatusEnded)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusInactive, e.Status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "inactive", StatusInactive.String())
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "ended", StatusEnded.String())
	assert.Equal(t, "unknown", Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	status, ok := StatusFromString("active")
	assert.True(t, ok)
	assert.Equal(t, StatusActive, status)

	_, ok = StatusFromString("paused")
	assert.False(t, ok)
}

func TestStatusJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(StatusActive)
	assert.NoError(t, err)
	assert.Equal(t, `"active"`, string(data))

	var status Status
	err = json.Unmarshal([]byte(`"ended"`), &status)
	assert.NoError(t, err)
	assert.Equal(t, StatusEnded, status)

	err = json.Unmarshal([]byte(`"bogus"`), &status)
	assert.Error(t, err)
}

func TestStatusScan(t *testing.T) {
	var status Status

	assert.NoError(t, status.Scan("active"))
	assert.Equal(t, StatusActive, status)

	assert.NoError(t, status.Scan([]byte("ended")))
	assert.Equal(t, StatusEnded, status)

	assert.NoError(t, status.Scan(nil))
	assert.Equal(t, StatusInactive, status)

	assert.Error(t, status.Scan(42))
	assert.Error(t, status.Scan("bogus"))
}

func TestStatusValue(t *testing.T) {
	v, err := StatusActive.Value()
	assert.NoError(t, err)
	assert.Equal(t, "active", v)
}

func TestElectionValidate(t *testing.T) {
	e := NewElection("Test Election", "test-election")
	assert.NoError(t, e.Validate())

	assert.Error(t, NewElection("", "test-election").Validate())
	assert.Error(t, NewElection("Test Election", "  ").Validate())
}
