package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatusConstants guards the status strings, which appear in JSON and
// CSV output.
func TestStatusConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"StatusUpdated", StatusUpdated, "Updated"},
		{"StatusPlanned", StatusPlanned, "Planned"},
		{"StatusNotDeclared", StatusNotDeclared, "NotDeclared"},
		{"StatusAlreadyCurrent", StatusAlreadyCurrent, "AlreadyCurrent"},
		{"StatusFailed", StatusFailed, "Failed"},
		{"StatusOutdated", StatusOutdated, "Outdated"},
		{"StatusUpToDate", StatusUpToDate, "UpToDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
		})
	}
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, IconSuccess, StatusIcon(StatusUpdated))
	assert.Equal(t, IconSuccess, StatusIcon(StatusUpToDate))
	assert.Equal(t, IconPending, StatusIcon(StatusPlanned))
	assert.Equal(t, IconInfo, StatusIcon(StatusOutdated))
	assert.Equal(t, IconWarning, StatusIcon(StatusNotDeclared))
	assert.Equal(t, IconSuccess, StatusIcon(StatusAlreadyCurrent))
	assert.Equal(t, IconError, StatusIcon(StatusFailed))
	assert.Empty(t, StatusIcon("Whatever"))
}
