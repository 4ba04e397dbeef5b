package uiutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"future timestamp", now.Add(2 * time.Minute), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-25 * time.Minute), "25 minutes ago"},
		{"one hour", now.Add(-61 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"one day", now.Add(-30 * time.Hour), "1 day ago"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyRelativeTime(tt.at))
		})
	}
}

func TestFriendlyRelativeTime_OldDatesGoAbsolute(t *testing.T) {
	at := time.Now().Add(-30 * 24 * time.Hour)
	assert.Equal(t, FormatFriendlyDateTime(at), FriendlyRelativeTime(at))
}

func TestFormatFriendlyDateTime_ZeroTimeIsEmpty(t *testing.T) {
	assert.Empty(t, FormatFriendlyDateTime(time.Time{}))
}
