// Package uiutil formats timestamps for the dashboard views.
package uiutil

import (
	"strconv"
	"time"
)

const FriendlyDateTimeLayout = "Jan 2, 2006 3:04 PM"

// FriendlyRelativeTime renders how long ago t happened, the way the lesson
// list shows last-updated times. Anything older than a week falls back to an
// absolute date; clock skew into the future reads as "just now".
func FriendlyRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralAgo(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralAgo(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralAgo(int(diff.Hours()/24), "day")
	default:
		return FormatFriendlyDateTime(t)
	}
}

func pluralAgo(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.Itoa(n) + " " + unit + "s ago"
}

// FormatFriendlyDateTime renders t in the server's local zone, or "" for the
// zero time so templates can elide the field.
func FormatFriendlyDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(FriendlyDateTimeLayout)
}
