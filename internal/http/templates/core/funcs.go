// Package core provides the template helpers shared by every dashboard view.
package core

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/guitarguru/gg-dashboard/internal/http/uiutil"
)

// Deps carries what the func map needs from the renderer. Template is a
// double pointer because the func map must be installed before the template
// set finishes parsing.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs builds the func map used by all page and partial templates.
func Funcs(deps Deps) template.FuncMap {
	return template.FuncMap{
		"renderSection":   renderSectionFunc(deps),
		"friendlyTime":    friendlyTime,
		"add":             func(a, b int) int { return a + b },
		"sub":             func(a, b int) int { return a - b },
		"formatNumber":    formatNumber,
		"difficultyClass": difficultyClass,
	}
}

// renderSectionFunc renders the content partial for a page name and hands the
// result back as trusted HTML. The partial itself went through html/template,
// so user values are already escaped.
func renderSectionFunc(deps Deps) func(string, any) (template.HTML, error) {
	return func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - output of our own template set, escaped above.
		return template.HTML(buf.String()), nil
	}
}

// friendlyTime tolerates both time.Time and *time.Time because lesson fields
// from the upstream API use pointers for optional timestamps.
func friendlyTime(ts any) string {
	var t0 time.Time
	switch v := ts.(type) {
	case time.Time:
		t0 = v
	case *time.Time:
		if v != nil {
			t0 = *v
		}
	default:
		return ""
	}
	if t0.IsZero() {
		return ""
	}
	return uiutil.FormatFriendlyDateTime(t0)
}

// formatNumber renders an integer with thousands separators. Non-integer
// values fall back to fmt.Sprint.
func formatNumber(v any) string {
	var s string
	var neg bool
	switch x := v.(type) {
	case int:
		s, neg = absDecimal(int64(x))
	case int64:
		s, neg = absDecimal(x)
	case int32:
		s, neg = absDecimal(int64(x))
	case uint:
		s = strconv.FormatUint(uint64(x), 10)
	case uint64:
		s = strconv.FormatUint(x, 10)
	default:
		return fmt.Sprint(v)
	}
	return groupThousands(s, neg)
}

func absDecimal(x int64) (string, bool) {
	if x < 0 {
		return strconv.FormatUint(uint64(-x), 10), true
	}
	return strconv.FormatUint(uint64(x), 10), false
}

func groupThousands(s string, neg bool) string {
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + (len(s)-1)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// difficultyClass maps a lesson difficulty to its badge CSS class.
func difficultyClass(difficulty string) string {
	switch strings.ToUpper(difficulty) {
	case "BEGINNER":
		return "badge-success"
	case "INTERMEDIATE":
		return "badge-info"
	case "ADVANCED":
		return "badge-warning"
	default:
		return "badge-light"
	}
}
