package httpx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTemplateFor_PageMapping(t *testing.T) {
	cases := map[string]string{
		PageHome:          "dashboard-content",
		PageDashboard:     "dashboard-content",
		PageLogin:         "login-content",
		PageLessons:       "lessons-content",
		PageLessonView:    "lesson-view-content",
		PageLessonForm:    "lesson-form-content",
		PageResetPassword: "reset-password-content",
		PageVerify:        "verify-content",
		"unknown":         "dashboard-content",
	}
	for page, want := range cases {
		assert.Equal(t, want, ContentTemplateFor(page), "page %q", page)
	}
}

// renderSection is what the layout uses to inline a page's content partial,
// so a wrong mapping or a broken partial shows up here instead of in prod.
func TestRenderSection_InlinesContentPartial(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return
	}

	cloned, err := tr.t.Clone()
	require.NoError(t, err)
	cloned, err = cloned.Parse(`{{define "section-check"}}{{ renderSection .Page .Data }}{{end}}`)
	require.NoError(t, err)

	t.Run("lessons page renders the table shell", func(t *testing.T) {
		var buf bytes.Buffer
		data := map[string]any{
			"Page": PageLessons,
			"Data": map[string]any{"Lessons": []LessonRow{}},
		}
		require.NoError(t, cloned.ExecuteTemplate(&buf, "section-check", data))
		assert.True(t, ContainsAll(buf.String(), []string{"All lessons", "No lessons yet."}),
			"lessons render missing expected substrings: %q", buf.String())
	})

	t.Run("unknown page falls back to the dashboard", func(t *testing.T) {
		var buf bytes.Buffer
		data := map[string]any{"Page": "nope", "Data": map[string]any{}}
		require.NoError(t, cloned.ExecuteTemplate(&buf, "section-check", data))
		assert.Contains(t, buf.String(), "stat-grid")
	})
}
