package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_ParsesEveryPageDefine(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	require.NotNil(t, tr.t)

	parsed := map[string]bool{}
	for _, tmpl := range tr.t.Templates() {
		parsed[tmpl.Name()] = true
	}

	// The dispatcher renders by define name; a missing one fails at request
	// time, so pin them here.
	for _, name := range []string{
		"layout",
		"content",
		"error-layout",
		"dashboard-content",
		"lessons-content",
		"lesson-view-content",
		"lesson-form-content",
		"login-content",
		"loading-content",
	} {
		assert.True(t, parsed[name], "template %q must be parsed", name)
	}
}

func TestTemplateRenderer_FromRepositoryRoot(t *testing.T) {
	// The router parses from the working directory; make sure that path
	// works too.
	tr := RequireTemplateRendererFromRoot(t)
	if tr == nil {
		return
	}
	assert.NotNil(t, tr.t)
}
