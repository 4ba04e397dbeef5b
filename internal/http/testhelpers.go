package httpx

import (
	"os"
	"strings"
	"testing"
)

// RequireTemplateRenderer builds a renderer from the frontend templates for
// handler tests, skipping when the tree is not checked out (go test from a
// partial workspace). No resolver, critical CSS or dev mode; tests only care
// about markup.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// RequireTemplateRendererFromRoot is RequireTemplateRenderer for tests that
// run with the repository root as working directory, like the router tests.
func RequireTemplateRendererFromRoot(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromRoot),
	})
	if err != nil {
		t.Skipf("Templates not available from root, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll reports whether s contains every substring, for asserting on
// rendered pages without one assert per fragment.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// CreateUIHandlersForTest wires UIHandlers with just a renderer, enough for
// handlers that never touch a service.
func CreateUIHandlersForTest(t *testing.T) *UIHandlers {
	t.Helper()
	tr := RequireTemplateRenderer(t)
	if tr == nil {
		return nil
	}
	return &UIHandlers{T: tr}
}
