package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	httpassets "github.com/guitarguru/gg-dashboard/internal/http/assets"
	assetfuncs "github.com/guitarguru/gg-dashboard/internal/http/templates/assets"
	corefuncs "github.com/guitarguru/gg-dashboard/internal/http/templates/core"
)

// AssetResolver aliases the asset resolver so route setup only imports httpx.
type AssetResolver = httpassets.AssetResolver

// NewAssetResolverFromDisk creates an asset resolver that reads the manifest from the local filesystem.
func NewAssetResolverFromDisk(manifestPath string) (*AssetResolver, error) {
	return httpassets.NewAssetResolverFromDisk(manifestPath)
}

// NewAssetResolverFromFS creates an asset resolver that reads the manifest from an fs.FS implementation.
func NewAssetResolverFromFS(fsys fs.FS, manifestPath string) (*AssetResolver, error) {
	return httpassets.NewAssetResolverFromFS(fsys, manifestPath)
}

// fallbackCriticalCSS keeps first paint readable when css/critical.css cannot
// be loaded.
const fallbackCriticalCSS = ":root{--color-background:#f6f7f9;--color-surface:#fff;--color-text-primary:#2e3138;}"

// TemplateRenderer owns the parsed template set and renders pages, fragments
// and error views.
type TemplateRenderer struct {
	t             *template.Template
	resolver      *AssetResolver
	criticalCSSFS fs.FS
	criticalCSS   string
	devMode       bool
	logger        *slog.Logger
}

// TemplateRendererConfig configures NewTemplateRenderer. Only TemplateFS is
// required; without a resolver assets resolve to their logical names, and
// without a CriticalCSSFS pages inline the fallback CSS.
type TemplateRendererConfig struct {
	TemplateFS    fs.FS
	Resolver      *AssetResolver
	CriticalCSSFS fs.FS
	DevMode       bool
	Logger        *slog.Logger
}

// NewTemplateRenderer parses the template tree and wires the template func
// map. In production the critical CSS is read once here; in dev mode it is
// re-read per render so edits show up without a restart.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer := &TemplateRenderer{
		resolver:      cfg.Resolver,
		criticalCSSFS: cfg.CriticalCSSFS,
		devMode:       cfg.DevMode,
		logger:        logger,
	}

	if cfg.CriticalCSSFS != nil && !cfg.DevMode {
		css, err := fs.ReadFile(cfg.CriticalCSSFS, "css/critical.css")
		if err != nil {
			logger.Warn("critical CSS not loadable, inlining fallback", slog.Any("error", err))
			renderer.criticalCSS = fallbackCriticalCSS
		} else {
			renderer.criticalCSS = string(css)
		}
	}

	// The func map closes over t because the "include" helpers execute
	// templates from the same set being parsed.
	var t *template.Template
	funcs := template.FuncMap{}
	for _, src := range []template.FuncMap{
		corefuncs.Funcs(corefuncs.Deps{
			Template:           &t,
			ContentTemplateFor: ContentTemplateFor,
		}),
		assetfuncs.Funcs(assetfuncs.Options{
			Resolver:    renderer.resolver,
			DevMode:     renderer.devMode,
			CriticalCSS: renderer.getCriticalCSS,
		}),
	} {
		for name, fn := range src {
			funcs[name] = fn
		}
	}

	t, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

func (r *TemplateRenderer) getCriticalCSS() string {
	if r.devMode && r.criticalCSSFS != nil {
		css, err := fs.ReadFile(r.criticalCSSFS, "css/critical.css")
		if err != nil {
			r.logger.Warn("critical CSS reload failed", slog.Any("error", err))
			return fallbackCriticalCSS
		}
		return string(css)
	}
	return r.criticalCSS
}

// RenderFull renders the layout with the page content inside it.
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "layout", data)
}

// RenderPartial renders only the main content area, for htmx swaps.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "content", data)
}

// RenderError renders the standalone error page defined in error.tmpl.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "error-layout", data)
}

// renderTemplate executes into a buffer first so a template failure can
// still become a clean error response instead of a torn page.
func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, templateName string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, templateName, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", templateName),
			slog.Any("error", err),
		)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("writing rendered template failed",
			slog.String("template", templateName),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
