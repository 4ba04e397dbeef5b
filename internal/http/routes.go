package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ggdashboard "github.com/guitarguru/gg-dashboard"
	"github.com/guitarguru/gg-dashboard/internal/service"
)

// RouterServices carries everything NewRouter wires into the handler tree.
type RouterServices struct {
	Sessions     *service.SessionService
	Lessons      *service.LessonService
	Assets       *service.AssetService
	CookieDomain string
	// IsDev serves templates and static files from disk so edits show up
	// without a rebuild.
	IsDev  bool
	Logger *slog.Logger
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter assembles the full handler tree: routes, custom 404 handling, and
// the middleware stack.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticHandler(services))

	uiHandlers := newUIHandlers(services)
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers)
		registerAuthRoutes(mux, &AuthHandlers{
			Svc:          services.Sessions,
			T:            uiHandlers.T,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		})
	}

	var handler http.Handler = &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
		logger:     services.logger(),
	}

	// Session resolution runs for every request so templates and guards see
	// the same state. CSRF sits outside it so even anonymous pages carry a
	// token for their forms.
	if services.Sessions != nil {
		handler = LoadSession(services.Sessions)(handler)
	}
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(handler)
	return BrowserDetection()(handler)
}

// newUIHandlers builds the template renderer for the configured mode and the
// UI handler set on top of it. Returns nil when templates cannot be parsed;
// the router then serves only health, static, and plain 404s.
func newUIHandlers(services RouterServices) *UIHandlers {
	logger := services.logger()
	diskManifest := filepath.Join("frontend", "static", "manifest.json")

	var (
		templateFS    fs.FS
		criticalCSSFS fs.FS
		resolver      *AssetResolver
	)
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
		criticalCSSFS = os.DirFS("frontend/public")
		resolver = diskResolver(diskManifest, logger)
	} else {
		templateFS, criticalCSSFS, resolver = embeddedAssets(diskManifest, logger)
	}
	if resolver == nil {
		resolver = &AssetResolver{}
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS:    templateFS,
		Resolver:      resolver,
		CriticalCSSFS: criticalCSSFS,
		DevMode:       services.IsDev,
		Logger:        services.Logger,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}

	return &UIHandlers{
		T:            tr,
		Sessions:     services.Sessions,
		LessonSvc:    services.Lessons,
		AssetSvc:     services.Assets,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
	}
}

// embeddedAssets wires templates, critical CSS, and the asset manifest from
// the embedded filesystems, degrading to disk when an embed is missing.
func embeddedAssets(diskManifest string, logger *slog.Logger) (fs.FS, fs.FS, *AssetResolver) {
	templateFS, err := fs.Sub(ggdashboard.TemplateFS, "frontend/templates")
	if err != nil {
		logger.Warn("embedded templates unavailable, reading from disk", "error", err)
		templateFS = os.DirFS(TemplatePathFromRoot)
	}

	staticSub, err := fs.Sub(ggdashboard.StaticFS, "frontend/static")
	if err != nil {
		logger.Warn("embedded static files unavailable", "error", err)
		return templateFS, nil, diskResolver(diskManifest, logger)
	}

	resolver, err := NewAssetResolverFromFS(staticSub, "manifest.json")
	if err != nil {
		logger.Warn("embedded asset manifest unavailable", "error", err)
		return templateFS, staticSub, diskResolver(diskManifest, logger)
	}
	return templateFS, staticSub, resolver
}

// diskResolver loads the asset manifest from disk. A failure is survivable:
// assets are then served under their logical names.
func diskResolver(path string, logger *slog.Logger) *AssetResolver {
	resolver, err := NewAssetResolverFromDisk(path)
	if err != nil {
		logger.Warn("asset manifest unavailable, using logical asset names",
			"path", path, "error", err)
	}
	return resolver
}

// staticHandler serves /static/*. Dev mode reads from disk, with
// frontend/public as a fallback for files the build has not hashed.
func staticHandler(services RouterServices) http.Handler {
	if services.IsDev {
		mfs := fallbackFS{
			http.Dir("frontend/static"),
			http.Dir("frontend/public"),
		}
		return cacheStatic(http.StripPrefix("/static/", http.FileServer(mfs)))
	}

	staticSub, err := fs.Sub(ggdashboard.StaticFS, "frontend/static")
	if err != nil {
		services.logger().Warn("embedded static files unavailable, serving from disk", "error", err)
		return cacheStatic(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return cacheStatic(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// fallbackFS tries each filesystem in order until one has the file.
type fallbackFS []http.FileSystem

func (m fallbackFS) Open(name string) (http.File, error) {
	for _, fsys := range m {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, os.ErrNotExist
}

// hashedAssetPattern matches content-hashed build outputs like
// app.ab12cd34.css and htmx.min.1a2b3c4d.js.map.
var hashedAssetPattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`)

// cacheStatic sets cache headers by asset kind: hashed files are immutable,
// anything else must revalidate.
func cacheStatic(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedAssetPattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler buffers mux responses so unmatched routes get the rendered
// 404 page instead of the stdlib plain-text one.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
	logger     *slog.Logger
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w, h.logger)
	h.mux.ServeHTTP(cw, r)

	if cw.status == http.StatusNotFound {
		// Missing static files keep the file server's own response.
		if strings.HasPrefix(r.URL.Path, "/static/") {
			cw.flush()
			return
		}
		if h.uiHandlers != nil {
			h.uiHandlers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}
	cw.flush()
}

// captureWriter holds back status, headers, and body until the dispatch
// outcome is known.
type captureWriter struct {
	rw     http.ResponseWriter
	logger *slog.Logger
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter, logger *slog.Logger) *captureWriter {
	return &captureWriter{rw: w, logger: logger, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flush() {
	for k, vs := range c.header {
		for _, v := range vs {
			c.rw.Header().Add(k, v)
		}
	}
	c.rw.WriteHeader(c.status)
	if _, err := c.rw.Write(c.buf.Bytes()); err != nil && c.logger != nil {
		c.logger.Error("failed to write captured response", "error", err)
	}
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/signup", h.Signup)
	mux.HandleFunc("POST /auth/forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers) {
	registerUIHomeRoutes(mux, h)
	registerUILessonRoutes(mux, h)
	registerUIAssetRoutes(mux, h)
}

// registerUIHomeRoutes wires the root dispatcher and the token-driven pages.
// Reset-password and verify stay outside any auth guard so emailed links
// work for signed-out visitors.
func registerUIHomeRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.Handle("GET /", http.HandlerFunc(h.Home))
	mux.Handle("GET /reset-password", http.HandlerFunc(h.ResetPassword))
	mux.Handle("POST /reset-password", http.HandlerFunc(h.ResetPasswordSubmit))
	mux.Handle("GET /verify", http.HandlerFunc(h.VerifyEmail))
}

// registerUILessonRoutes wires lesson management, all admin-only.
func registerUILessonRoutes(mux *http.ServeMux, h *UIHandlers) {
	wrapAdmin := RequireAdminBrowser()
	mux.Handle("GET /lessons", wrapAdmin(http.HandlerFunc(h.Lessons)))
	mux.Handle("GET /lessons/new", wrapAdmin(http.HandlerFunc(h.LessonNew)))
	mux.Handle("GET /lessons/{id}", wrapAdmin(http.HandlerFunc(h.LessonView)))
	mux.Handle("GET /lessons/{id}/edit", wrapAdmin(http.HandlerFunc(h.LessonEdit)))
	mux.Handle("GET /lessons/{id}/confirm-delete", wrapAdmin(http.HandlerFunc(h.LessonConfirmDelete)))
	mux.Handle("POST /lessons", wrapAdmin(http.HandlerFunc(h.LessonCreate)))
	mux.Handle("POST /lessons/{id}", wrapAdmin(http.HandlerFunc(h.LessonUpdate)))
	mux.Handle("POST /lessons/{id}/delete", wrapAdmin(http.HandlerFunc(h.LessonDelete)))
}

func registerUIAssetRoutes(mux *http.ServeMux, h *UIHandlers) {
	wrapAdmin := RequireAdminBrowser()
	mux.Handle("POST /assets/upload", wrapAdmin(http.HandlerFunc(h.AssetUpload)))
}
