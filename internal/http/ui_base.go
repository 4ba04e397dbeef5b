package httpx

import (
	"context"
	"html"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	"github.com/guitarguru/gg-dashboard/internal/http/ui/viewmodel"
	"github.com/guitarguru/gg-dashboard/internal/service"
)

const errMsgFixBelow = "Please fix the errors below."

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// LessonsService is the slice of the lesson service the UI handlers need.
type LessonsService interface {
	List(ctx context.Context, token string) ([]model.Lesson, error)
	Refresh(ctx context.Context, token string) ([]model.Lesson, error)
	Find(ctx context.Context, token, id string) (model.Lesson, error)
	Create(ctx context.Context, token string, req model.CreateLessonRequest) (model.Lesson, error)
	Update(ctx context.Context, token, id string, req model.UpdateLessonRequest) (model.Lesson, error)
	Delete(ctx context.Context, token, id string) error
}

// AssetsService backs the upload panel.
type AssetsService interface {
	Upload(ctx context.Context, token string, req model.UploadAssetRequest, file io.Reader) (model.Asset, error)
	MaxUploadBytes() int64
}

var (
	_ LessonsService = (*service.LessonService)(nil)
	_ AssetsService  = (*service.AssetService)(nil)
	_ SessionManager = (*service.SessionService)(nil)
)

// UIHandlers serves the browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	Sessions     SessionManager
	LessonSvc    LessonsService
	AssetSvc     AssetsService
	CookieDomain string
	// IsDev switches template failures from a generic 500 to an inline
	// error panel.
	IsDev  bool
	Logger *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// sessionToken returns the upstream bearer token for the current request.
// Empty when anonymous; the lesson API answers 401 and the hook clears the
// record, so handlers need no guard of their own.
func sessionToken(r *http.Request) string {
	if s := GetSessionFromContext(r.Context()); s != nil {
		return s.Token
	}
	return ""
}

// getPageParams reads page/page_size from the query, clamping bad or missing
// values to the defaults.
func getPageParams(q url.Values) (int, int) {
	page := defaultPage
	pageSize := defaultPageSize
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(q.Get("page_size")); err == nil && n > 0 && n <= maxPageSize {
		pageSize = n
	}
	return page, pageSize
}

type pageOpts struct {
	Page     int
	PageSize int
}

// paginateSlice windows an already-fetched list. The lesson API returns the
// full collection on every fetch, so paging happens here rather than
// upstream.
func paginateSlice[T any](items []T, p pageOpts) ([]T, PaginationData) {
	page := p.Page
	if page <= 0 {
		page = defaultPage
	}
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	total := len(items)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	window := items[start:end]
	data := PaginationData{
		Page:       page,
		PageSize:   pageSize,
		HasPrev:    page > 1,
		HasNext:    end < total,
		TotalCount: total,
	}
	if len(window) > 0 {
		data.StartIndex = start + 1
		data.EndIndex = end
	}
	return window, data
}

type deleteHandlerOpts struct {
	Delete       func(ctx context.Context, id string) error
	RedirectPath string
	OnError      func(http.ResponseWriter, *http.Request, error)
	OnSuccess    func(http.ResponseWriter, *http.Request)
}

// handleDelete is the delete flow shared by the UI handlers: resolve the path
// ID, call the service, then either redirect or hand off to the callbacks.
func (h *UIHandlers) handleDelete(w http.ResponseWriter, r *http.Request, opts deleteHandlerOpts) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	if err := opts.Delete(r.Context(), id); err != nil {
		if opts.OnError != nil {
			opts.OnError(w, r, err)
			return
		}
		http.Error(w, "Unable to delete resource.", http.StatusInternalServerError)
		return
	}

	if opts.OnSuccess != nil {
		opts.OnSuccess(w, r)
		return
	}
	if opts.RedirectPath != "" {
		HTMX(w).Redirect(opts.RedirectPath)
	}
}

// triggerToast fires the showToast event the layout's toast listener handles.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// FormFrameOpts configures prepareFormFrame.
type FormFrameOpts struct {
	R           *http.Request
	Data        map[string]any
	DefaultMode FormMode
	MetaForMode func(FormMode) PageMeta
}

// prepareFormFrame fills the fields every form render needs: an Errors map
// the template can always range over, a normalized Mode, and the base page
// data for the resolved mode.
func prepareFormFrame(opts FormFrameOpts) (map[string]any, FormMode) {
	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Errors"]; !ok || data["Errors"] == nil {
		data["Errors"] = map[string]string{}
	}

	mode := resolveFormMode(data["Mode"], opts.DefaultMode)
	data["Mode"] = string(mode)

	if opts.MetaForMode != nil && opts.R != nil {
		maps.Copy(data, basePageData(opts.R, opts.MetaForMode(mode)))
	}
	return data, mode
}

// resolveFormMode accepts Mode as either a FormMode or a string, since form
// templates round-trip it as a plain string value.
func resolveFormMode(raw any, fallback FormMode) FormMode {
	switch v := raw.(type) {
	case FormMode:
		if v != "" {
			return v
		}
	case string:
		if candidate := FormMode(strings.TrimSpace(v)); candidate != "" {
			return candidate
		}
	}
	return fallback
}

// buildPageURL builds a paging link that keeps the request's filter params
// while dropping htmx bookkeeping params and blank values.
func buildPageURL(basePath string, q url.Values, p pageOpts) string {
	qq := make(url.Values, len(q))
	for k, vals := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") {
			continue
		}
		kept := make([]string, 0, len(vals))
		for _, s := range vals {
			if strings.TrimSpace(s) != "" {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			qq[k] = kept
		}
	}
	qq.Set("page", strconv.Itoa(p.Page))
	qq.Set("page_size", strconv.Itoa(p.PageSize))

	if enc := qq.Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}

// PageMeta names a page for the layout chrome.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout derives the shared chrome state from the request's session.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
	}
	layout.CSRFToken = GetCSRFToken(r)

	session := GetSessionFromContext(r.Context())
	if session != nil && session.State() == domainauth.StateAuthenticated {
		layout.User = &viewmodel.User{
			Email: session.Identity.Email,
			Name:  session.Identity.Name,
			Kind:  string(session.Identity.Kind),
		}
		layout.IsAuthenticated = true
		layout.IsAdmin = session.IsAdmin()
	}
	return layout
}

// basePageData is buildLayout flattened into the map templates consume.
// CSRFToken and User stay absent rather than zero so templates can gate on
// presence.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"IsAdmin":         layout.IsAdmin,
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// PageSpec pairs page metadata with an optional data fetch.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page renders a page whose fetch failure degrades to an error banner instead
// of replacing the page.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			markPageError(data)
		}
	}
	h.renderDashboardPage(w, r, data)
}

// renderDashboardPage renders a full page, or for htmx requests just the
// content fragment plus out-of-band title updates.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.renderTemplateFailure(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The layout script listens for this to move the nav active state.
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	layout := pageChrome(data)

	// A bare <title> in the swapped fragment makes htmx update document.title.
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(layout.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	oob := `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(layout.PageTitle) + `</h1>`
	if _, err := w.Write([]byte(oob)); err != nil {
		h.logger().Error("failed to write partial header title", "error", err)
		return
	}

	if err := h.T.t.ExecuteTemplate(w, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.renderTemplateFailure(w, r, err, "partial content render")
	}
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; !ok {
		data["ErrorMessage"] = "An unexpected error occurred. Please try again."
	}
}

// pageChrome recovers the layout fields from the template data. Handlers pass
// maps built by basePageData; the typed cases cover data assembled directly
// from a viewmodel.
func pageChrome(data any) viewmodel.Layout {
	switch v := data.(type) {
	case viewmodel.Layout:
		return v
	case *viewmodel.Layout:
		if v != nil {
			return *v
		}
	case map[string]any:
		layout := viewmodel.Layout{}
		layout.Title, _ = v["Title"].(string)
		layout.PageTitle, _ = v["PageTitle"].(string)
		layout.CurrentPage, _ = v["CurrentPage"].(string)
		return layout
	}
	return viewmodel.Layout{}
}

// renderTemplateFailure logs a failed render. Dev mode shows the error inline
// where a broken page would otherwise appear blank.
func (h *UIHandlers) renderTemplateFailure(w http.ResponseWriter, r *http.Request, err error, stage string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"stage", stage,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	body := `
		<div style="padding: 20px; background: #fee; border: 2px solid #c33; border-radius: 4px; margin: 20px; font-family: monospace;">
			<h2 style="color: #c33; margin-top: 0;">Template Rendering Error</h2>
			<p><strong>Stage:</strong> ` + html.EscapeString(stage) + `</p>
			<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>
			<p><strong>Error:</strong></p>
			<pre style="background: #fff; padding: 10px; border: 1px solid #ccc; overflow-x: auto;">` + html.EscapeString(err.Error()) + `</pre>
		</div>
	`
	if _, writeErr := w.Write([]byte(body)); writeErr != nil {
		h.logger().Error("failed to write template error response", "error", writeErr)
	}
}
