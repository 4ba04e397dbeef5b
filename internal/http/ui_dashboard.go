package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	"github.com/guitarguru/gg-dashboard/internal/http/uiutil"
	"github.com/guitarguru/gg-dashboard/internal/service"
)

const lessonExcerptRunes = 140

// LessonRow represents a lesson prepared for table or card display.
type LessonRow struct {
	ID           string
	Title        string
	Slug         string
	Excerpt      string
	Difficulty   model.Difficulty
	DurationMins int
	Published    bool
	AssetCount   int
	UpdatedAt    time.Time
}

// FriendlyUpdatedAt returns a human friendly description of the last change.
func (l LessonRow) FriendlyUpdatedAt() string {
	if l.UpdatedAt.IsZero() {
		return ""
	}
	return uiutil.FriendlyRelativeTime(l.UpdatedAt)
}

// StatusLabel returns the publish badge text.
func (l LessonRow) StatusLabel() string {
	if l.Published {
		return "LIVE"
	}
	return "DRAFT"
}

// lessonRow converts a domain lesson to its display form.
func lessonRow(l model.Lesson) LessonRow {
	return LessonRow{
		ID:           l.ID,
		Title:        l.Title,
		Slug:         l.Slug,
		Excerpt:      service.Excerpt(l.Description, lessonExcerptRunes),
		Difficulty:   l.Difficulty,
		DurationMins: l.DurationMins,
		Published:    l.Published,
		AssetCount:   len(l.Assets),
		UpdatedAt:    l.UpdatedAt,
	}
}

func lessonRows(lessons []model.Lesson) []LessonRow {
	rows := make([]LessonRow, 0, len(lessons))
	for _, l := range lessons {
		rows = append(rows, lessonRow(l))
	}
	return rows
}

// publishedOnly filters lessons down to what students may see.
func publishedOnly(lessons []model.Lesson) []model.Lesson {
	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.Published {
			out = append(out, l)
		}
	}
	return out
}

// Home dispatches the root path on the session alone: anonymous browsers get
// the sign-in view, signed-in users get the dashboard for their actor kind.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	// Only the exact root renders here; other unmatched paths 404.
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	session := GetSessionFromContext(r.Context())
	var sess = sessionOrZero(session)

	switch ResolveView(r.URL.Path, sess) {
	case ViewAdminDashboard:
		h.adminDashboard(w, r)
	case ViewStudentDashboard:
		h.studentDashboard(w, r)
	case ViewLoading:
		h.loadingView(w, r)
	default:
		h.loginView(w, r)
	}
}

// loadingView covers the narrow window where a cached identity exists but has
// not been reconciled upstream yet. The page polls the root once so the next
// render lands on the real dashboard or the sign-in view.
func (h *UIHandlers) loadingView(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Guitar Guru", PageTitle: "One moment", CurrentPage: PageLoading}
	data := NewTemplateData(r, meta).Build()
	h.renderDashboardPage(w, r, data)
}

// loginView renders the sign-in surface, honoring ?mode=signup|forgot so the
// secondary panels are directly linkable.
func (h *UIHandlers) loginView(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	switch mode {
	case "signup", "forgot":
	default:
		mode = "signin"
	}

	auth := &AuthHandlers{Svc: h.Sessions, T: h.T, CookieDomain: h.CookieDomain, Logger: h.Logger}
	auth.renderLogin(w, r, loginViewData{Mode: mode})
}

// adminDashboard shows the lessons table with management actions.
func (h *UIHandlers) adminDashboard(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Guitar Guru - Dashboard", PageTitle: "Lessons", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			lessons, err := h.LessonSvc.List(ctx, token)
			if err != nil {
				h.logger().WarnContext(ctx, "failed to fetch lessons for dashboard", "error", err)
				data["ErrorMessage"] = "Unable to load lessons."
				return err
			}
			data["Lessons"] = lessonRows(lessons)
			data["LessonCount"] = len(lessons)
			data["PublishedCount"] = len(publishedOnly(lessons))
			return nil
		},
	})
}

// progressPct reports how far a student is through the published catalog,
// clamped to 100 so over-counted practice logs never overflow the widget.
func progressPct(done, published int) int {
	if published <= 0 {
		return 0
	}
	pct := done * 100 / published
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// studentDashboard shows the practice summary and published lesson cards.
func (h *UIHandlers) studentDashboard(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	session := GetSessionFromContext(r.Context())

	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Guitar Guru - My Progress", PageTitle: "My Progress", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			done := 0
			data["ProgressPct"] = 0
			if session != nil {
				done = session.Identity.LessonsDone
				data["LessonsDone"] = session.Identity.LessonsDone
				data["PracticeMins"] = session.Identity.PracticeMins
			}

			lessons, err := h.LessonSvc.List(ctx, token)
			if err != nil {
				h.logger().WarnContext(ctx, "failed to fetch lessons for student dashboard", "error", err)
				data["ErrorMessage"] = "Unable to load lessons."
				return err
			}
			published := publishedOnly(lessons)
			data["Lessons"] = lessonRows(published)
			data["ProgressPct"] = progressPct(done, len(published))
			return nil
		},
	})
}
