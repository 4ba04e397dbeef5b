package httpx

import (
	"context"
	"html/template"
	"net/http"

	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

func lessonsMeta() PageMeta {
	return PageMeta{Title: "Guitar Guru - Lessons", PageTitle: "Lessons", CurrentPage: PageLessons}
}

// Lessons serves the admin lesson table.
// GET /lessons.
func (h *UIHandlers) Lessons(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	page, pageSize := getPageParams(r.URL.Query())

	lessons, err := h.LessonSvc.List(r.Context(), token)
	if err != nil {
		h.logger().WarnContext(r.Context(), "failed to list lessons", "error", err)
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:        err,
			Renderer:   h.renderDashboardPage,
			PageMeta:   lessonsMeta(),
			StatusCode: DetermineErrorStatus(err),
		})
		return
	}

	window, pagination := paginateSlice(lessonRows(lessons), pageOpts{Page: page, PageSize: pageSize})
	pagination.BasePath = "/lessons"

	data := NewTemplateData(r, lessonsMeta()).
		WithPagination(pagination).
		With("Lessons", window).
		Build()
	h.renderDashboardPage(w, r, data)
}

// LessonView serves a single lesson's detail page with its asset panel.
// GET /lessons/{id}.
func (h *UIHandlers) LessonView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	token := sessionToken(r)
	lesson, err := h.LessonSvc.Find(r.Context(), token, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().WarnContext(r.Context(), "failed to load lesson", "id", id, "error", err)
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:        err,
			Renderer:   h.renderDashboardPage,
			PageMeta:   lessonsMeta(),
			StatusCode: DetermineErrorStatus(err),
		})
		return
	}

	meta := PageMeta{
		Title:       "Guitar Guru - " + lesson.Title,
		PageTitle:   lesson.Title,
		CurrentPage: PageLessonView,
	}
	data := NewTemplateData(r, meta).
		With("Lesson", lessonRow(lesson)).
		With("Assets", lesson.Assets).
		// Description was sanitized on write; render the surviving markup.
		// #nosec G203 - markup passed through the UGC sanitizer before storage
		With("DescriptionHTML", template.HTML(lesson.Description)).
		Build()
	h.renderDashboardPage(w, r, data)
}

// LessonConfirmDelete renders the delete confirmation.
// GET /lessons/{id}/confirm-delete. Deletion never fires off the row action
// directly; this intermediate step is the only path to the POST.
func (h *UIHandlers) LessonConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	token := sessionToken(r)
	lesson, err := h.LessonSvc.Find(r.Context(), token, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:        err,
			Renderer:   h.renderDashboardPage,
			PageMeta:   lessonsMeta(),
			StatusCode: DetermineErrorStatus(err),
		})
		return
	}

	meta := PageMeta{
		Title:       "Guitar Guru - Delete Lesson",
		PageTitle:   "Delete Lesson",
		CurrentPage: PageLessons,
	}
	data := NewTemplateData(r, meta).
		With("Lesson", lessonRow(lesson)).
		With("ConfirmDelete", true).
		Build()
	h.renderDashboardPage(w, r, data)
}

// LessonDelete removes a lesson after confirmation.
// POST /lessons/{id}/delete.
func (h *UIHandlers) LessonDelete(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete: func(ctx context.Context, id string) error {
			return h.LessonSvc.Delete(ctx, token, id)
		},
		OnError: func(w http.ResponseWriter, r *http.Request, err error) {
			h.logger().WarnContext(r.Context(), "failed to delete lesson", "error", err)
			RenderError(ErrorOpts{
				W: w, R: r,
				Err:        err,
				Renderer:   h.renderDashboardPage,
				PageMeta:   lessonsMeta(),
				StatusCode: DetermineErrorStatus(err),
				ShowToast:  true,
			})
		},
		OnSuccess: func(w http.ResponseWriter, r *http.Request) {
			// Warm the list before the redirect lands on it.
			if _, err := h.LessonSvc.Refresh(r.Context(), token); err != nil {
				h.logger().WarnContext(r.Context(), "lesson refetch after delete failed", "error", err)
			}
			triggerToast(w, "Lesson deleted.", "success")
			HTMX(w).Redirect("/lessons")
		},
	})
}
