package httpx

import (
	"net/http"
	"strings"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

// AssetUpload receives a multipart upload and forwards it to the lesson API.
// POST /assets/upload (multipart: file, lesson_id, asset_type, display_name).
//
// The form only appears on persisted lessons, but the service validates the
// lesson ID again so a hand-crafted request cannot attach a file to nothing.
func (h *UIHandlers) AssetUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.AssetSvc.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		h.renderUploadError(w, r, "", "The upload could not be read. The file may be too large.")
		return
	}

	lessonID := strings.TrimSpace(r.FormValue("lesson_id"))
	req := model.UploadAssetRequest{
		LessonID:    lessonID,
		Type:        model.AssetType(strings.ToUpper(strings.TrimSpace(r.FormValue("asset_type")))),
		DisplayName: strings.TrimSpace(r.FormValue("display_name")),
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderUploadError(w, r, lessonID, "Choose a file to upload.")
		return
	}
	defer file.Close()
	req.FileName = header.Filename

	token := sessionToken(r)
	if _, err := h.AssetSvc.Upload(r.Context(), token, req, file); err != nil {
		h.logger().WarnContext(r.Context(), "asset upload failed",
			"lesson_id", lessonID, "error", err)
		h.renderUploadError(w, r, lessonID, uploadErrorMessage(err))
		return
	}

	triggerToast(w, "Asset uploaded.", "success")
	if lessonID != "" {
		HTMX(w).Redirect("/lessons/" + lessonID)
		return
	}
	HTMX(w).Redirect("/lessons")
}

// renderUploadError re-renders the lesson view with the upload error, or
// falls back to the lessons list when the lesson ID itself is missing.
func (h *UIHandlers) renderUploadError(w http.ResponseWriter, r *http.Request, lessonID, msg string) {
	if lessonID == "" {
		RenderError(ErrorOpts{
			W: w, R: r,
			Err:      apperrors.Validation(msg),
			Renderer: h.renderDashboardPage,
			PageMeta: lessonsMeta(),
		})
		return
	}

	token := sessionToken(r)
	lesson, err := h.LessonSvc.Find(r.Context(), token, lessonID)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	meta := PageMeta{
		Title:       "Guitar Guru - " + lesson.Title,
		PageTitle:   lesson.Title,
		CurrentPage: PageLessonView,
	}
	data := NewTemplateData(r, meta).
		WithError(msg).
		With("Lesson", lessonRow(lesson)).
		With("Assets", lesson.Assets).
		Build()
	h.renderDashboardPage(w, r, data)
}

// uploadErrorMessage maps upload failures to user-facing text.
func uploadErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.IsValidation(err):
		return err.Error()
	case apperrors.IsUnauthorized(err):
		return err.Error()
	case apperrors.IsTransport(err):
		return "Could not reach the lesson service. Check your connection and try again."
	default:
		return "Upload failed. Please try again."
	}
}
