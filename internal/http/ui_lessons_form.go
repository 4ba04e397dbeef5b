package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/http/validation"
)

// --- Lesson Form (create/edit) ---

const (
	maxLessonTitleLen       = 200
	maxLessonDescriptionLen = 20000
	maxLessonDurationMins   = 600
)

func lessonFormTitles(mode FormMode) (string, string) {
	if mode == FormModeEdit {
		return "Guitar Guru - Edit Lesson", "Edit Lesson"
	}
	return "Guitar Guru - New Lesson", "New Lesson"
}

// renderLessonForm renders the lesson create/edit form with common framing data.
func (h *UIHandlers) renderLessonForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: func(mode FormMode) PageMeta {
			title, pageTitle := lessonFormTitles(mode)
			return PageMeta{Title: title, PageTitle: pageTitle, CurrentPage: PageLessonForm}
		},
	})
	data["DifficultyOptions"] = model.Difficulties()
	h.renderDashboardPage(w, r, data)
}

type lessonFormFields struct {
	Title        string
	Description  string
	Difficulty   string
	DurationRaw  string
	DurationMins int
	Published    bool
}

func parseLessonFormFields(r *http.Request) (lessonFormFields, map[string]string) {
	errs := map[string]string{}
	if err := r.ParseForm(); err != nil {
		errs["_"] = "Invalid form submission."
	}

	// A malformed duration validates against the raw text below; the parsed
	// value only matters once validation has passed.
	durationTxt := strings.TrimSpace(r.Form.Get("duration_mins"))
	duration, _ := strconv.Atoi(durationTxt)

	fields := lessonFormFields{
		Title:        strings.TrimSpace(r.Form.Get("title")),
		Description:  r.Form.Get("description"),
		Difficulty:   strings.TrimSpace(strings.ToUpper(r.Form.Get("difficulty"))),
		DurationRaw:  durationTxt,
		DurationMins: duration,
		Published:    r.Form.Get("published") == "on",
	}
	return fields, errs
}

func validateLessonForm(f lessonFormFields) map[string]string {
	difficulties := make([]string, 0, len(model.Difficulties()))
	for _, d := range model.Difficulties() {
		difficulties = append(difficulties, string(d))
	}

	v := validation.New().
		Validate("title", f.Title, validation.Required("Title", maxLessonTitleLen)).
		Validate("description", f.Description, validation.Optional("Description", maxLessonDescriptionLen)).
		Validate("difficulty", f.Difficulty, validation.OneOf("Difficulty", difficulties))

	// An omitted duration defaults to zero; anything supplied must parse.
	if f.DurationRaw != "" {
		v.Validate("duration_mins", f.DurationRaw,
			validation.IntRange("Duration", 0, maxLessonDurationMins))
	}

	return v.Errors()
}

// parseLessonForm parses and validates the lesson form into a create request.
// The slug is never read from the form; it is derived from the title so the
// two cannot drift apart.
func parseLessonForm(r *http.Request) (model.CreateLessonRequest, map[string]string) {
	fields, parseErrs := parseLessonFormFields(r)
	errs := validateLessonForm(fields)
	for k, v := range parseErrs {
		if v != "" {
			errs[k] = v
		}
	}

	return model.CreateLessonRequest{
		Title:        fields.Title,
		Description:  fields.Description,
		Difficulty:   model.Difficulty(fields.Difficulty),
		DurationMins: fields.DurationMins,
		Published:    fields.Published,
	}, errs
}

// lessonFormService adapts LessonsService to the generic form handler,
// binding the session token. Edit submissions post the full lesson state, so
// the update request sets every field.
type lessonFormService struct {
	svc   LessonsService
	token string
}

func (s lessonFormService) Create(ctx context.Context, req model.CreateLessonRequest) (any, error) {
	lesson, err := s.svc.Create(ctx, s.token, req)
	if err != nil {
		return nil, err
	}
	s.refetch(ctx)
	return lesson, nil
}

func (s lessonFormService) Update(ctx context.Context, id string, req model.CreateLessonRequest) (any, error) {
	upd := model.UpdateLessonRequest{
		Title:        &req.Title,
		Description:  &req.Description,
		Difficulty:   &req.Difficulty,
		DurationMins: &req.DurationMins,
		Published:    &req.Published,
	}
	lesson, err := s.svc.Update(ctx, s.token, id, upd)
	if err != nil {
		return nil, err
	}
	s.refetch(ctx)
	return lesson, nil
}

// refetch warms the lesson list right after a successful mutation so the
// redirect target renders the new state. Refresh already invalidated the
// cache, so a refetch failure just means the list page fetches on load.
func (s lessonFormService) refetch(ctx context.Context) {
	_, _ = s.svc.Refresh(ctx, s.token)
}

// --- Handlers ---

// LessonNew renders the create form.
// GET /lessons/new.
func (h *UIHandlers) LessonNew(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Mode":             FormModeCreate,
		"FormTitle":        "",
		"FormDescription":  "",
		"FormDifficulty":   string(model.DifficultyBeginner),
		"FormDurationMins": 0,
		"FormPublished":    false,
	}
	h.renderLessonForm(w, r, data)
}

// LessonEdit renders the edit form populated from an existing lesson.
// GET /lessons/{id}/edit.
func (h *UIHandlers) LessonEdit(w http.ResponseWriter, r *http.Request) {
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

	data := map[string]any{
		"Mode":             FormModeEdit,
		"LessonID":         lesson.ID,
		"FormTitle":        lesson.Title,
		"FormSlug":         lesson.Slug,
		"FormDescription":  lesson.Description,
		"FormDifficulty":   string(lesson.Difficulty),
		"FormDurationMins": lesson.DurationMins,
		"FormPublished":    lesson.Published,
	}
	h.renderLessonForm(w, r, data)
}

// LessonCreate handles lesson creation.
// POST /lessons.
func (h *UIHandlers) LessonCreate(w http.ResponseWriter, r *http.Request) {
	h.handleLessonForm(w, r, FormModeCreate)
}

// LessonUpdate handles lesson edits.
// POST /lessons/{id}.
func (h *UIHandlers) LessonUpdate(w http.ResponseWriter, r *http.Request) {
	h.handleLessonForm(w, r, FormModeEdit)
}

func (h *UIHandlers) handleLessonForm(w http.ResponseWriter, r *http.Request, mode FormMode) {
	title, pageTitle := lessonFormTitles(mode)
	HandleForm(FormHandlerOpts[model.CreateLessonRequest]{
		W: w, R: r, Mode: mode,
		Parser:     parseLessonForm,
		Service:    lessonFormService{svc: h.LessonSvc, token: sessionToken(r)},
		Renderer:   h.renderLessonForm,
		SuccessURL: "/lessons",
		PageMeta:   PageMeta{Title: title, PageTitle: pageTitle, CurrentPage: PageLessonForm},
		ExtraData: map[string]any{
			"LessonID": r.PathValue("id"),
		},
	})
}
