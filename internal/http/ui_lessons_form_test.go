package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

func lessonForm(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/lessons", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r.WithContext(SetSessionInContext(r.Context(), adminSession()))
}

func validLessonForm() url.Values {
	return url.Values{
		"title":         {"Open Chords"},
		"description":   {"The CAGED system."},
		"difficulty":    {"beginner"},
		"duration_mins": {"30"},
		"published":     {"on"},
	}
}

func TestParseLessonForm_Valid(t *testing.T) {
	req, errs := parseLessonForm(lessonForm(validLessonForm()))

	assert.Empty(t, errs)
	assert.Equal(t, "Open Chords", req.Title)
	assert.Equal(t, model.DifficultyBeginner, req.Difficulty)
	assert.Equal(t, 30, req.DurationMins)
	assert.True(t, req.Published)
}

func TestParseLessonForm_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
		field  string
	}{
		{
			name:   "missing title",
			mutate: func(v url.Values) { v.Set("title", "") },
			field:  "title",
		},
		{
			name:   "unknown difficulty",
			mutate: func(v url.Values) { v.Set("difficulty", "impossible") },
			field:  "difficulty",
		},
		{
			name:   "non-numeric duration",
			mutate: func(v url.Values) { v.Set("duration_mins", "thirty") },
			field:  "duration_mins",
		},
		{
			name:   "negative duration",
			mutate: func(v url.Values) { v.Set("duration_mins", "-5") },
			field:  "duration_mins",
		},
		{
			name:   "duration over limit",
			mutate: func(v url.Values) { v.Set("duration_mins", "601") },
			field:  "duration_mins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validLessonForm()
			tt.mutate(form)

			_, errs := parseLessonForm(lessonForm(form))
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestParseLessonForm_DifficultyIsCaseInsensitive(t *testing.T) {
	form := validLessonForm()
	form.Set("difficulty", "AdVaNcEd")

	req, errs := parseLessonForm(lessonForm(form))
	assert.Empty(t, errs)
	assert.Equal(t, model.DifficultyAdvanced, req.Difficulty)
}

func TestLessonNew_RendersCreateForm(t *testing.T) {
	h, _ := newLessonHandlers(t)
	if h == nil {
		return
	}

	w := httptest.NewRecorder()
	h.LessonNew(w, adminRequest(http.MethodGet, "/lessons/new"))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "New Lesson")
	// All difficulty grades offered
	for _, d := range model.Difficulties() {
		assert.Contains(t, body, string(d))
	}
	// Double submits are blocked while the create is in flight.
	assert.Contains(t, body, `hx-disabled-elt="find button[type=submit]"`)
}

func TestLessonEdit_PopulatesFormFromLesson(t *testing.T) {
	h, api := newLessonHandlers(t)
	if h == nil {
		return
	}

	api.EXPECT().List(gomock.Any(), "tok-admin").Return(sampleLessons(), nil)

	r := adminRequest(http.MethodGet, "/lessons/l1/edit")
	r.SetPathValue("id", "l1")
	w := httptest.NewRecorder()
	h.LessonEdit(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Edit Lesson")
	assert.Contains(t, body, "Open Chords")
	assert.Contains(t, body, "open-chords")
}

func TestLessonEdit_UnknownIDIs404(t *testing.T) {
	h, api := newLessonHandlers(t)
	if h == nil {
		return
	}

	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(sampleLessons(), nil)

	r := adminRequest(http.MethodGet, "/lessons/missing/edit")
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	h.LessonEdit(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLessonCreate_SuccessRefetchesAndRedirects(t *testing.T) {
	h, api := newLessonHandlers(t)
	if h == nil {
		return
	}

	create := api.EXPECT().Create(gomock.Any(), "tok-admin", gomock.Any()).
		DoAndReturn(func(_ any, _ string, req model.CreateLessonRequest) (model.Lesson, error) {
			// Slug derived server-side from the title, never from the form.
			assert.Equal(t, "open-chords", req.Slug)
			return model.Lesson{ID: "l9", Title: req.Title, Slug: req.Slug}, nil
		})
	// The list is refetched once the create has landed, never before.
	refetch := api.EXPECT().List(gomock.Any(), "tok-admin").Return(sampleLessons(), nil)
	gomock.InOrder(create, refetch)

	w := httptest.NewRecorder()
	h.LessonCreate(w, lessonForm(validLessonForm()))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/lessons", w.Header().Get("Hx-Redirect"))
}

func TestLessonCreate_ValidationErrorReRendersForm(t *testing.T) {
	h, _ := newLessonHandlers(t)
	if h == nil {
		return
	}

	form := validLessonForm()
	form.Set("title", "")
	w := httptest.NewRecorder()
	h.LessonCreate(w, lessonForm(form))

	// No upstream call happens; the form re-renders with the error inline.
	body := w.Body.String()
	assert.Contains(t, body, errMsgFixBelow)
	assert.Empty(t, w.Header().Get("Hx-Redirect"))
}

func TestLessonCreate_UpstreamValidationShownVerbatim(t *testing.T) {
	h, api := newLessonHandlers(t)
	if h == nil {
		return
	}

	api.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.Lesson{}, apperrors.Validation("A lesson with this slug already exists."))

	w := httptest.NewRecorder()
	h.LessonCreate(w, lessonForm(validLessonForm()))

	assert.Contains(t, w.Body.String(), "A lesson with this slug already exists.")
}

func TestLessonUpdate_SendsFullState(t *testing.T) {
	h, api := newLessonHandlers(t)
	if h == nil {
		return
	}

	update := api.EXPECT().Update(gomock.Any(), "tok-admin", "l1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, _ string, req model.UpdateLessonRequest) (model.Lesson, error) {
			require.NotNil(t, req.Title)
			require.NotNil(t, req.Description)
			require.NotNil(t, req.Difficulty)
			require.NotNil(t, req.DurationMins)
			require.NotNil(t, req.Published)
			assert.Equal(t, "Open Chords", *req.Title)
			return model.Lesson{ID: "l1"}, nil
		})
	refetch := api.EXPECT().List(gomock.Any(), "tok-admin").Return(sampleLessons(), nil)
	gomock.InOrder(update, refetch)

	r := lessonForm(validLessonForm())
	r.SetPathValue("id", "l1")
	w := httptest.NewRecorder()
	h.LessonUpdate(w, r)

	assert.Equal(t, "/lessons", w.Header().Get("Hx-Redirect"))
}

func TestLessonUpdate_MissingIDIs404(t *testing.T) {
	h, _ := newLessonHandlers(t)
	if h == nil {
		return
	}

	w := httptest.NewRecorder()
	h.LessonUpdate(w, lessonForm(validLessonForm()))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
