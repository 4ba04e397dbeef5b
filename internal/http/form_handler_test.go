package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

// testForm is a minimal form payload for exercising the generic handler.
type testForm struct {
	Title string
}

// fakeFormService records calls and returns a configured error.
type fakeFormService struct {
	createCalled bool
	updateCalled bool
	gotID        string
	gotReq       testForm
	err          error
}

func (s *fakeFormService) Create(_ context.Context, req testForm) (any, error) {
	s.createCalled = true
	s.gotReq = req
	return nil, s.err
}

func (s *fakeFormService) Update(_ context.Context, id string, req testForm) (any, error) {
	s.updateCalled = true
	s.gotID = id
	s.gotReq = req
	return nil, s.err
}

// captureRenderer records what the form handler asked to render.
type captureRenderer struct {
	called bool
	data   map[string]any
}

func (c *captureRenderer) render(_ http.ResponseWriter, _ *http.Request, data map[string]any) {
	c.called = true
	c.data = data
}

func okParser(_ *http.Request) (testForm, map[string]string) {
	return testForm{Title: "Open Chords"}, nil
}

func formRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func TestHandleForm_CreateSuccessRedirects(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:          w,
		R:          formRequest(http.MethodPost, "/lessons"),
		Mode:       FormModeCreate,
		Parser:     okParser,
		Service:    svc,
		Renderer:   renderer.render,
		SuccessURL: "/lessons",
	})

	assert.True(t, svc.createCalled)
	assert.False(t, svc.updateCalled)
	assert.Equal(t, "Open Chords", svc.gotReq.Title)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/lessons", w.Header().Get("Hx-Redirect"))
	assert.False(t, renderer.called, "success should not re-render the form")
}

func TestHandleForm_EditDispatchesUpdateWithID(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:          w,
		R:          formRequest(http.MethodPost, "/lessons/l42/edit"),
		Mode:       FormModeEdit,
		Parser:     okParser,
		Service:    svc,
		Renderer:   renderer.render,
		SuccessURL: "/lessons",
		GetID:      func(*http.Request) string { return "l42" },
	})

	assert.True(t, svc.updateCalled)
	assert.Equal(t, "l42", svc.gotID)
	assert.Equal(t, "/lessons", w.Header().Get("Hx-Redirect"))
}

func TestHandleForm_EditWithoutIDIs404(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:        w,
		R:        formRequest(http.MethodPost, "/lessons/edit"),
		Mode:     FormModeEdit,
		Parser:   okParser,
		Service:  svc,
		Renderer: renderer.render,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, svc.updateCalled)
}

func TestHandleForm_MisconfiguredIs500(t *testing.T) {
	w := httptest.NewRecorder()

	HandleForm(FormHandlerOpts[testForm]{
		W:    w,
		R:    formRequest(http.MethodPost, "/lessons"),
		Mode: FormModeCreate,
		// Parser, Service, Renderer all missing
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "misconfigured form handler")
}

func TestHandleForm_InvalidModeIs400(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:        w,
		R:        formRequest(http.MethodPost, "/lessons"),
		Mode:     FormMode("delete"),
		Parser:   okParser,
		Service:  svc,
		Renderer: renderer.render,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleForm_ParserErrorsReRenderWithFormData(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{}
	renderer := &captureRenderer{}

	parser := func(*http.Request) (testForm, map[string]string) {
		return testForm{Title: "x"}, map[string]string{"title": "Title must be at least 3 characters."}
	}

	HandleForm(FormHandlerOpts[testForm]{
		W:        w,
		R:        formRequest(http.MethodPost, "/lessons"),
		Mode:     FormModeCreate,
		Parser:   parser,
		Service:  svc,
		Renderer: renderer.render,
		ExtraData: map[string]any{
			"Difficulties": []string{"BEGINNER"},
		},
	})

	assert.False(t, svc.createCalled, "service should not be called on parse failure")
	require.True(t, renderer.called)

	errs, ok := renderer.data["Errors"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Title must be at least 3 characters.", errs["title"])
	assert.Equal(t, errMsgFixBelow, renderer.data["ErrorMessage"])
	assert.Equal(t, FormModeCreate, renderer.data["Mode"])
	assert.Equal(t, testForm{Title: "x"}, renderer.data["FormData"])
	assert.Equal(t, []string{"BEGINNER"}, renderer.data["Difficulties"])
}

func TestHandleForm_ErrorStatusAppliesToFieldErrors(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{}
	renderer := &captureRenderer{}

	parser := func(*http.Request) (testForm, map[string]string) {
		return testForm{}, map[string]string{"title": "Title is required."}
	}

	HandleForm(FormHandlerOpts[testForm]{
		W:           w,
		R:           formRequest(http.MethodPost, "/lessons"),
		Mode:        FormModeCreate,
		Parser:      parser,
		Service:     svc,
		Renderer:    renderer.render,
		ErrorStatus: http.StatusUnprocessableEntity,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, renderer.called)
}

func TestHandleForm_UnauthorizedRedirectsHome(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{err: apperrors.Unauthorized("session expired")}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:          w,
		R:          formRequest(http.MethodPost, "/lessons"),
		Mode:       FormModeCreate,
		Parser:     okParser,
		Service:    svc,
		Renderer:   renderer.render,
		SuccessURL: "/lessons",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "/", w.Header().Get("Hx-Redirect"))
	assert.False(t, renderer.called)
}

func TestHandleForm_ValidationErrorFromService(t *testing.T) {
	t.Run("field error routes to the field", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc := &fakeFormService{err: apperrors.ValidationField("slug", "Slug is already taken.")}
		renderer := &captureRenderer{}

		HandleForm(FormHandlerOpts[testForm]{
			W:        w,
			R:        formRequest(http.MethodPost, "/lessons"),
			Mode:     FormModeCreate,
			Parser:   okParser,
			Service:  svc,
			Renderer: renderer.render,
		})

		require.True(t, renderer.called)
		errs, ok := renderer.data["Errors"].(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "Slug is already taken.", errs["slug"])
	})

	t.Run("general validation message shown verbatim", func(t *testing.T) {
		w := httptest.NewRecorder()
		svc := &fakeFormService{err: apperrors.Validation("Duration must be positive.")}
		renderer := &captureRenderer{}

		HandleForm(FormHandlerOpts[testForm]{
			W:        w,
			R:        formRequest(http.MethodPost, "/lessons"),
			Mode:     FormModeCreate,
			Parser:   okParser,
			Service:  svc,
			Renderer: renderer.render,
		})

		require.True(t, renderer.called)
		assert.Equal(t, "Duration must be positive.", renderer.data["ErrorMessage"])
		_, hasFieldErrors := renderer.data["Errors"]
		assert.False(t, hasFieldErrors)
	})
}

func TestHandleForm_CustomErrorHandlerWins(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{err: errors.New("duplicate key")}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:        w,
		R:        formRequest(http.MethodPost, "/lessons"),
		Mode:     FormModeCreate,
		Parser:   okParser,
		Service:  svc,
		Renderer: renderer.render,
		HandleError: func(err error) (map[string]string, string) {
			return map[string]string{"title": "A lesson with this title already exists."}, ""
		},
	})

	require.True(t, renderer.called)
	errs, ok := renderer.data["Errors"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "A lesson with this title already exists.", errs["title"])
}

func TestHandleForm_ContextCanceledIs408(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{err: context.Canceled}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:        w,
		R:        formRequest(http.MethodPost, "/lessons"),
		Mode:     FormModeCreate,
		Parser:   okParser,
		Service:  svc,
		Renderer: renderer.render,
	})

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.False(t, renderer.called)
}

func TestHandleForm_GenericServiceErrorIsGenericMessage(t *testing.T) {
	w := httptest.NewRecorder()
	svc := &fakeFormService{err: errors.New("pq: connection reset")}
	renderer := &captureRenderer{}

	HandleForm(FormHandlerOpts[testForm]{
		W:        w,
		R:        formRequest(http.MethodPost, "/lessons"),
		Mode:     FormModeCreate,
		Parser:   okParser,
		Service:  svc,
		Renderer: renderer.render,
	})

	require.True(t, renderer.called)
	assert.Equal(t, "Unable to save. Please try again.", renderer.data["ErrorMessage"])
}
