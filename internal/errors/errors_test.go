package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_MessageIncludesCause(t *testing.T) {
	assert.Equal(t, "lesson not found",
		NotFound("lesson not found").Error())

	wrapped := Wrap(errors.New("dial tcp: connection refused"), ErrCodeTransport, "list lessons")
	assert.Equal(t, "list lessons: dial tcp: connection refused", wrapped.Error())
}

func TestAppError_ChainSurvivesWrapping(t *testing.T) {
	cause := errors.New("token expired")
	err := Wrap(Unauthorized("session rejected"), ErrCodeInternal, "refresh dashboard")
	require.Error(t, err)

	// The inner classification stays visible through the outer wrap.
	assert.True(t, IsUnauthorized(err))
	assert.True(t, errors.Is(Wrap(cause, ErrCodeUpstream, "save lesson"), cause))
}

func TestConstructors_SetCodeAndMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{"not found", NotFound("lesson not found"), ErrCodeNotFound, "lesson not found"},
		{"not found formatted", NotFoundf("lesson %s not found", "l42"), ErrCodeNotFound, "lesson l42 not found"},
		{"validation", Validation("title is required"), ErrCodeValidation, "title is required"},
		{"validation formatted", Validationf("duration must be at most %d", 240), ErrCodeValidation, "duration must be at most 240"},
		{"unauthorized", Unauthorized("token rejected"), ErrCodeUnauthorized, "token rejected"},
		{"transport", Transport("connection refused"), ErrCodeTransport, "connection refused"},
		{"upstream", Upstream("lesson service unavailable"), ErrCodeUpstream, "lesson service unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.Empty(t, tt.err.Field)
		})
	}
}

func TestValidationField_CarriesTheField(t *testing.T) {
	err := ValidationField("email", "invalid email format")
	assert.Equal(t, ErrCodeValidation, err.Code)
	assert.Equal(t, "email", err.Field)
	assert.Equal(t, "invalid email format", err.Message)
}

func TestWrap_NilPassesThrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestWrapf_FormatsMessage(t *testing.T) {
	err := Wrapf(errors.New("boom"), ErrCodeUpstream, "get lesson %s", "l42")
	require.Error(t, err)
	assert.Equal(t, "get lesson l42", err.Message)
	assert.Equal(t, ErrCodeUpstream, err.Code)
}

func TestClassifiers(t *testing.T) {
	timeout := &AppError{Code: ErrCodeTimeout, Message: "deadline exceeded"}
	canceled := &AppError{Code: ErrCodeCanceled, Message: "caller went away"}

	tests := []struct {
		name  string
		check func(error) bool
		hit   error
	}{
		{"not found", IsNotFound, NotFound("lesson not found")},
		{"validation", IsValidation, ValidationField("title", "required")},
		{"unauthorized", IsUnauthorized, Unauthorized("token rejected")},
		{"transport", IsTransport, Transport("connection refused")},
		{"upstream", IsUpstream, Upstream("bad gateway")},
		{"timeout", IsTimeout, timeout},
		{"canceled", IsCanceled, canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.hit))
			assert.True(t, tt.check(fmt.Errorf("outer: %w", tt.hit)),
				"classification lost through fmt.Errorf wrapping")
			assert.False(t, tt.check(errors.New("plain error")))
			assert.False(t, tt.check(nil))
		})
	}
}

func TestGetField(t *testing.T) {
	assert.Equal(t, "email", GetField(ValidationField("email", "invalid")))
	assert.Equal(t, "", GetField(NotFound("lesson not found")))
	assert.Equal(t, "", GetField(errors.New("plain error")))
	assert.Equal(t, "", GetField(nil))
}
