package guruapi

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// lessonPayload is the upstream lesson object.
type lessonPayload struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Slug         string         `json:"slug"`
	Description  string         `json:"description"`
	Difficulty   string         `json:"difficulty"`
	DurationMins int            `json:"durationMins"`
	IsPublished  bool           `json:"isPublished"`
	Assets       []assetPayload `json:"assets"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type assetPayload struct {
	ID          string    `json:"id"`
	LessonID    string    `json:"lessonId"`
	AssetType   string    `json:"assetType"`
	DisplayName string    `json:"displayName"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p lessonPayload) toLesson() model.Lesson {
	lesson := model.Lesson{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Difficulty:   model.Difficulty(p.Difficulty),
		DurationMins: p.DurationMins,
		Published:    p.IsPublished,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, a := range p.Assets {
		lesson.Assets = append(lesson.Assets, a.toAsset())
	}
	return lesson
}

func (p assetPayload) toAsset() model.Asset {
	return model.Asset{
		ID:          p.ID,
		LessonID:    p.LessonID,
		Type:        model.AssetType(p.AssetType),
		DisplayName: p.DisplayName,
		URL:         p.URL,
		CreatedAt:   p.CreatedAt,
	}
}

// List fetches the full lesson catalog.
func (c *Client) List(ctx context.Context, token string) ([]model.Lesson, error) {
	envelope, err := c.do(ctx, "GET", "/lessons", token, nil, "", nil)
	if err != nil {
		return nil, err
	}

	var payloads []lessonPayload
	if err := c.extract(envelope, c.paths.Lessons, &payloads); err != nil {
		return nil, err
	}

	lessons := make([]model.Lesson, 0, len(payloads))
	for _, p := range payloads {
		lessons = append(lessons, p.toLesson())
	}
	return lessons, nil
}

// Create posts a new lesson. The request carries the derived slug; the server
// owns uniqueness.
func (c *Client) Create(ctx context.Context, token string, req model.CreateLessonRequest) (model.Lesson, error) {
	body := map[string]any{
		"title":        req.Title,
		"slug":         req.Slug,
		"description":  req.Description,
		"difficulty":   string(req.Difficulty),
		"durationMins": req.DurationMins,
		"isPublished":  req.Published,
	}

	envelope, err := c.do(ctx, "POST", "/lessons", token, body, "", nil)
	if err != nil {
		return model.Lesson{}, err
	}
	return c.decodeLesson(envelope)
}

// Update patches an existing lesson. Only set fields travel.
func (c *Client) Update(ctx context.Context, token, id string, req model.UpdateLessonRequest) (model.Lesson, error) {
	if id == "" {
		return model.Lesson{}, apperrors.Validation("lesson id is required")
	}

	body := map[string]any{}
	if req.Title != nil {
		body["title"] = *req.Title
	}
	if req.Description != nil {
		body["description"] = *req.Description
	}
	if req.Difficulty != nil {
		body["difficulty"] = string(*req.Difficulty)
	}
	if req.DurationMins != nil {
		body["durationMins"] = *req.DurationMins
	}
	if req.Published != nil {
		body["isPublished"] = *req.Published
	}

	envelope, err := c.do(ctx, "PATCH", "/lessons/"+url.PathEscape(id), token, body, "", nil)
	if err != nil {
		return model.Lesson{}, err
	}
	return c.decodeLesson(envelope)
}

// Delete removes a lesson.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return apperrors.Validation("lesson id is required")
	}
	_, err := c.do(ctx, "DELETE", "/lessons/"+url.PathEscape(id), token, nil, "", nil)
	return err
}

// Upload sends a lesson attachment as multipart form data.
func (c *Client) Upload(
	ctx context.Context,
	token string,
	req model.UploadAssetRequest,
	file io.Reader,
) (model.Asset, error) {
	if err := req.Validate(); err != nil {
		return model.Asset{}, apperrors.Validation(err.Error())
	}

	body, contentType, err := multipartBody(map[string]string{
		"lessonId":    req.LessonID,
		"assetType":   string(req.Type),
		"displayName": req.DisplayName,
	}, "file", req.FileName, file)
	if err != nil {
		return model.Asset{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upload body")
	}

	envelope, err := c.do(ctx, "POST", "/assets/upload", token, nil, contentType, body)
	if err != nil {
		return model.Asset{}, err
	}

	var payload assetPayload
	if err := c.extract(envelope, c.paths.Asset, &payload); err != nil {
		return model.Asset{}, err
	}
	return payload.toAsset(), nil
}

func (c *Client) decodeLesson(envelope map[string]any) (model.Lesson, error) {
	var payload lessonPayload
	if err := c.extract(envelope, c.paths.Lesson, &payload); err != nil {
		return model.Lesson{}, err
	}
	return payload.toLesson(), nil
}

var (
	_ ports.LessonAPI = (*Client)(nil)
	_ ports.AssetAPI  = (*Client)(nil)
)
