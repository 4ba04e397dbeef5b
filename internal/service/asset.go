package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// AssetServiceConfig groups tuning knobs for AssetService.
type AssetServiceConfig struct {
	// MaxUploadBytes caps the accepted file size. Zero means 25 MiB.
	MaxUploadBytes int64
}

// AssetServiceOptions groups dependencies for AssetService.
type AssetServiceOptions struct {
	API    ports.AssetAPI
	Config AssetServiceConfig
	Logger *slog.Logger
}

// AssetService relays lesson attachment uploads to the lesson API. Storage
// lives upstream; this layer only validates and size-caps.
type AssetService struct {
	api      ports.AssetAPI
	maxBytes int64
	logger   *slog.Logger
}

// NewAssetService constructs a new AssetService.
func NewAssetService(opts AssetServiceOptions) *AssetService {
	if opts.API == nil {
		panic("AssetAPI is required")
	}

	maxBytes := opts.Config.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 25 << 20
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AssetService{
		api:      opts.API,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// MaxUploadBytes reports the configured upload cap for form hints.
func (s *AssetService) MaxUploadBytes() int64 { return s.maxBytes }

// Upload validates the request and streams the file to the lesson API. The
// reader is capped at one byte over the limit so oversize files fail fast
// with a clear message instead of a truncated upload.
func (s *AssetService) Upload(
	ctx context.Context,
	token string,
	req model.UploadAssetRequest,
	file io.Reader,
) (model.Asset, error) {
	if err := req.Validate(); err != nil {
		return model.Asset{}, apperrors.Validation(err.Error())
	}

	limited := &limitedReader{r: io.LimitReader(file, s.maxBytes+1), max: s.maxBytes}
	asset, err := s.api.Upload(ctx, token, req, limited)
	if err != nil {
		return model.Asset{}, err
	}
	if limited.exceeded() {
		return model.Asset{}, apperrors.Validationf("file exceeds the %d MB upload limit", s.maxBytes>>20)
	}

	s.logger.Info("asset uploaded", "lesson_id", req.LessonID, "type", req.Type, "name", req.DisplayName)
	return asset, nil
}

type limitedReader struct {
	r    io.Reader
	max  int64
	read int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.exceeded() {
		return n, apperrors.Validation("file too large")
	}
	return n, err
}

func (l *limitedReader) exceeded() bool { return l.read > l.max }
