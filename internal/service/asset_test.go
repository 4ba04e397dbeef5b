package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/mocks"
)

func newAssetService(t *testing.T, maxBytes int64) (*AssetService, *mocks.MockAssetAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := mocks.NewMockAssetAPI(ctrl)
	svc := NewAssetService(AssetServiceOptions{
		API:    api,
		Config: AssetServiceConfig{MaxUploadBytes: maxBytes},
	})
	return svc, api
}

func TestAssetUpload_Delegates(t *testing.T) {
	svc, api := newAssetService(t, 1<<20)
	ctx := context.Background()

	req := model.UploadAssetRequest{
		LessonID:    "l1",
		Type:        model.AssetTypePDF,
		DisplayName: "Chord chart",
		FileName:    "chart.pdf",
	}

	api.EXPECT().
		Upload(gomock.Any(), "tok", req, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ model.UploadAssetRequest, file io.Reader) (model.Asset, error) {
			content, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "pdf-bytes", string(content))
			return model.Asset{ID: "a1", LessonID: "l1", Type: model.AssetTypePDF}, nil
		})

	asset, err := svc.Upload(ctx, "tok", req, strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "a1", asset.ID)
}

func TestAssetUpload_InvalidRequestNeverReachesAPI(t *testing.T) {
	svc, _ := newAssetService(t, 1<<20)

	_, err := svc.Upload(context.Background(), "tok", model.UploadAssetRequest{
		Type:        model.AssetTypePDF,
		DisplayName: "x",
		FileName:    "x.pdf",
	}, strings.NewReader("data"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAssetUpload_OversizeFileRejected(t *testing.T) {
	svc, api := newAssetService(t, 4)
	ctx := context.Background()

	req := model.UploadAssetRequest{
		LessonID:    "l1",
		Type:        model.AssetTypeAudio,
		DisplayName: "Backing track",
		FileName:    "track.mp3",
	}

	api.EXPECT().
		Upload(gomock.Any(), "tok", req, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ model.UploadAssetRequest, file io.Reader) (model.Asset, error) {
			_, err := io.ReadAll(file)
			return model.Asset{}, err
		})

	_, err := svc.Upload(ctx, "tok", req, strings.NewReader("way too many bytes"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
