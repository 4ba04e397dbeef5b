//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// AssetType classifies an uploaded lesson attachment.
type AssetType string

const (
	AssetTypePDF   AssetType = "PDF"
	AssetTypeAudio AssetType = "AUDIO"
	AssetTypeImage AssetType = "IMAGE"
)

// AssetTypes lists the supported attachment types in display order.
func AssetTypes() []AssetType {
	return []AssetType{AssetTypePDF, AssetTypeAudio, AssetTypeImage}
}

// Valid reports whether the asset type is supported.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypePDF, AssetTypeAudio, AssetTypeImage:
		return true
	default:
		return false
	}
}

// ParseAssetType normalizes an asset type string and reports whether it is supported.
func ParseAssetType(value string) (AssetType, bool) {
	t := AssetType(strings.ToUpper(strings.TrimSpace(value)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// Asset represents an attachment already stored by the lesson API.
type Asset struct {
	ID          string    `json:"id"`
	LessonID    string    `json:"lesson_id"`
	Type        AssetType `json:"type"`
	DisplayName string    `json:"display_name"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadAssetRequest represents a pending multipart upload. The file body is
// carried separately by the adapter; only the descriptive fields live here.
type UploadAssetRequest struct {
	LessonID    string
	Type        AssetType
	DisplayName string
	FileName    string
}

// Validate validates UploadAssetRequest. Uploads require a persisted lesson,
// so an empty LessonID is rejected here rather than upstream.
func (r *UploadAssetRequest) Validate() error {
	if strings.TrimSpace(r.LessonID) == "" {
		return errors.New("lesson_id is required")
	}
	if !r.Type.Valid() {
		return errors.New("invalid asset type")
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		return errors.New("display_name is required")
	}
	if strings.TrimSpace(r.FileName) == "" {
		return errors.New("a file is required")
	}
	return nil
}
