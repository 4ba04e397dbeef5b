// Package mocks provides mock implementations for testing the dashboard services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockAPI := mocks.NewMockLessonAPI(ctrl)
//	mockAPI.EXPECT().List(gomock.Any(), gomock.Any()).Return(lessons, nil)
package mocks

// Generate mock for AuthAPI interface from internal/ports package.
// This creates MockAuthAPI with methods for all AuthAPI interface methods:
// Login, Signup, Me, VerifyEmail, ForgotPassword, ResetPassword
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_api_mock.go github.com/guitarguru/gg-dashboard/internal/ports AuthAPI

// Generate mock for LessonAPI interface from internal/ports package.
// This creates MockLessonAPI with methods for all LessonAPI interface methods:
// List, Create, Update, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=lesson_api_mock.go github.com/guitarguru/gg-dashboard/internal/ports LessonAPI

// Generate mock for AssetAPI interface from internal/ports package.
// This creates MockAssetAPI with methods for all AssetAPI interface methods:
// Upload
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=asset_api_mock.go github.com/guitarguru/gg-dashboard/internal/ports AssetAPI
