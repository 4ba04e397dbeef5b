package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across UI handlers and template mapping.
const (
	// Main navigation pages.
	PageHome      = "home"
	PageDashboard = "dashboard"
	PageLoading   = "loading"

	// Auth-related pages.
	PageLogin         = "login"
	PageResetPassword = "reset-password"
	PageVerify        = "verify"

	// Lesson-related pages.
	PageLessons    = "lessons"
	PageLessonView = "lesson-view"
	PageLessonForm = "lesson-form"
)

// Template paths used for loading templates in tests and production.
const (
	// Template directory paths.
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// FormMode represents the mode of a form (create or edit).
// Using a dedicated type improves compile-time checks and prevents typos.
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:          "dashboard-content",
	PageDashboard:     "dashboard-content",
	PageLoading:       "loading-content",
	PageLogin:         "login-content",
	PageResetPassword: "reset-password-content",
	PageVerify:        "verify-content",
	PageLessons:       "lessons-content",
	PageLessonView:    "lesson-view-content",
	PageLessonForm:    "lesson-form-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
