//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxLessonTitleLen = 255
)

// Difficulty grades a lesson for the student-facing catalog.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
	DifficultyExpert       Difficulty = "EXPERT"
)

// Difficulties lists the supported grades in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert}
}

// Valid reports whether the difficulty is supported.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	default:
		return false
	}
}

// ParseDifficulty normalizes a difficulty string and reports whether it is supported.
func ParseDifficulty(value string) (Difficulty, bool) {
	d := Difficulty(strings.ToUpper(strings.TrimSpace(value)))
	if d.Valid() {
		return d, true
	}
	return "", false
}

// Lesson represents a lesson record as held by the lesson API.
type Lesson struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	DurationMins int        `json:"duration_mins"`
	Published    bool       `json:"published"`
	Assets       []Asset    `json:"assets,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DeriveSlug produces a URL identifier from a lesson title: lowercase, spaces
// become hyphens, and anything outside letters, digits, underscore, or hyphen
// is dropped. Derivation is not reversible and collisions are the server's
// problem, not ours.
func DeriveSlug(title string) string {
	lowered := strings.ToLower(title)
	hyphenated := strings.ReplaceAll(lowered, " ", "-")
	var b strings.Builder
	b.Grow(len(hyphenated))
	for _, r := range hyphenated {
		switch {
		case r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreateLessonRequest represents parameters to create a Lesson. Slug is always
// derived from the title at submit time, never user supplied.
type CreateLessonRequest struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description"`
	Difficulty   Difficulty `json:"difficulty"`
	DurationMins int        `json:"duration_mins"`
	Published    bool       `json:"published"`
}

// UpdateLessonRequest represents parameters to update a Lesson. The slug is
// fixed at creation and absent here.
type UpdateLessonRequest struct {
	Title        *string     `json:"title,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Difficulty   *Difficulty `json:"difficulty,omitempty"`
	DurationMins *int        `json:"duration_mins,omitempty"`
	Published    *bool       `json:"published,omitempty"`
}

// Validate validates CreateLessonRequest and fills in the derived slug.
func (r *CreateLessonRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxLessonTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if !r.Difficulty.Valid() {
		return errors.New("invalid difficulty")
	}
	if r.DurationMins < 0 {
		return errors.New("duration_mins cannot be negative")
	}
	r.Title = title
	r.Slug = DeriveSlug(title)
	return nil
}

// HasUpdates reports whether any field is set in UpdateLessonRequest.
func (r *UpdateLessonRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.Difficulty != nil ||
		r.DurationMins != nil ||
		r.Published != nil
}

// Validate validates UpdateLessonRequest, ensuring at least one field is set and values are sane.
func (r *UpdateLessonRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxLessonTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
		*r.Title = t
	}
	if r.Difficulty != nil && !r.Difficulty.Valid() {
		return errors.New("invalid difficulty")
	}
	if r.DurationMins != nil && *r.DurationMins < 0 {
		return errors.New("duration_mins cannot be negative")
	}
	return nil
}
