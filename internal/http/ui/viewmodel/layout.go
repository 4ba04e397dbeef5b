// Package viewmodel holds the typed shapes behind the layout chrome.
package viewmodel

// User is the signed-in user as templates see it.
type User struct {
	Email string
	Name  string
	Kind  string
}

// Layout carries the shared chrome state: titles, nav highlight, auth flags,
// and the CSRF token forms embed.
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	IsAdmin         bool
	User            *User
}
