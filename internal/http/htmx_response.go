package httpx

import (
	"net/http"
)

// HTMXResponse wraps a ResponseWriter with the couple of htmx response
// patterns the handlers use.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX starts an htmx response against w.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Redirect sends Hx-Redirect with a 204 so htmx navigates instead of
// swapping. The handler must not write anything after this.
func (h *HTMXResponse) Redirect(url string) {
	SetHXRedirect(h.w, url)
	h.w.WriteHeader(http.StatusNoContent)
}

// Trigger queues a client-side event for after the swap. Chainable; a second
// call replaces the header rather than merging events.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	SetHXTrigger(h.w, event, payload)
	return h
}
