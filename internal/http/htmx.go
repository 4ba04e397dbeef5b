package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether htmx issued the request (Hx-Request: true). Boosted
// navigation and history restores carry the header too.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// WantsPartial reports whether the response should be the main fragment only.
// Every htmx request gets a fragment; full page loads get the layout.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// SetHXRedirect tells htmx to perform a full client-side navigation to url
// instead of swapping the response body.
func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

// SetHXTrigger fires a client-side event after the swap. The header value is
// a JSON object keyed by event name; a nil payload becomes true.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	if payload == nil {
		payload = true
	}
	b, err := json.Marshal(map[string]any{event: payload})
	if err != nil {
		// An unserializable payload still fires the bare event.
		w.Header().Set("Hx-Trigger", `{"`+event+`":true}`)
		return
	}
	w.Header().Set("Hx-Trigger", string(b))
}
