package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// WriteJSON encodes v into a buffer before touching the ResponseWriter, so an
// encoding failure can still produce a clean 500 instead of a half-written
// body.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// A write error here means the client went away; nothing to recover.
	_, _ = buf.WriteTo(w)
}

// ErrorParams names the pieces of a JSON error response.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError emits the JSON error shape API clients get for auth and
// permission failures.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}
