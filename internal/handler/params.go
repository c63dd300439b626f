package handler

import (
	"net/http"
	"strconv"

	"hirebase/internal/httputil"
)

// PathParam extracts a required path parameter, writing a 400 response when
// it is missing. The boolean reports whether the handler should continue.
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}

// QueryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed and clamping the result to [min, max].
func QueryInt(r *http.Request, name string, def, min, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if parsed < min {
		return min
	}
	if parsed > max {
		return max
	}
	return parsed
}
