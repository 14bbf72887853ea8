package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// ParseOptionalFloat parses an optional float query parameter.
// A missing or empty parameter yields the provided default. A malformed or
// negative value is rejected with 400. Returns the value and a boolean
// indicating success.
func ParseOptionalFloat(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, def float64) (float64, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def, true
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil || floatValue < 0 {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s number: %s", key, value))
		return 0, false
	}
	return floatValue, true
}

// ParseCSV splits a comma-separated query parameter into its non-empty parts.
// A missing parameter yields a nil slice.
func ParseCSV(r *http.Request, key string) []string {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
