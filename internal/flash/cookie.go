package flash

import (
	"net/http"
	"net/url"
	"time"
)

// CookieName is the cookie the flash message travels in.
const CookieName = "flash-message"

// CookieSlot implements Slot over the cookie of a single request/response
// pair. It is intentionally readable by client scripts (httpOnly=false); the
// secure flag is enabled only in production-like environments.
type CookieSlot struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

// NewCookieSlot creates a cookie-backed slot bound to one request lifecycle.
func NewCookieSlot(w http.ResponseWriter, r *http.Request, secure bool) *CookieSlot {
	return &CookieSlot{w: w, r: r, secure: secure}
}

// Get reads the flash cookie from the request.
func (s *CookieSlot) Get() (string, bool) {
	cookie, err := s.r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		// Undecodable content counts as absence.
		return "", false
	}
	return value, true
}

// Set writes the flash cookie on the response.
func (s *CookieSlot) Set(value string, ttl time.Duration) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: false,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Delete expires the flash cookie on the response.
func (s *CookieSlot) Delete() {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: false,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
