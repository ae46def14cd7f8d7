// Package auth implements the admin dashboard login and its signed session
// cookie.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cafe-site/internal/model"
)

// CookieName is the session cookie set after a successful login.
const CookieName = "cafe_admin_session"

// clockSkew is how far in the future an issue time may lie.
const clockSkew = time.Minute

// Sessions issues and verifies admin session tokens.
//
// A token is "<unix-seconds>.<hex hmac-sha256(secret, unix-seconds)>". Tokens
// carry no server state; rotating the secret logs everyone out.
type Sessions struct {
	passwordSum [sha256.Size]byte
	secret      []byte
	ttl         time.Duration
	secure      bool
}

// NewSessions creates a session issuer for the given admin password.
func NewSessions(password, secret string, ttl time.Duration, secureCookie bool) *Sessions {
	return &Sessions{
		passwordSum: sha256.Sum256([]byte(password)),
		secret:      []byte(secret),
		ttl:         ttl,
		secure:      secureCookie,
	}
}

// TTL returns how long a session stays valid.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Login checks password and returns a fresh token.
func (s *Sessions) Login(password string, now time.Time) (string, error) {
	// Comparing digests keeps the comparison independent of the password length.
	sum := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(sum[:], s.passwordSum[:]) != 1 {
		return "", model.ErrUnauthorised
	}
	return s.Issue(now), nil
}

// Issue returns a token stamped with now.
func (s *Sessions) Issue(now time.Time) string {
	issued := strconv.FormatInt(now.Unix(), 10)
	return issued + "." + s.sign(issued)
}

// Verify reports whether token was issued by s and has not expired at now.
func (s *Sessions) Verify(token string, now time.Time) bool {
	issued, sig, ok := strings.Cut(token, ".")
	if !ok || issued == "" || sig == "" {
		return false
	}

	if !hmac.Equal([]byte(sig), []byte(s.sign(issued))) {
		return false
	}

	unix, err := strconv.ParseInt(issued, 10, 64)
	if err != nil {
		return false
	}
	at := time.Unix(unix, 0)

	if at.After(now.Add(clockSkew)) {
		return false
	}
	return now.Sub(at) <= s.ttl
}

func (s *Sessions) sign(issued string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(issued))
	return hex.EncodeToString(mac.Sum(nil))
}

// Cookie wraps token in the session cookie.
func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie returns a cookie that removes the session from the browser.
func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// FromRequest returns the session token carried by r, if any.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
