package sdk

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the unverified claims of an access token.
//
// The client never validates signatures; the backend does. Claims are only read
// to locate the user and to fill gaps in profile payloads.
type TokenClaims map[string]any

// DecodeToken parses the payload of a JWT without verifying it. A malformed token
// yields nil, false: callers treat it as "no token".
//
// The header must name a signing algorithm known to golang-jwt ("none" included).
// A token with a missing or unrecognized alg is treated as malformed even when its
// payload decodes, so a stored session carrying one is cleared on Restore.
func DecodeToken(raw string) (TokenClaims, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	return TokenClaims(claims), true
}

// String returns a claim as a string. Numeric claims are formatted without a
// fractional part.
func (c TokenClaims) String(key string) string {
	switch v := c[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int64 returns a numeric claim, accepting numeric strings.
func (c TokenClaims) Int64(key string) (int64, bool) {
	return toInt64(c[key])
}

// UserID returns the user_id claim issued by the backend.
func (c TokenClaims) UserID() (int64, bool) {
	return c.Int64("user_id")
}

// ExpiresAt returns the exp claim, or the zero time.
func (c TokenClaims) ExpiresAt() time.Time {
	exp, err := jwt.MapClaims(c).GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), n != 0
	case int:
		return int64(n), n != 0
	case int64:
		return n, n != 0
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil || parsed == 0 {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
