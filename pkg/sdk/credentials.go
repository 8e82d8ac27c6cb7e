package sdk

import (
	"time"

	"golang.org/x/oauth2"
)

// Session is the persisted authentication state: the bearer tokens issued by the
// backend plus the last normalized user profile.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	CachedUser   *User  `json:"cached_user,omitempty"`
}

// Token converts the session into an oauth2 bearer token. The expiry comes from
// the access token's exp claim when it can be decoded.
func (s *Session) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: s.RefreshToken,
		Expiry:       s.ExpiresAt(),
	}
}

// ExpiresAt returns the access token expiry, or the zero time when unknown.
func (s *Session) ExpiresAt() time.Time {
	claims, ok := DecodeToken(s.AccessToken)
	if !ok {
		return time.Time{}
	}
	return claims.ExpiresAt()
}

// IsExpired reports whether the access token carries an exp claim in the past.
// A token without a decodable expiry is treated as not expired; the backend has
// the final word through a 401.
func (s *Session) IsExpired() bool {
	exp := s.ExpiresAt()
	return !exp.IsZero() && time.Now().After(exp)
}
