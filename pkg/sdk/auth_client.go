package sdk

import (
	"context"
	"net/http"
)

// TokenPair is the token payload returned by login, registration and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthClient wraps the /auth endpoints. It never touches the session store;
// SessionManager decides what to persist.
type AuthClient struct {
	client *Client
}

// Login exchanges credentials for a token pair.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	err := a.client.Do(ctx, "/auth/login/", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "password": password},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates an account. The raw response is returned: depending on the
// backend it may or may not carry a token pair.
func (a *AuthClient) Register(ctx context.Context, data map[string]any) (Record, error) {
	return a.client.writeRecord(ctx, http.MethodPost, "/auth/register/", data)
}

// Logout revokes refresh on the backend. An empty refresh token sends no body.
func (a *AuthClient) Logout(ctx context.Context, refresh string) error {
	opts := RequestOptions{Method: http.MethodPost}
	if refresh != "" {
		opts.Body = map[string]string{"refresh": refresh}
	}
	_, err := a.client.Send(ctx, "/auth/logout/", opts)
	return err
}

// Refresh exchanges a refresh token for a new access token.
func (a *AuthClient) Refresh(ctx context.Context, refresh string) (*TokenPair, error) {
	var pair TokenPair
	err := a.client.Do(ctx, "/auth/token/refresh/", RequestOptions{
		Method: http.MethodPost,
		Body:   map[string]string{"refresh": refresh},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}
