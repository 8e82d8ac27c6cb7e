package sdk

import (
	"context"
	"net/http"
)

// UserClient wraps /users.
type UserClient struct {
	client *Client
}

// Current fetches the profile of the user the stored access token belongs to.
// It fails with ErrNotAuthenticated, without calling the backend, when no token
// is stored or the token carries no user_id.
func (u *UserClient) Current(ctx context.Context) (Record, error) {
	token, err := u.client.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, err
	}
	claims, ok := DecodeToken(token)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	id, ok := claims.UserID()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return u.Get(ctx, id)
}

func (u *UserClient) Get(ctx context.Context, id int64) (Record, error) {
	return u.client.getRecord(ctx, resourcePath("/users/%d/", id), nil)
}

// UpdateMe updates the caller's own account.
func (u *UserClient) UpdateMe(ctx context.Context, data map[string]any) (Record, error) {
	return u.client.writeRecord(ctx, http.MethodPut, "/users/me", data)
}

// UpdateProfile updates a user profile. data may be a *Multipart form.
func (u *UserClient) UpdateProfile(ctx context.Context, id int64, data any) (Record, error) {
	return u.client.writeRecord(ctx, http.MethodPut, resourcePath("/users/%d/", id), data)
}
