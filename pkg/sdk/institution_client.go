package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// InstitutionClient wraps /institutions.
type InstitutionClient struct {
	client *Client
}

func (i *InstitutionClient) List(ctx context.Context, filters url.Values) (any, error) {
	return i.client.getList(ctx, "/institutions/", filters)
}

func (i *InstitutionClient) Get(ctx context.Context, id int64) (Record, error) {
	return i.client.getRecord(ctx, resourcePath("/institutions/%d/", id), nil)
}

// Register submits a new institution for approval. data may be a *Multipart
// form when a logo is attached.
func (i *InstitutionClient) Register(ctx context.Context, data any) (Record, error) {
	return i.client.writeRecord(ctx, http.MethodPost, "/institutions/register/", data)
}

// Approve marks an institution as approved. Super admins only.
func (i *InstitutionClient) Approve(ctx context.Context, id int64) (Record, error) {
	return i.client.writeRecord(ctx, http.MethodPost, resourcePath("/institutions/%d/approve/", id), nil)
}
