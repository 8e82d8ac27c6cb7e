package sdk

import (
	"context"
	"net/http"
)

// Review decisions accepted by the affiliation and registration workflows.
const (
	ReviewAccepted = "ACCEPTED"
	ReviewRejected = "REJECTED"
)

// StationClient wraps /stations and its affiliation and registration-request
// workflows.
type StationClient struct {
	client *Client
}

// List returns every station visible to the caller.
func (s *StationClient) List(ctx context.Context) (any, error) {
	return s.client.getList(ctx, "/stations/", nil)
}

// Get returns one station.
func (s *StationClient) Get(ctx context.Context, id int64) (Record, error) {
	return s.client.getRecord(ctx, resourcePath("/stations/%d/", id), nil)
}

// Register creates a station directly.
func (s *StationClient) Register(ctx context.Context, data map[string]any) (Record, error) {
	return s.client.writeRecord(ctx, http.MethodPost, "/stations/", data)
}

// CreateAffiliationRequest asks an institution to adopt a station
// ({"station": id, "target_institution": id}).
func (s *StationClient) CreateAffiliationRequest(ctx context.Context, data map[string]any) (Record, error) {
	return s.client.writeRecord(ctx, http.MethodPost, "/stations/affiliations/", data)
}

// ListAffiliationRequests returns the requests the backend lets the caller see.
func (s *StationClient) ListAffiliationRequests(ctx context.Context) (any, error) {
	return s.client.getList(ctx, "/stations/affiliations/", nil)
}

// ReviewAffiliationRequest accepts or rejects an affiliation request.
func (s *StationClient) ReviewAffiliationRequest(ctx context.Context, id int64, status, comments string) (Record, error) {
	return s.client.writeRecord(ctx, http.MethodPost, resourcePath("/stations/affiliations/%d/review/", id), reviewBody(status, comments))
}

// RequestRegistration submits a station registration request. The form carries
// station, sensor and certificate data.
func (s *StationClient) RequestRegistration(ctx context.Context, form *Multipart) (Record, error) {
	return s.client.writeRecord(ctx, http.MethodPost, "/stations/registration-requests/", form)
}

// ListRegistrationRequests returns pending and reviewed registration requests.
func (s *StationClient) ListRegistrationRequests(ctx context.Context) (any, error) {
	return s.client.getList(ctx, "/stations/registration-requests/", nil)
}

// ReviewRegistrationRequest accepts or rejects a registration request.
func (s *StationClient) ReviewRegistrationRequest(ctx context.Context, id int64, status, comments string) (Record, error) {
	return s.client.writeRecord(ctx, http.MethodPost, resourcePath("/stations/registration-requests/%d/review/", id), reviewBody(status, comments))
}

func reviewBody(status, comments string) map[string]string {
	return map[string]string{"status": status, "comments": comments}
}
