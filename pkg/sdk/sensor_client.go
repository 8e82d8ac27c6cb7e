package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// SensorClient wraps /sensors and the maintenance log endpoints.
type SensorClient struct {
	client *Client
}

func (s *SensorClient) List(ctx context.Context) (any, error) {
	return s.client.getList(ctx, "/sensors/", nil)
}

func (s *SensorClient) Get(ctx context.Context, id int64) (Record, error) {
	return s.client.getRecord(ctx, resourcePath("/sensors/%d/", id), nil)
}

// ListByStation returns the sensors installed on a station.
func (s *SensorClient) ListByStation(ctx context.Context, stationID int64) (any, error) {
	return s.client.getList(ctx, resourcePath("/stations/%d/sensors/", stationID), nil)
}

// CreateMaintenanceLog records a maintenance intervention. data is either a
// JSON-encodable value or a *Multipart form carrying a certificate or photo.
func (s *SensorClient) CreateMaintenanceLog(ctx context.Context, data any) (Record, error) {
	return s.client.writeRecord(ctx, http.MethodPost, "/maintenance-logs/", data)
}

// ListMaintenanceLogs lists maintenance logs. Empty filters send no query string.
func (s *SensorClient) ListMaintenanceLogs(ctx context.Context, filters url.Values) (any, error) {
	return s.client.getList(ctx, "/maintenance-logs/", filters)
}

func (s *SensorClient) GetMaintenanceLog(ctx context.Context, id int64) (Record, error) {
	return s.client.getRecord(ctx, resourcePath("/maintenance-logs/%d/", id), nil)
}
