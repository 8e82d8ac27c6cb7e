package sdk

import (
	"context"
	"net/url"
)

// MeasurementClient wraps /measurements.
type MeasurementClient struct {
	client *Client
}

// Variables lists the measured variables (PM2.5, O3, ...).
func (m *MeasurementClient) Variables(ctx context.Context) (any, error) {
	return m.client.getList(ctx, "/measurements/variables/", nil)
}

// History returns historical readings matching filters.
func (m *MeasurementClient) History(ctx context.Context, filters url.Values) (any, error) {
	return m.client.Send(ctx, "/measurements/data/history/", RequestOptions{Query: filters})
}

// CurrentAQI returns the current air quality index. A stationID of 0 asks for the
// network-wide value and sends no station_id parameter.
func (m *MeasurementClient) CurrentAQI(ctx context.Context, stationID int64) (Record, error) {
	return m.client.getRecord(ctx, "/measurements/aqi/current/", stationQuery(stationID))
}

// Latest returns the latest readings of one station, or of all stations when
// stationID is 0.
func (m *MeasurementClient) Latest(ctx context.Context, stationID int64) (any, error) {
	return m.client.Send(ctx, "/measurements/latest/", RequestOptions{Query: stationQuery(stationID)})
}
