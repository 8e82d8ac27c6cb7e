package sdk

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Dashboard is the overview shown after sign in.
type Dashboard struct {
	// AQI is the current index record, nil when it could not be loaded.
	AQI      Record
	Stations []Record
}

// AQIValue returns the "aqi" field of the current index record.
func (d *Dashboard) AQIValue() (float64, bool) {
	if d.AQI == nil {
		return 0, false
	}
	return d.AQI.Float("aqi")
}

// LoadDashboard fetches the current AQI and the station list concurrently. Each
// fetch degrades on its own: a failed AQI call yields a nil AQI and a failed
// station call an empty list. Only cancellation of ctx is returned as an error.
func LoadDashboard(ctx context.Context, c *Client, stationID int64) (*Dashboard, error) {
	dash := &Dashboard{Stations: []Record{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		aqi, err := c.Measurements.CurrentAQI(gctx, stationID)
		if err != nil {
			c.logger.Warn("current AQI unavailable", "error", err)
			return nil
		}
		dash.AQI = aqi
		return nil
	})
	g.Go(func() error {
		payload, err := c.Stations.List(gctx)
		if err != nil {
			c.logger.Warn("station list unavailable", "error", err)
			return nil
		}
		dash.Stations = NewPage(payload).Records()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dash, nil
}
