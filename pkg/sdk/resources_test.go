package sdk_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// recorder captures the last request seen by the fake backend.
type recorder struct {
	method string
	path   string
	query  url.Values
	body   string
}

func newRecordingClient(t *testing.T, response string) (*sdk.Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		body, _ := io.ReadAll(r.Body)
		rec.body = string(body)
		writeJSON(w, http.StatusOK, response)
	}))
	return client, rec
}

func TestMeasurementClient_CurrentAQI(t *testing.T) {
	client, rec := newRecordingClient(t, `{"aqi":37,"station_id":42}`)

	aqi, err := client.Measurements.CurrentAQI(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/api/measurements/aqi/current/", rec.path)
	assert.Equal(t, "42", rec.query.Get("station_id"))
	v, ok := aqi.Float("aqi")
	require.True(t, ok)
	assert.Equal(t, 37.0, v)

	_, err = client.Measurements.CurrentAQI(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/measurements/aqi/current/", rec.path)
	assert.False(t, rec.query.Has("station_id"))
}

func TestMeasurementClient_Latest(t *testing.T) {
	client, rec := newRecordingClient(t, `[]`)

	_, err := client.Measurements.Latest(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "/api/measurements/latest/", rec.path)
	assert.Equal(t, "5", rec.query.Get("station_id"))

	_, err = client.Measurements.Latest(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, rec.query)
}

func TestResourceClients_Paths(t *testing.T) {
	multipart := sdk.NewMultipart().Set("name", "Melendez")

	tests := []struct {
		name       string
		call       func(c *sdk.Client) error
		wantMethod string
		wantPath   string
		wantQuery  url.Values
	}{
		{
			name:       "station get",
			call:       func(c *sdk.Client) error { _, err := c.Stations.Get(context.Background(), 3); return err },
			wantMethod: http.MethodGet,
			wantPath:   "/api/stations/3/",
		},
		{
			name: "affiliation review",
			call: func(c *sdk.Client) error {
				_, err := c.Stations.ReviewAffiliationRequest(context.Background(), 11, sdk.ReviewAccepted, "ok")
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/stations/affiliations/11/review/",
		},
		{
			name: "registration request",
			call: func(c *sdk.Client) error {
				_, err := c.Stations.RequestRegistration(context.Background(), multipart)
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/stations/registration-requests/",
		},
		{
			name: "registration review",
			call: func(c *sdk.Client) error {
				_, err := c.Stations.ReviewRegistrationRequest(context.Background(), 2, sdk.ReviewRejected, "")
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/stations/registration-requests/2/review/",
		},
		{
			name:       "sensors by station",
			call:       func(c *sdk.Client) error { _, err := c.Sensors.ListByStation(context.Background(), 9); return err },
			wantMethod: http.MethodGet,
			wantPath:   "/api/stations/9/sensors/",
		},
		{
			name: "maintenance logs without filters",
			call: func(c *sdk.Client) error {
				_, err := c.Sensors.ListMaintenanceLogs(context.Background(), nil)
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/maintenance-logs/",
			wantQuery:  url.Values{},
		},
		{
			name: "maintenance logs with filters",
			call: func(c *sdk.Client) error {
				_, err := c.Sensors.ListMaintenanceLogs(context.Background(), url.Values{"sensor": {"4"}})
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/maintenance-logs/",
			wantQuery:  url.Values{"sensor": {"4"}},
		},
		{
			name: "air quality reports listing",
			call: func(c *sdk.Client) error {
				_, err := c.Reports.ListAirQuality(context.Background(), url.Values{"station": {"1"}})
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/reports/",
			wantQuery:  url.Values{"station": {"1"}, "type": {"air_quality"}},
		},
		{
			name:       "general reports",
			call:       func(c *sdk.Client) error { _, err := c.Reports.General(context.Background()); return err },
			wantMethod: http.MethodGet,
			wantPath:   "/api/measurements/reports/",
		},
		{
			name:       "institution approve",
			call:       func(c *sdk.Client) error { _, err := c.Institutions.Approve(context.Background(), 6); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/api/institutions/6/approve/",
		},
		{
			name: "update me",
			call: func(c *sdk.Client) error {
				_, err := c.Users.UpdateMe(context.Background(), map[string]any{"phone": "300"})
				return err
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/users/me",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newRecordingClient(t, `{"id":1}`)

			require.NoError(t, tt.call(client))
			assert.Equal(t, tt.wantMethod, rec.method)
			assert.Equal(t, tt.wantPath, rec.path)
			if tt.wantQuery != nil {
				assert.Equal(t, tt.wantQuery, rec.query)
			}
		})
	}
}

func TestResourceClients_ListReturnsPayloadUnchanged(t *testing.T) {
	payload := `{"count":40,"next":"http://api/stations/?page=2","previous":null,"results":[{"id":5},"junk"]}`
	client, _ := newRecordingClient(t, payload)

	stations, err := client.Stations.List(context.Background())
	require.NoError(t, err)

	raw, err := client.Send(context.Background(), "/stations/", sdk.RequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, raw, stations)

	body, ok := stations.(map[string]any)
	require.True(t, ok, "expected the paginated object, got %T", stations)
	assert.EqualValues(t, 40, body["count"])
	assert.Equal(t, []any{map[string]any{"id": float64(5)}, "junk"}, body["results"])
}

func TestResourceClients_ListBareArray(t *testing.T) {
	client, _ := newRecordingClient(t, `[{"id":3},"x",null]`)

	sensors, err := client.Sensors.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": float64(3)}, "x", nil}, sensors)
}

func TestUserClient_CurrentWithoutToken(t *testing.T) {
	transport := &countingTransport{}
	client, _ := newTestClient(t, http.NotFoundHandler(), sdk.WithHTTPClient(&http.Client{Transport: transport}))

	_, err := client.Users.Current(context.Background())
	require.ErrorIs(t, err, sdk.ErrNotAuthenticated)
	assert.Equal(t, int32(0), transport.calls.Load())
}

func TestUserClient_CurrentUsesTokenUserID(t *testing.T) {
	rec := &recorder{}
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.path = r.URL.Path
		writeJSON(w, http.StatusOK, `{"id":31}`)
	}))
	require.NoError(t, store.Set(context.Background(), sdk.KeyAccessToken, userToken(t, 31)))

	profile, err := client.Users.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/users/31/", rec.path)
	assert.Equal(t, int64(31), profile.ID())
}

func TestReportPaths(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		want  string
		query url.Values
	}{
		{
			name:  "air quality single day",
			path:  sdk.AirQualityReportPath(sdk.ReportQuery{StationID: 4, StartDate: "2025-01-10"}),
			want:  "/measurements/reports/air-quality/",
			query: url.Values{"station_id": {"4"}, "date": {"2025-01-10"}},
		},
		{
			name:  "air quality range with variable",
			path:  sdk.AirQualityReportPath(sdk.ReportQuery{StartDate: "2025-01-01", EndDate: "2025-01-31", VariableCode: "PM2.5"}),
			want:  "/measurements/reports/air-quality/",
			query: url.Values{"start_date": {"2025-01-01"}, "end_date": {"2025-01-31"}, "variable_code": {"PM2.5"}},
		},
		{
			name:  "trends",
			path:  sdk.TrendsReportPath(sdk.ReportQuery{StationID: 2, StartDate: "2025-02-01", EndDate: "2025-02-07"}),
			want:  "/measurements/reports/trends/",
			query: url.Values{"station_id": {"2"}, "start_date": {"2025-02-01"}, "end_date": {"2025-02-07"}},
		},
		{
			name:  "alerts ignore variable",
			path:  sdk.AlertsReportPath(sdk.ReportQuery{StartDate: "2025-03-01", EndDate: "2025-03-02", VariableCode: "O3"}),
			want:  "/measurements/reports/alerts/",
			query: url.Values{"start_date": {"2025-03-01"}, "end_date": {"2025-03-02"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Path)
			assert.Equal(t, tt.query, u.Query())
		})
	}
}
