package sdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Report types accepted by the /reports listing filter.
const (
	ReportTypeAirQuality     = "air_quality"
	ReportTypeTrends         = "trends"
	ReportTypeCriticalAlerts = "critical_alerts"
)

// ReportClient wraps /reports and the report metadata under /measurements.
type ReportClient struct {
	client *Client
}

// List returns generated reports matching filters.
func (r *ReportClient) List(ctx context.Context, filters url.Values) (any, error) {
	return r.client.getList(ctx, "/reports/", filters)
}

// Generate asks the backend to build a report.
func (r *ReportClient) Generate(ctx context.Context, data map[string]any) (Record, error) {
	return r.client.writeRecord(ctx, http.MethodPost, "/reports/generate/", data)
}

func (r *ReportClient) ListAirQuality(ctx context.Context, filters url.Values) (any, error) {
	return r.List(ctx, withParam(filters, "type", ReportTypeAirQuality))
}

func (r *ReportClient) ListTrends(ctx context.Context, filters url.Values) (any, error) {
	return r.List(ctx, withParam(filters, "type", ReportTypeTrends))
}

func (r *ReportClient) ListCriticalAlerts(ctx context.Context, filters url.Values) (any, error) {
	return r.List(ctx, withParam(filters, "type", ReportTypeCriticalAlerts))
}

// General returns the catalogue of downloadable reports.
func (r *ReportClient) General(ctx context.Context) (any, error) {
	return r.client.Send(ctx, "/measurements/reports/", RequestOptions{})
}

// ReportQuery selects the data a PDF report covers. StationID 0 means every
// station. Dates use the YYYY-MM-DD layout.
type ReportQuery struct {
	StationID    int64
	StartDate    string
	EndDate      string
	VariableCode string
}

func (q ReportQuery) values() url.Values {
	v := url.Values{}
	if q.StationID != 0 {
		v.Set("station_id", strconv.FormatInt(q.StationID, 10))
	}
	if q.VariableCode != "" {
		v.Set("variable_code", q.VariableCode)
	}
	return v
}

// AirQualityReportPath builds the air-quality export endpoint. Without an end
// date the report covers the single day StartDate.
func AirQualityReportPath(q ReportQuery) string {
	v := q.values()
	if q.EndDate != "" {
		v.Set("start_date", q.StartDate)
		v.Set("end_date", q.EndDate)
	} else {
		v.Set("date", q.StartDate)
	}
	return "/measurements/reports/air-quality/?" + v.Encode()
}

// TrendsReportPath builds the trends export endpoint. A date range is required by
// the backend.
func TrendsReportPath(q ReportQuery) string {
	v := q.values()
	v.Set("start_date", q.StartDate)
	v.Set("end_date", q.EndDate)
	return "/measurements/reports/trends/?" + v.Encode()
}

// AlertsReportPath builds the critical alerts export endpoint. The variable
// filter does not apply to alerts.
func AlertsReportPath(q ReportQuery) string {
	q.VariableCode = ""
	v := q.values()
	v.Set("start_date", q.StartDate)
	v.Set("end_date", q.EndDate)
	return "/measurements/reports/alerts/?" + v.Encode()
}
