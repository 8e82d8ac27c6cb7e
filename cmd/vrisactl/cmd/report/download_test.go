package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

func setDownloadFlags(t *testing.T, station int64, start, end, variable string) {
	t.Helper()
	prev := []any{downloadStation, downloadStart, downloadEnd, downloadVariable}
	downloadStation, downloadStart, downloadEnd, downloadVariable = station, start, end, variable
	t.Cleanup(func() {
		downloadStation = prev[0].(int64)
		downloadStart = prev[1].(string)
		downloadEnd = prev[2].(string)
		downloadVariable = prev[3].(string)
	})
}

func TestReportQuery(t *testing.T) {
	setDownloadFlags(t, 4, "2025-01-01", "2025-01-31", "PM10")

	q, err := reportQuery(true)
	require.NoError(t, err)
	assert.Equal(t, sdk.ReportQuery{StationID: 4, StartDate: "2025-01-01", EndDate: "2025-01-31", VariableCode: "PM10"}, q)
}

func TestReportQuery_DefaultsStartToToday(t *testing.T) {
	setDownloadFlags(t, 4, "", "", "")

	q, err := reportQuery(false)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(time.DateOnly), q.StartDate)
	assert.Empty(t, q.EndDate)
}

func TestReportQuery_Errors(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		needsEnd bool
		wantErr  string
	}{
		{name: "bad start", start: "01/02/2025", wantErr: "StartDate must be a date"},
		{name: "bad end", start: "2025-01-01", end: "tomorrow", wantErr: "EndDate must be a date"},
		{name: "missing end", start: "2025-01-01", needsEnd: true, wantErr: "--end is required"},
		{name: "inverted", start: "2025-02-01", end: "2025-01-01", wantErr: "before --start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDownloadFlags(t, 1, tt.start, tt.end, "")
			_, err := reportQuery(tt.needsEnd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPrintResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, output.FormatJSON)

	err := printResult(p, &sdk.ExportResult{Path: "/tmp/r.bin", MIMEType: "application/octet-stream", Size: 12, Shared: true})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/tmp/r.bin", got["path"])
	assert.Equal(t, true, got["shared"])
	assert.EqualValues(t, 12, got["size"])
	assert.NotContains(t, got, "pages")
}

func TestReportKinds(t *testing.T) {
	for _, name := range downloadCmd.ValidArgs {
		_, ok := reportKinds[name]
		assert.True(t, ok, name)
	}
	assert.False(t, reportKinds["air-quality"].needsEnd)
	assert.True(t, reportKinds["trends"].needsEnd)
}
