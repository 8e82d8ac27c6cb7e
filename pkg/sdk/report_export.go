package sdk

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultReportFilename names a downloaded report when the caller gives no name.
const DefaultReportFilename = "reporte_vrisa.pdf"

const maxErrorTextLen = 200

// Sharer hands an exported file to the platform (open it, share it, ...).
type Sharer interface {
	Share(ctx context.Context, path, mimeType string) error
}

// ExportResult describes a report written to the export directory.
type ExportResult struct {
	Path     string
	MIMEType string
	Size     int64
	Shared   bool
}

// ReportExporter downloads binary reports (PDF) with the stored credentials and
// writes them to a private export directory.
type ReportExporter struct {
	client *Client
	dir    string
	sharer Sharer
}

// ExporterOption configures a ReportExporter.
type ExporterOption func(*ReportExporter)

// WithSharer sets the sharer invoked after a successful download.
func WithSharer(sharer Sharer) ExporterOption {
	return func(e *ReportExporter) {
		e.sharer = sharer
	}
}

// DefaultExportDir returns the per-user directory reports are written to.
func DefaultExportDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "vrisa", "reports")
}

// NewReportExporter returns an exporter writing into dir (DefaultExportDir when empty).
func NewReportExporter(client *Client, dir string, opts ...ExporterOption) *ReportExporter {
	if dir == "" {
		dir = DefaultExportDir()
	}
	e := &ReportExporter{client: client, dir: dir}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the export directory.
func (e *ReportExporter) Dir() string {
	return e.dir
}

// Download fetches endpoint and stores the payload under a unique name derived
// from filename. It fails with ErrNotAuthenticated before any network call when
// no access token is stored. No file is left behind when any step fails.
func (e *ReportExporter) Download(ctx context.Context, endpoint, filename string) (*ExportResult, error) {
	if filename == "" {
		filename = DefaultReportFilename
	}

	token, err := e.client.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	body, err := e.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	result, err := e.save(body, filename)
	if err != nil {
		return nil, err
	}

	if e.sharer != nil {
		if err := e.sharer.Share(ctx, result.Path, result.MIMEType); err != nil {
			_ = os.Remove(result.Path)
			return nil, fmt.Errorf("share report: %w", err)
		}
		result.Shared = true
	}

	e.client.logger.Debug("report exported", "path", result.Path, "mime", result.MIMEType, "size", result.Size)
	return result, nil
}

// DownloadAirQuality exports the air-quality summary report.
func (e *ReportExporter) DownloadAirQuality(ctx context.Context, q ReportQuery) (*ExportResult, error) {
	return e.Download(ctx, AirQualityReportPath(q), "calidad_aire_"+q.StartDate+".pdf")
}

// DownloadTrends exports the trends report.
func (e *ReportExporter) DownloadTrends(ctx context.Context, q ReportQuery) (*ExportResult, error) {
	return e.Download(ctx, TrendsReportPath(q), "tendencias_"+q.StartDate+".pdf")
}

// DownloadAlerts exports the critical alerts report.
func (e *ReportExporter) DownloadAlerts(ctx context.Context, q ReportQuery) (*ExportResult, error) {
	return e.Download(ctx, AlertsReportPath(q), "alertas_"+q.StartDate+".pdf")
}

func (e *ReportExporter) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	header := make(http.Header)
	header.Set("Accept", "application/pdf, */*")

	resp, err := e.client.execute(ctx, http.MethodGet, e.client.resolve(endpoint, nil), nil, header)
	if err != nil {
		return nil, err
	}

	if resp.status < 200 || resp.status >= 300 {
		if resp.status == http.StatusUnauthorized {
			e.client.handleUnauthorized(ctx)
		}
		text := strings.TrimSpace(string(resp.body))
		return nil, &APIError{
			Message:    exportErrorMessage(resp.status, text),
			StatusCode: resp.status,
			Payload:    text,
		}
	}
	return resp.body, nil
}

func exportErrorMessage(status int, text string) string {
	if msg := messageFromPayload(decodePayload([]byte(text))); msg != genericServerMessage {
		return msg
	}
	if text == "" {
		return http.StatusText(status)
	}
	if len(text) > maxErrorTextLen {
		text = text[:maxErrorTextLen] + "..."
	}
	return text
}

// save writes body to a temp file in the export directory and renames it to its
// final name once the content type is known.
func (e *ReportExporter) save(body []byte, filename string) (*ExportResult, error) {
	if err := os.MkdirAll(e.dir, 0o700); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(e.dir, ".download-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(err error) (*ExportResult, error) {
		_ = os.Remove(tmpName)
		return nil, err
	}

	if _, err := tmp.Write(body); err != nil {
		_ = tmp.Close()
		return fail(fmt.Errorf("write report: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return fail(fmt.Errorf("close report: %w", err))
	}

	detected := mimetype.Detect(body)
	final := filepath.Join(e.dir, exportName(filename, detected.Extension()))
	if err := os.Rename(tmpName, final); err != nil {
		return fail(fmt.Errorf("finalize report: %w", err))
	}

	return &ExportResult{
		Path:     final,
		MIMEType: detected.String(),
		Size:     int64(len(body)),
	}, nil
}

// exportName returns "<base>-<uuid><ext>". The sniffed extension replaces the
// requested one when they disagree.
func exportName(filename, sniffedExt string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = strings.TrimSuffix(DefaultReportFilename, filepath.Ext(DefaultReportFilename))
	}
	if sniffedExt != "" && !strings.EqualFold(sniffedExt, ext) {
		ext = sniffedExt
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return fmt.Sprintf("%s-%s%s", base, id, ext)
}
