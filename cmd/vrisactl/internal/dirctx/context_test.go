package dirctx

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir temp: %v", err)
	}
	return tmp
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		ctx  DirectoryContext
	}{
		{"wrong_version", DirectoryContext{Version: "999", StationID: 1}},
		{"missing_station", DirectoryContext{Version: FileVersion}},
		{"negative_station", DirectoryContext{Version: FileVersion, StationID: -4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.ctx.Validate(); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestReadMissingReturnsNil(t *testing.T) {
	chdirTemp(t)
	ctx, err := Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx != nil {
		t.Fatalf("expected nil context when .vrisa missing")
	}
}

func TestWriteAndRead_RoundTrip(t *testing.T) {
	tmp := chdirTemp(t)
	now := time.Now().UTC()
	dc := &DirectoryContext{
		Version:     FileVersion,
		StationID:   42,
		StationName: "Univalle Meléndez",
		ServerURL:   "http://localhost:8000/api",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := Write(dc); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, FileName+".tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file should not remain, stat err=%v", err)
	}

	got, err := Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.StationID != 42 || got.StationName != dc.StationName || got.ServerURL != dc.ServerURL {
		t.Fatalf("mismatch after round trip: %#v", got)
	}

	if err := Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := Remove(); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
}

func TestReadCorrupted(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile(FileName, []byte("{"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := Read(); err == nil {
		t.Fatalf("expected error for corrupted file")
	}
}

func TestWriteRejectsInvalid(t *testing.T) {
	chdirTemp(t)
	if err := Write(&DirectoryContext{Version: FileVersion}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := os.Stat(FileName); !os.IsNotExist(err) {
		t.Fatalf("no file should be written for invalid context")
	}
}

func TestResolveStationID(t *testing.T) {
	dc := &DirectoryContext{Version: FileVersion, StationID: 7}

	cases := []struct {
		name     string
		explicit int64
		ctx      *DirectoryContext
		required bool
		want     int64
		wantErr  bool
	}{
		{"explicit_wins", 3, dc, true, 3, false},
		{"context_fallback", 0, dc, true, 7, false},
		{"optional_empty", 0, nil, false, 0, false},
		{"required_missing", 0, nil, true, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveStationID(tc.explicit, tc.ctx, tc.required)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}
