package cmdutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/output"
)

const paginatedStations = `{"count":40,"next":"http://api/stations/?page=2","previous":null,"results":[{"id":5,"name":"Univalle"},"junk"]}`

func decodeJSON(t *testing.T, body string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func TestPrintList_StructuredKeepsPayload(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, output.FormatJSON)

	require.NoError(t, printList(p, decodeJSON(t, paginatedStations), "stations", output.Column{Header: "ID", Key: "id"}))

	assert.JSONEq(t, paginatedStations, buf.String())
}

func TestPrintList_TableShowsEveryItem(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, output.FormatTable)

	err := printList(p, decodeJSON(t, paginatedStations), "stations",
		output.Column{Header: "ID", Key: "id"},
		output.Column{Header: "NAME", Key: "name"},
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, buf.String())
	assert.Contains(t, lines[1], "Univalle")
}

func TestPrintList_UnexpectedShapeFallsBackToValue(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf, output.FormatTable)

	require.NoError(t, printList(p, map[string]any{"detail": "ok"}, "stations"))
	assert.Contains(t, buf.String(), "detail: ok")
}
