package institution

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolleP16/vrisa-mobile/cmd/vrisactl/internal/forms"
	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

func TestInstitutionBody_JSON(t *testing.T) {
	body, err := institutionBody(forms.Institution{Name: "Univalle", NIT: "890399010", Address: "Calle 13", City: "Cali"})
	require.NoError(t, err)

	m, ok := body.(map[string]any)
	require.True(t, ok, "expected a JSON map, got %T", body)
	assert.Equal(t, map[string]any{"name": "Univalle", "nit": "890399010", "address": "Calle 13", "city": "Cali"}, m)
}

func TestInstitutionBody_Multipart(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "rut.pdf")
	require.NoError(t, os.WriteFile(doc, []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), 0o600))

	body, err := institutionBody(forms.Institution{Name: "Univalle", NIT: "1", Address: "x", Documentation: doc})
	require.NoError(t, err)

	mp, ok := body.(*sdk.Multipart)
	require.True(t, ok, "expected multipart, got %T", body)
	assert.Equal(t, "Univalle", mp.Fields["name"])
	assert.NotContains(t, mp.Fields, "email")
	require.Len(t, mp.Files, 1)
	assert.Equal(t, "documentation", mp.Files[0].Field)
	assert.Equal(t, "application/pdf", mp.Files[0].ContentType)
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
