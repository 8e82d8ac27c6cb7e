package auth

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExports(t *testing.T) {
	vars := [][2]string{{"VRISA_TOKEN", "abc.def"}, {"VRISA_API_HOST", "api.vrisa.co"}}

	tests := []struct {
		shell string
		want  string
	}{
		{shell: "bash", want: "export VRISA_TOKEN=\"abc.def\"\nexport VRISA_API_HOST=\"api.vrisa.co\"\n"},
		{shell: "fish", want: "set -x VRISA_TOKEN \"abc.def\"\nset -x VRISA_API_HOST \"api.vrisa.co\"\n"},
		{shell: "powershell", want: "$env:VRISA_TOKEN=\"abc.def\"\n$env:VRISA_API_HOST=\"api.vrisa.co\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeExports(&buf, tt.shell, vars, false))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	var buf bytes.Buffer
	err := writeExports(&buf, "tcsh", vars, false)
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestDetectShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/fish")
	assert.Equal(t, "fish", detectShell())

	t.Setenv("SHELL", "/bin/zsh")
	assert.Equal(t, "posix", detectShell())

	t.Setenv("SHELL", "")
	assert.Equal(t, "posix", detectShell())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Rojas", displayName("Ana Rojas", "ana@vrisa.co"))
	assert.Equal(t, "ana@vrisa.co", displayName("", "ana@vrisa.co"))
}
