package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, exit, err := Parse([]string{"model.hcl"}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.False(t, exit)
		assert.Equal(t, "model.hcl", cfg.ModelPath)
		assert.Equal(t, "c", cfg.Profile)
		assert.Equal(t, ".", cfg.OutputDir)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.False(t, cfg.Compress)
		assert.Empty(t, cfg.Externals)
	})

	t.Run("every option", func(t *testing.T) {
		args := []string{
			"-m", "models/",
			"-profile", "Python",
			"-profile-file", "a.hcl", "-profile-file", "extra/",
			"-external", "main.k", "-external", "gate.V",
			"-o", "build",
			"-name", "solver",
			"-report", "report.json",
			"-compress", "-no-color",
			"-log-format", "JSON", "-log-level", "debug",
		}

		cfg, exit, err := Parse(args, &bytes.Buffer{})

		require.NoError(t, err)
		assert.False(t, exit)
		assert.Equal(t, "models/", cfg.ModelPath)
		assert.Equal(t, "python", cfg.Profile)
		assert.Equal(t, []string{"a.hcl", "extra/"}, cfg.ProfilePaths)
		assert.Equal(t, []string{"main.k", "gate.V"}, cfg.Externals)
		assert.Equal(t, "build", cfg.OutputDir)
		assert.Equal(t, "solver", cfg.FileName)
		assert.Equal(t, "report.json", cfg.ReportFile)
		assert.True(t, cfg.Compress)
		assert.True(t, cfg.NoColor)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "bad log format", args: []string{"-log-format", "xml", "m.hcl"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "trace", "m.hcl"}, wantMsg: "invalid log-level"},
		{name: "bad external", args: []string{"-external", "k", "m.hcl"}, wantMsg: "external 'k'"},
		{name: "unknown flag", args: []string{"-workers", "3"}, wantMsg: "flag provided but not defined"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, ExitUsage, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
