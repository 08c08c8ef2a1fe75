package command

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestConfigCommand(t *testing.T) {
	cmd := ConfigCommand()
	assert.Equal(t, "config", cmd.Name)

	names := make(map[string]bool)
	for _, sub := range cmd.Subcommands {
		names[sub.Name] = true
	}
	assert.True(t, names["show"])
	assert.True(t, names["validate"])
}

func TestConfigShow_MasksHMACKey(t *testing.T) {
	out, _, err := run(t, "", "--hmac-key", "supersecretkey", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "tokenizer:")
	assert.Contains(t, out, "algorithm: sha256")
	assert.NotContains(t, out, "supersecretkey")
}

func TestConfigShow_JSON(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "--algorithm", "sha512", "config", "show")
	require.NoError(t, err)

	var cfg map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "sha512", cfg["tokenizer"]["algorithm"])
	assert.Equal(t, "info", cfg["log"]["level"])
}

func TestConfigShow_Tokenizer(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "--hmac-key", "supersecretkey", "config", "show", "--tokenizer")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, true, info["hmac"])
	assert.Equal(t, "disabled", info["validity"])
	assert.NotContains(t, out, "supersecretkey")
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	writeConfig(t, valid, "tokenizer:\n  algorithm: sha384\n  validity: 2h\nlog:\n  level: debug\n")
	out, _, err := run(t, "", "config", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	invalid := filepath.Join(dir, "invalid.yaml")
	writeConfig(t, invalid, "tokenizer:\n  secret_length: 0\n")
	_, _, err = run(t, "", "config", "validate", invalid)
	require.Error(t, err)
	var exit cli.ExitCoder
	assert.False(t, errors.As(err, &exit), "urfave/cli must not exit the process itself")
	assert.Contains(t, err.Error(), invalid)
	assert.Contains(t, err.Error(), "tokenizer.secret_length")
}

func TestConfigValidate_UsesGlobalConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csrftok.yaml")
	writeConfig(t, path, "tokenizer:\n  algorithm: sha1\n")

	out, _, err := run(t, "", "--config", path, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, _, err = run(t, "", "config", "validate")
	assert.Error(t, err, "no file given")
}
