package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFileParsesAllSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	content := `
[server]
path = "/opt/tari/tari-universe"
args = ["--mcp", "--network", "esmeralda"]
closeGraceSeconds = 10

[client]
name = "ops-client"
version = "2.0.0"
readTimeoutSeconds = 45

[audit]
enabled = true
dbPath = "/var/lib/tari-mcp/audit.db"

[events]
url = "ws://127.0.0.1:9001"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, "/opt/tari/tari-universe", cfg.Server.Path)
	require.Equal(t, []string{"--mcp", "--network", "esmeralda"}, cfg.Server.Args)
	require.Equal(t, 10, cfg.Server.CloseGraceSeconds)
	require.Equal(t, "ops-client", cfg.Client.Name)
	require.Equal(t, 45, cfg.Client.ReadTimeoutSeconds)
	require.True(t, cfg.Audit.Enabled)
	require.Equal(t, "/var/lib/tari-mcp/audit.db", cfg.Audit.DBPath)
	require.Equal(t, "ws://127.0.0.1:9001", cfg.Events.URL)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFileExplicitPathMustExist(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadFileRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\npath="), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
}
