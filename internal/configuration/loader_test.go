package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAMLDir(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name+".yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write yaml %s: %v", path, err)
	}
}

const baseYAML = `
app:
  log-level: info
transport:
  network: tcp
  address: 127.0.0.1
  raft-port: "7000"
  timeout: 2s
raft:
  node-id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
  storage-dir: ${SALOON_TEST_DATA}/raft
  election-timeout: 500ms
  heartbeat-interval: 100ms
  wal:
    no-sync: false
memtable:
  type: vector_memtable
  initial-vec-size: 1024
  write-buffer-size-in-mb: 64
`

func TestLoadEnvironment_LayersProfile(t *testing.T) {
	t.Setenv("SALOON_TEST_DATA", "/var/lib/saloon")
	dir := t.TempDir()
	writeYAMLDir(t, dir, "application", baseYAML)
	writeYAMLDir(t, dir, "application-production", "app:\n  log-level: warn\nraft:\n  wal:\n    no-sync: true\n")

	cfg, err := LoadEnvironment(dir, Production, nil)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Application.Profile)
	assert.Equal(t, "warn", cfg.Application.LogLevel)
	assert.Equal(t, "/var/lib/saloon/raft", cfg.Raft.StorageDir)
	assert.Equal(t, 500*time.Millisecond, cfg.Raft.ElectionTimeout)
	assert.True(t, cfg.Raft.Wal.NoSync)
	assert.Equal(t, "127.0.0.1:7000", cfg.Transport.RaftAddr())
	assert.Equal(t, uint64(64), cfg.MemTable.WriteBufferSizeInMB)
}

func TestLoadEnvironment_Overrides(t *testing.T) {
	t.Setenv("SALOON_TEST_DATA", "/data")
	dir := t.TempDir()
	writeYAMLDir(t, dir, "application", baseYAML)
	writeYAMLDir(t, dir, "application-local", "")

	cfg, err := LoadEnvironment(dir, Local, []string{
		"SALOON_RAFT__NODE_ID=1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		"SALOON_RAFT__HEARTBEAT_INTERVAL=25ms",
		"SALOON_RAFT__WAL__NO_SYNC=true",
		"SALOON_TRANSPORT__RAFT_PORT=7100",
		"SALOON_METRICS__ENABLED=true",
		"SALOON_IGNORED=1",
		"OTHER_RAFT__NODE_ID=nope",
	})
	require.NoError(t, err)

	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", cfg.Raft.NodeId)
	assert.Equal(t, 25*time.Millisecond, cfg.Raft.HeartbeatInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Raft.ElectionTimeout)
	assert.True(t, cfg.Raft.Wal.NoSync)
	assert.Equal(t, "7100", cfg.Transport.RaftPort)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "local", cfg.Application.Profile)
}

func TestLoadEnvironment_BadOverride(t *testing.T) {
	t.Setenv("SALOON_TEST_DATA", "/data")
	dir := t.TempDir()
	writeYAMLDir(t, dir, "application", baseYAML)
	writeYAMLDir(t, dir, "application-local", "")

	_, err := LoadEnvironment(dir, Local, []string{"SALOON_RAFT__ELECTION_TIMEOUT=soon"})
	require.Error(t, err)
}

func TestLoadEnvironment_MissingEnvVar(t *testing.T) {
	dir := t.TempDir()
	writeYAMLDir(t, dir, "application", "raft:\n  storage-dir: ${SALOON_SURELY_UNSET_VAR}\n")
	writeYAMLDir(t, dir, "application-local", "")

	_, err := LoadEnvironment(dir, Local, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SALOON_SURELY_UNSET_VAR")
}

func TestLoadEnvironment_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadEnvironment(dir, Local, nil)
	require.Error(t, err)

	writeYAMLDir(t, dir, "application", "app:\n  log-level: info\n")
	_, err = LoadEnvironment(dir, Production, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application-production")
}

func TestLoadEnvironment_InvalidYaml(t *testing.T) {
	dir := t.TempDir()
	writeYAMLDir(t, dir, "application", "app:\n  log-level: info\n")
	writeYAMLDir(t, dir, "application-local", "foo \"bar\"\nfoo:: \"bar\"\nfoo: \"bar\"")

	_, err := LoadEnvironment(dir, Local, nil)
	require.Error(t, err)
}

func TestLoad_UsesAppEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeYAMLDir(t, dir, "application", "app:\n  log-level: info\n")
	writeYAMLDir(t, dir, "application-production", "app:\n  log-level: error\n")

	t.Setenv(EnvironmentVariable, "PRODUCTION")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Application.LogLevel)

	t.Setenv(EnvironmentVariable, "staging")
	_, err = Load(dir)
	require.Error(t, err)
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("")
	require.NoError(t, err)
	assert.Equal(t, Local, env)

	env, err = ParseEnvironment(" Local ")
	require.NoError(t, err)
	assert.Equal(t, Local, env)

	env, err = ParseEnvironment("production")
	require.NoError(t, err)
	assert.Equal(t, Production, env)

	_, err = ParseEnvironment("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local")
	assert.Contains(t, err.Error(), "production")
}
