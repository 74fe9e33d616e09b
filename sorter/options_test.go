package sorter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sorter.yaml")

	raw := `
maxRunBytes: 1048576
compression: s2
workers: 4
tempDir: /tmp/spills
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1048576), cfg.MaxRunBytes)
	assert.Equal(t, CompressionS2, cfg.Compression)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/tmp/spills", cfg.TempDir)

	o := defaultOptions()
	for _, opt := range cfg.Options() {
		opt(&o)
	}

	assert.Equal(t, int64(1048576), o.maxRunBytes)
	assert.Equal(t, CompressionS2, o.compression)
	assert.Equal(t, 4, o.workers)
	assert.Equal(t, "/tmp/spills", o.tempDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sorter.yaml")

	require.NoError(t, os.WriteFile(path, []byte("compression: zip\n"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o600))

	_, err = LoadConfig(path)
	assert.Error(t, err)
}
