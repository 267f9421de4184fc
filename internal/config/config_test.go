package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sampleKeyGen.pl", cfg.Helper.Command)
	assert.Equal(t, []string{"-p", "-r"}, cfg.Helper.Flags)
	assert.Equal(t, "ion_params_00.json", cfg.Helper.ParamsFile)
	assert.Equal(t, "MSN", cfg.Samples.Prefix)
	assert.Equal(t, 4, cfg.Samples.SuffixLen)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `helper:
  command: /opt/torrent/sampleKeyGen.pl
samples:
  prefix: TSN
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/torrent/sampleKeyGen.pl", cfg.Helper.Command)
	assert.Equal(t, "TSN", cfg.Samples.Prefix)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched fields keep their defaults.
	assert.Equal(t, "ion_params_00.json", cfg.Helper.ParamsFile)
	assert.Equal(t, 4, cfg.Samples.SuffixLen)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("helper: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSampleOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Samples.SuffixLen = 6

	opts := cfg.SampleOptions()
	assert.Equal(t, cfg.Helper.Command, opts.Command)
	assert.Equal(t, 6, opts.SuffixLen)
	assert.Equal(t, cfg.Samples.CohortPattern, opts.CohortPattern)
}
