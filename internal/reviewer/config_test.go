package reviewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPrepareAndValidate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.PrepareAndValidate())
	assert.Equal(t, defaultMaxFiles, cfg.MaxFiles)
	assert.Equal(t, defaultMaxFileBytes, cfg.MaxFileBytes)
	assert.Equal(t, defaultConcurrency, cfg.Concurrency)

	cfg = Config{MaxFiles: 5, MaxFileBytes: 2000, Concurrency: 2}
	require.NoError(t, cfg.PrepareAndValidate())
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, 2000, cfg.MaxFileBytes)
	assert.Equal(t, 2, cfg.Concurrency)

	assert.Error(t, (&Config{MaxFiles: -1}).PrepareAndValidate())
	assert.Error(t, (&Config{MaxFileBytes: -1}).PrepareAndValidate())
	assert.Error(t, (&Config{Concurrency: -2}).PrepareAndValidate())
}
