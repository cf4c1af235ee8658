package logging

import (
	"apostila-pix-store/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	logger, err := New(&config.Log{Level: "debug", Format: "console"}, &config.Environment{Name: "development"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = New(&config.Log{Level: "warn", Format: "json"}, &config.Environment{Name: "production"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(&config.Log{Level: "loud", Format: "json"}, &config.Environment{Name: "production"})
	assert.Error(t, err)

	_, err = New(&config.Log{Level: "info", Format: "xml"}, &config.Environment{Name: "production"})
	assert.Error(t, err)
}
