package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synclayer/internal/logging"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, logging.Level(false, false))
	assert.Equal(t, zerolog.InfoLevel, logging.Level(true, false))
	assert.Equal(t, zerolog.DebugLevel, logging.Level(false, true))
	assert.Equal(t, zerolog.DebugLevel, logging.Level(true, true))
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, false, false)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewJSON_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewJSON(&buf, true, false)
	log.Info().Str("pin", "482913").Msg("started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "started", line["message"])
	assert.Contains(t, line, "time")
}
