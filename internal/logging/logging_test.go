package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/colombomap/internal/config"
	"github.com/johnwards/colombomap/internal/logging"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("seeded dataset", "dataset", "condos", "records", 10)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "seeded dataset", line["msg"])
	assert.Equal(t, "condos", line["dataset"])
	assert.EqualValues(t, 10, line["records"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(config.LogConfig{Level: "warn", Format: "text", NoColor: true}, &buf)
	require.NoError(t, err)

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Warn("fixture skipped", "dataset", "launches")
	out := buf.String()
	assert.Contains(t, out, "fixture skipped")
	assert.Contains(t, out, "dataset=launches")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New(config.LogConfig{Level: "verbose", Format: "text"}, &bytes.Buffer{})
	assert.Error(t, err)
}
