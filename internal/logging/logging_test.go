package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/foldersize/internal/logging"
)

func TestTextLevels(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.New(&buf, logging.Options{})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "path", "/x")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown path=/x")
}

func TestDebugJSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := logging.New(&buf, logging.Options{Debug: true, Format: "JSON"})
	require.NoError(t, err)

	logger.Debug("scan started", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "scan started", entry["msg"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestUnknownFormat(t *testing.T) {
	_, err := logging.New(&bytes.Buffer{}, logging.Options{Format: "xml"})
	assert.ErrorContains(t, err, `unknown log format "xml"`)
}
