package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/agenthands/while/pkg/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{Level: "debug", Format: "json", Writer: buf})
	require.NoError(t, err)

	logger.Named("parser").Debug("reduced", zap.String("node", "(2 + 3)"))
	require.NoError(t, logger.Sync())

	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "reduced", entry["msg"])
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, "parser", entry["name"])
	require.Equal(t, "(2 + 3)", entry["node"])
	require.Contains(t, entry, "caller")
}

func TestConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{Writer: buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", zap.Int("gas", 12))
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "INFO")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), `{"gas": 12}`)
}

func TestLogfmtFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{Level: "WARN", Format: "logfmt", Writer: buf})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("slow parse", zap.Int("depth", 3))
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `msg="slow parse"`)
	require.Contains(t, buf.String(), "depth=3")
}

func TestInvalidConfig(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "loud"})
	require.Error(t, err)

	_, err = logging.New(logging.Config{Format: "xml"})
	require.EqualError(t, err, `logging: unknown format "xml"`)
}
