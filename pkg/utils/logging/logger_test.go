package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { _, _ = logging.Configure("text", "info", "stderr") })

	t.Run("json format", func(t *testing.T) {
		closer := gt.R1(logging.Configure("json", "info", "stderr")).NoError(t)
		gt.NoError(t, closer.Close())
	})

	t.Run("text format", func(t *testing.T) {
		gt.R1(logging.Configure("text", "DEBUG", "stderr")).NoError(t)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := logging.Configure("invalid", "info", "stderr")
		gt.Error(t, err)
	})

	t.Run("invalid format does not create the log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "never.log")
		_, err := logging.Configure("yaml", "info", path)
		gt.Error(t, err)
		_, statErr := os.Stat(path)
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := logging.Configure("json", "verbose", "stderr")
		gt.Error(t, err)
	})

	t.Run("token is masked in file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.json")
		closer := gt.R1(logging.Configure("json", "info", path)).NoError(t)

		logging.Default().Info("auth", slog.Any("token", types.GitHubToken("ghp_abcdef0123456789")))
		gt.NoError(t, closer.Close())

		// logging after close goes to stderr and leaves the file untouched
		logging.Default().Info("after close")

		raw := gt.R1(os.ReadFile(path)).NoError(t)
		gt.False(t, bytes.Contains(raw, []byte("ghp_abcdef0123456789")))

		var entry map[string]any
		gt.NoError(t, json.Unmarshal(bytes.TrimSpace(raw), &entry))
		gt.V(t, entry["msg"]).Equal("auth")
	})
}
