package safe

import (
	"io"
	"log/slog"
	"os"

	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// Close closes the resource and logs error if any
func Close(closer io.Closer) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			if err == io.EOF {
				return
			}
			logging.Default().Warn("Fail to close resource", slog.Any("error", err))
		}
	}
}

// Remove removes the file and logs error if any. A missing file is not an error.
func Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Default().Warn("Fail to remove file", slog.Any("error", err), slog.String("path", path))
	}
}

// Write writes data to w and logs error if any. Used for responses where the error cannot be returned to anyone.
func Write(w io.Writer, data []byte) {
	if _, err := w.Write(data); err != nil {
		logging.Default().Warn("Fail to write data", slog.Any("error", err))
	}
}
