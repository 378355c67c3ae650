// Package logging routes log output to a file so nothing ever writes to
// the terminal while the TUI owns it.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const appName = "drift"

// Setup configures the global logrus logger to write to the XDG state
// directory. Returns a closer for the log file; on failure logging is
// disabled rather than polluting the terminal.
func Setup(debug bool) (io.Closer, error) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	path, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
	if err != nil {
		logrus.SetOutput(io.Discard)
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return nil, err
	}

	logrus.SetOutput(f)
	return f, nil
}
