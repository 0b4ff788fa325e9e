// Package log is the logging facade of the application. Entries go to a daily file
// under the logs directory and, for long running commands, to an attached writer.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/where"
)

var enabled bool

// Setup applies the logs.* configuration. When logs.write is off every entry is dropped
// until Attach is called.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	configure()
	if !enabled {
		return nil
	}

	dir := where.Logs()
	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	return prune(dir, viper.GetInt(key.LogsKeep))
}

// prune removes the oldest daily log files so that at most keep remain. keep <= 0 keeps everything.
func prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}

	entries, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := filesystem.API().Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Attach enables logging and mirrors every entry to w, alongside the log file when one is open.
func Attach(w io.Writer) {
	if enabled {
		logrus.SetOutput(io.MultiWriter(logrus.StandardLogger().Out, w))
	} else {
		logrus.SetOutput(w)
	}
	enabled = true
}

// Enabled reports whether entries reach any output.
func Enabled() bool {
	return enabled
}

// WithFields returns an entry carrying structured fields, or nil when logging is disabled.
func WithFields(fields map[string]any) *logrus.Entry {
	if !enabled {
		return nil
	}
	return logrus.WithFields(fields)
}

func configure() {
	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
