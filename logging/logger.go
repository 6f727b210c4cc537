// Package logging provides per-component logrus loggers configured from the
// logging section of onair.yml.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/pkg/paths"
	"github.com/grovetools/onair/util/pathutil"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	sinkOnce sync.Once
	sinkFile io.Writer
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := newLogger(component, logCfg).WithField("component", component)
	loggers[component] = entry
	return entry
}

func newLogger(component string, logCfg Config) *logrus.Logger {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("ONAIR_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("ONAIR_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer
	if logCfg.File.enabled() {
		if w := fileSink(logCfg.File); w != nil {
			writers = append(writers, w)
		}
	}
	if toStderr(logCfg.Format.StructuredToStderr, logger.GetLevel()) {
		writers = append(writers, Output())
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return logger
}

// FilePath is where entries are written when the file sink is enabled.
func FilePath(cfg FileSinkConfig) string {
	if cfg.Path != "" {
		if p, err := pathutil.Expand(cfg.Path); err == nil {
			return p
		}
		return cfg.Path
	}
	return paths.LogFilePath()
}

// fileSink opens the shared log file once per process.
func fileSink(cfg FileSinkConfig) io.Writer {
	sinkOnce.Do(func() {
		path := FilePath(cfg)
		if path == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		sinkFile = file
	})
	return sinkFile
}

// toStderr decides whether entries also go to the terminal. In auto mode
// they do when debugging or when stderr is not interactive.
func toStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return level >= logrus.DebugLevel || !isInteractive
}
