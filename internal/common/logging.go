package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger = log.New(os.Stderr, "[graycode] ", log.LstdFlags|log.Lmicroseconds)
)

func Logf(format string, args ...interface{}) {
	logger.Printf(format, args...)
}

// SetLogOutput redirects the package logger.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// LogOptions configures the optional rotating log file.
type LogOptions struct {
	// Console receives log output alongside the file; nil means stderr.
	Console    io.Writer
	Directory  string
	FileName   string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}

// SetupLogging points the logger at opts.Console and, when opts.Directory is
// set, tees it into a rotating file there. Without a directory the returned
// closer is a no-op.
func SetupLogging(opts LogOptions) (io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	logger.SetOutput(console)
	if opts.Directory == "" {
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := opts.FileName
	if name == "" {
		name = "graycode.log"
	}
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Directory, name),
		MaxSize:    opts.MaxSizeMB,
		MaxAge:     opts.MaxAgeDays,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
	}
	logger.SetOutput(io.MultiWriter(console, rotator))
	return rotator, nil
}
