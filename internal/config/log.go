package config

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
)

// LogConfig selects the log level and an optional rotating log file.
type LogConfig struct {
	Level   string
	Logfile string
	MaxSize int `toml:"max_log_size"`
	MaxAge  int `toml:"max_log_age"`
}

// Debug reports whether debug logging is enabled.
func (c LogConfig) Debug() bool {
	return strings.EqualFold(c.Level, "debug")
}

// SetLogger points the standard logger at a rotating log file, or at stderr
// if no file is configured. stdout is reserved for the MCP protocol.
//
// The returned Closer flushes and closes the log file.
func (c *LogConfig) SetLogger() io.Closer {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if c == nil || c.Logfile == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}
	l := &lumberjack.Logger{
		Filename: c.Logfile,
		MaxSize:  c.MaxSize, // megabytes
		MaxAge:   c.MaxAge,  // days
	}
	log.SetOutput(l)
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
