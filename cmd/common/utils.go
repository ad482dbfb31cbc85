package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LogLevel represents different logging levels.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides structured console output for CLI applications.
type Logger struct {
	Level      LogLevel
	ShowEmojis bool
	SilentMode bool
}

// NewLogger creates a new logger with default settings.
func NewLogger() *Logger {
	return &Logger{
		Level:      LogLevelInfo,
		ShowEmojis: true,
	}
}

// SetSilentMode enables or disables silent mode.
func (l *Logger) SetSilentMode(silent bool) {
	l.SilentMode = silent
}

// Header prints a formatted header.
func (l *Logger) Header(title string) {
	if l.SilentMode {
		return
	}
	emoji := "🎯"
	if !l.ShowEmojis {
		emoji = "***"
	}
	fmt.Printf("\n%s %s\n", emoji, strings.ToUpper(title))
	fmt.Printf("%s\n", strings.Repeat("=", len(title)+5))
}

// Section prints a formatted section header.
func (l *Logger) Section(title string) {
	if l.SilentMode {
		return
	}
	emoji := "📋"
	if !l.ShowEmojis {
		emoji = "---"
	}
	fmt.Printf("\n%s %s\n", emoji, title)
	fmt.Printf("%s\n", strings.Repeat("-", len(title)+5))
}

// Info prints an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.SilentMode || l.Level < LogLevelInfo {
		return
	}
	emoji := "ℹ️"
	if !l.ShowEmojis {
		emoji = "[INFO]"
	}
	fmt.Printf("%s  %s\n", emoji, fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	emoji := "❌"
	if !l.ShowEmojis {
		emoji = "[ERROR]"
	}
	fmt.Printf("%s %s\n", emoji, fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (l *Logger) Success(format string, args ...interface{}) {
	if l.SilentMode {
		return
	}
	emoji := "✅"
	if !l.ShowEmojis {
		emoji = "[SUCCESS]"
	}
	fmt.Printf("%s %s\n", emoji, fmt.Sprintf(format, args...))
}

// Warn prints a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.Level < LogLevelWarn {
		return
	}
	emoji := "⚠️"
	if !l.ShowEmojis {
		emoji = "[WARN]"
	}
	fmt.Printf("%s  %s\n", emoji, fmt.Sprintf(format, args...))
}

// Progress prints a progress message.
func (l *Logger) Progress(format string, args ...interface{}) {
	if l.SilentMode {
		return
	}
	emoji := "🔄"
	if !l.ShowEmojis {
		emoji = "[PROGRESS]"
	}
	fmt.Printf("%s %s\n", emoji, fmt.Sprintf(format, args...))
}

// LoadEnvironment loads environment variables from a .env file when present.
func LoadEnvironment(envFile string) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("⚠️  Could not load %s: %v\n", envFile, err)
		}
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// EnsureDir ensures a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
