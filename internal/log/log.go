// Package log is a small leveled key=value logger writing to stderr. The TUI
// owns the terminal, so anything logged here is for post-mortem reading or
// redirected runs.
package log

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

var (
	mu       sync.Mutex
	logger   = stdlog.New(os.Stderr, "", stdlog.LstdFlags|stdlog.Lmicroseconds)
	minLevel = LevelInfo
)

func SetLevel(l Level) {
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

// SetOutput redirects the logger, used by the TUI to keep stderr clean while
// the terminal is in raw mode.
func SetOutput(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	mu.Lock()
	logger.SetOutput(f)
	mu.Unlock()
	return nil
}

func Debug(msg string, kv ...any) { write(LevelDebug, "DEBUG", msg, kv) }

func Info(msg string, kv ...any) { write(LevelInfo, "INFO", msg, kv) }

func Error(msg string, err error, kv ...any) {
	write(LevelError, "ERROR", msg, append([]any{"err", err}, kv...))
}

func write(level Level, tag, msg string, kv []any) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	var b strings.Builder
	b.WriteString("[" + tag + "] " + msg)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		b.WriteString(" " + key + "=" + fmt.Sprint(kv[i+1]))
	}
	logger.Println(b.String())
}
