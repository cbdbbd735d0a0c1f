package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const (
	defaultThresholdKB = 100 * 1000 // 100 MB logs by default.
	defaultMaxRolls    = 8          // keep 8 last logs by default.
)

type logWriter struct {
	io.WriteCloser
	logLevel Level
}

// Backend is a logging backend. Subsystems created from the backend write to
// the backend's writers. Backend provides atomic writes to each writer.
type Backend struct {
	writers   []logWriter
	writeLock sync.Mutex
	isRunning uint32
	pool      sync.Pool
}

// NewBackend creates a new logger backend.
func NewBackend() *Backend {
	return &Backend{
		pool: sync.Pool{New: func() interface{} { return new(bytes.Buffer) }},
	}
}

// AddLogFile adds a file which the log will write into on a certain
// log level with the default log rotation settings. It'll create the file if it doesn't exist.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogFileWithCustomRotator adds a file which the log will write into on a certain
// log level, with the specified log rotation settings.
// It'll create the file if it doesn't exist.
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	logDir, _ := filepath.Split(logFile)
	// if the logDir is empty then `logFile` is in the cwd and there's no need to create any directory.
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Errorf("failed to create log directory: %+v", err)
		}
	}
	r, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Errorf("failed to create file rotator: %s", err)
	}
	b.AddLogWriter(r, logLevel)
	return nil
}

// AddLogWriter adds a type implementing io.WriteCloser which the log will write into on a certain
// log level.
func (b *Backend) AddLogWriter(logWriter io.WriteCloser, logLevel Level) {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	b.writers = append(b.writers, logWriterWithLevel(logWriter, logLevel))
}

func logWriterWithLevel(writer io.WriteCloser, level Level) logWriter {
	return logWriter{WriteCloser: writer, logLevel: level}
}

// Run marks the backend as running. Messages logged before Run are dropped.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("The logger is already running")
	}
	return nil
}

// IsRunning returns true if backend.Run() has been called and false if it hasn't.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close stops the backend and finalizes all its writers, including the log
// rotators. Writers attached before Run are closed as well.
func (b *Backend) Close() {
	atomic.StoreUint32(&b.isRunning, 0)
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	for _, writer := range b.writers {
		_ = writer.Close()
	}
	b.writers = nil
}

func (b *Backend) write(lvl Level, p []byte) {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()
	for _, writer := range b.writers {
		if lvl >= writer.logLevel {
			_, _ = writer.Write(p)
		}
	}
}

// Logger returns a new logger for a particular subsystem that writes to the
// Backend b. A tag describes the subsystem and is included in all log
// messages. The logger uses the info verbosity level by default.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{LevelInfo, subsystemTag, b}
}
