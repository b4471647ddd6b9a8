package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kastheco/webmon/internal/sentry"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
)

var logFileName = filepath.Join(os.TempDir(), "webmon.log")

var globalLogFile *os.File

// Initialize should be called once at the beginning of the program to set up logging.
// defer Close() after calling this function. It sets the go log output to the file in
// the os temp directory. When telemetry is enabled, warnings and errors are also
// forwarded to sentry.
func Initialize(telemetry ...bool) {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}

	var warnOut, errOut io.Writer = f, f
	if len(telemetry) > 0 && telemetry[0] {
		warnOut = sentry.NewWriter(f, sentry.LevelWarning)
		errOut = sentry.NewWriter(f, sentry.LevelError)
	}

	InfoLog = log.New(f, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(warnOut, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(errOut, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)

	globalLogFile = f
}

// Close flushes and closes the log file. Safe to call when Initialize was never called.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	fmt.Println("wrote logs to " + logFileName)
}

// FileName returns the path of the log file.
func FileName() string {
	return logFileName
}

// Every is used to log at most once every timeout duration.
type Every struct {
	timeout time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewEvery(timeout time.Duration) *Every {
	return &Every{timeout: timeout}
}

// ShouldLog returns true if the timeout has passed since the last log.
func (e *Every) ShouldLog() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.timer == nil {
		e.timer = time.NewTimer(e.timeout)
		return true
	}

	select {
	case <-e.timer.C:
		e.timer.Reset(e.timeout)
		return true
	default:
		return false
	}
}
