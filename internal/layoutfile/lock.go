package layoutfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/logging"
)

// LockSuffix is appended to a layout file path to name its lock file.
const LockSuffix = ".lock"

// FileLock keeps two dashkit processes from writing the same layout file.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates the lock guarding the layout file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path + LockSuffix}
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Acquire takes the lock without blocking. It fails with ErrLayoutLocked when
// another live process holds it.
func (l *FileLock) Acquire() error {
	l.cleanStaleLock()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return systemError("lock", "failed to create lock file", err)
	}

	if err := flockAcquire(file); err != nil {
		file.Close()
		if errors.Is(err, errors.ErrLayoutLocked) {
			if pid := l.readPID(); pid > 0 {
				return fmt.Errorf("%w (PID %d)", errors.ErrLayoutLocked, pid)
			}
		}
		return err
	}

	if err := writePID(file); err != nil {
		flockRelease(file)
		file.Close()
		return systemError("lock", "failed to write lock file", err)
	}

	l.file = file
	return nil
}

// Release unlocks and removes the lock file. Releasing an unheld lock is a no-op.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}

	if err := flockRelease(l.file); err != nil {
		l.file.Close()
		l.file = nil
		return err
	}
	if err := l.file.Close(); err != nil {
		l.file = nil
		return err
	}
	l.file = nil

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func writePID(file *os.File) error {
	if err := file.Truncate(0); err != nil {
		return err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(file, "%d", os.Getpid()); err != nil {
		return err
	}
	return file.Sync()
}

// cleanStaleLock removes a lock file left behind by a process that is gone.
func (l *FileLock) cleanStaleLock() {
	pid := l.readPID()
	if pid <= 0 || isProcessRunning(pid) {
		return
	}
	if err := os.Remove(l.path); err == nil {
		logging.Warn("removed stale layout lock", logging.KeyPath, l.path, "pid", pid)
	}
}

// readPID returns the PID recorded in the lock file, or 0.
func (l *FileLock) readPID() int {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
