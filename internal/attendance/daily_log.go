package attendance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DailyLog appends entries to one CSV file per calendar day.
type DailyLog struct {
	dir string
	mu  sync.Mutex
}

// OpenDailyLog returns a log writing into dir, creating it if needed.
func OpenDailyLog(dir string) (*DailyLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating logs directory: %w", err)
	}
	return &DailyLog{dir: dir}, nil
}

// Dir returns the logs directory.
func (l *DailyLog) Dir() string {
	return l.dir
}

// Path returns the log file for the day of t.
func (l *DailyLog) Path(t time.Time) string {
	return filepath.Join(l.dir, "logs_"+t.Format(DateLayout)+".csv")
}

// Append writes entry to the file of its day. The header is written only when
// the file is new or empty.
func (l *DailyLog) Append(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	path := l.Path(entry.Time)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // path built from a date
	if err != nil {
		return fmt.Errorf("opening log %s: %w", filepath.Base(path), err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("inspecting log %s: %w", filepath.Base(path), err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		w.Write(Header)
	}
	w.Write(entry.Row())
	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing log %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing log %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadDay returns the entries logged on the day of t, in insertion order.
// A day without a log file has no entries.
func (l *DailyLog) ReadDay(t time.Time) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.Path(t))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing log: %w", err)
	}

	var entries []Entry
	for i, record := range records {
		if i == 0 || len(record) < len(Header) {
			continue
		}
		at, err := time.ParseInLocation(TimeLayout, record[2], t.Location())
		if err != nil {
			return nil, fmt.Errorf("parsing time on row %d: %w", i+1, err)
		}
		entries = append(entries, Entry{Name: record[0], Status: record[1], Time: at})
	}
	return entries, nil
}
