// Package attendance records attendance events to a per-day CSV log and
// forwards them to remote sinks such as a spreadsheet.
package attendance

import "time"

const (
	// TimeLayout formats the Time column.
	TimeLayout = "2006-01-02 15:04:05"
	// DateLayout names the per-day log files.
	DateLayout = "2006-01-02"
)

// Header is the first row of every daily log.
var Header = []string{"Name", "Status", "Time"}

// Entry is one recorded attendance event.
type Entry struct {
	ID     string    // correlates the local row with remote sync failures
	Name   string    // identity
	Status string    // mode label sent by the client, e.g. "Check-In"
	Time   time.Time // when the event was recorded
}

// Row returns the entry as a log row in Header order.
func (e Entry) Row() []string {
	return []string{e.Name, e.Status, e.Time.Format(TimeLayout)}
}
