package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"go.uber.org/zap"
)

// Marker supplies the event clock and remembers when an identity's
// attendance was recorded.
type Marker interface {
	Now() time.Time
	MarkAt(name string, at time.Time)
}

// SyncStats summarizes remote sink activity since startup.
type SyncStats struct {
	Attempts      int64
	Failures      int64
	LastError     string
	LastFailureAt time.Time
}

// Recorder writes attendance to the local log and then to every remote sink.
// Remote failures are logged and counted but never fail a recording.
type Recorder struct {
	log         *DailyLog
	marker      Marker
	sinks       []Sink
	timeout     time.Duration
	logger      *zap.Logger
	onSyncError func(*SyncError)

	mu    sync.Mutex
	stats SyncStats
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithSink adds a remote sink.
func WithSink(s Sink) Option {
	return func(r *Recorder) {
		r.sinks = append(r.sinks, s)
	}
}

// WithSyncTimeout bounds each remote append.
func WithSyncTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		r.timeout = d
	}
}

// WithLogger sets the recorder logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Recorder) {
		r.logger = l
	}
}

// WithSyncErrorHook is called for every remote sync failure.
func WithSyncErrorHook(fn func(*SyncError)) Option {
	return func(r *Recorder) {
		r.onSyncError = fn
	}
}

// NewRecorder creates a recorder. marker supplies the event time and is
// updated after every successful local write.
func NewRecorder(log *DailyLog, marker Marker, opts ...Option) *Recorder {
	r := &Recorder{
		log:     log,
		marker:  marker,
		timeout: constants.DefaultSyncTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record logs attendance for name. Only a local log failure is returned, and
// then the identity is not marked, so a retry is not suppressed.
func (r *Recorder) Record(ctx context.Context, name, status string) (Entry, error) {
	entry := Entry{
		ID:     uuid.NewString(),
		Name:   name,
		Status: status,
		Time:   r.marker.Now(),
	}

	if err := r.log.Append(entry); err != nil {
		return entry, fmt.Errorf("writing local log: %w", err)
	}
	r.marker.MarkAt(name, entry.Time)

	for _, sink := range r.sinks {
		r.sync(ctx, sink, entry)
	}

	r.logger.Info("attendance recorded",
		zap.String("entry_id", entry.ID),
		zap.String("name", entry.Name),
		zap.String("status", entry.Status),
		zap.String("time", entry.Time.Format(TimeLayout)),
	)
	return entry, nil
}

// sync pushes one entry to one sink. The request context only contributes its
// values; a client hanging up does not abort the append.
func (r *Recorder) sync(ctx context.Context, sink Sink, entry Entry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	err := sink.Append(ctx, entry)

	r.mu.Lock()
	r.stats.Attempts++
	if err != nil {
		r.stats.Failures++
		r.stats.LastError = err.Error()
		r.stats.LastFailureAt = time.Now()
	}
	r.mu.Unlock()

	if err == nil {
		return
	}

	syncErr := &SyncError{Sink: sink.Name(), EntryID: entry.ID, Err: err}
	r.logger.Warn("remote sync failed",
		zap.String("sink", syncErr.Sink),
		zap.String("entry_id", syncErr.EntryID),
		zap.Error(err),
	)
	if r.onSyncError != nil {
		r.onSyncError(syncErr)
	}
}

// Stats returns a snapshot of remote sync counters.
func (r *Recorder) Stats() SyncStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// SinkNames lists the configured remote sinks.
func (r *Recorder) SinkNames() []string {
	names := make([]string, 0, len(r.sinks))
	for _, s := range r.sinks {
		names = append(names, s.Name())
	}
	return names
}
