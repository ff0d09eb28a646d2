// Package notify carries short user-facing notices from the battle engine to
// whatever presents them.
package notify

//go:generate mockgen -destination=mock/mock_sink.go -package=notifymock github.com/KirkDiggler/pixel-xp/internal/notify Sink

import (
	"context"
	"log/slog"
	"sync"
)

// Severity classifies a notice for presentation
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Notice is one human-readable message
type Notice struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Info builds an informational notice
func Info(title, description string) Notice {
	return Notice{Title: title, Description: description, Severity: SeverityInfo}
}

// Destructive builds an error notice
func Destructive(title, description string) Notice {
	return Notice{Title: title, Description: description, Severity: SeverityDestructive}
}

// Sink receives notices. Implementations must not block the caller for long
// and must not fail: delivery problems are theirs to log.
type Sink interface {
	Notify(ctx context.Context, notice Notice)
}

// LogSink writes notices to a structured logger
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink writing to logger, or slog.Default when nil
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Notify implements Sink
func (s *LogSink) Notify(ctx context.Context, notice Notice) {
	level := slog.LevelInfo
	if notice.Severity == SeverityDestructive {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, notice.Title,
		"description", notice.Description,
		"severity", notice.Severity,
	)
}

// Recorder keeps every notice in memory
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements Sink
func (r *Recorder) Notify(_ context.Context, notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

// Notices returns a copy of everything recorded so far
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Drain returns everything recorded so far and forgets it
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// Multi fans a notice out to several sinks in order
type Multi []Sink

// Notify implements Sink
func (m Multi) Notify(ctx context.Context, notice Notice) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, notice)
		}
	}
}
