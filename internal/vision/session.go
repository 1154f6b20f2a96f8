package vision

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrDetectionTimeout is returned when no stable mood is reached within the
// session's time limit.
var ErrDetectionTimeout = errors.New("mood detection timed out")

// Source is the inference capability: one call returns zero or one detected
// faces for the current frame. A nil detection with a nil error means no face
// was visible. Implementations own frame acquisition.
type Source interface {
	Detect(ctx context.Context) (*Detection, error)
}

// Clock abstracts time so session timeout and pacing are testable without
// real timers.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

const (
	defaultWindow   = 12
	defaultInterval = 250 * time.Millisecond
	defaultTimeout  = 30 * time.Second
)

// Session runs the cooperative mood-detection loop: one inference per tick,
// frames processed strictly in arrival order, finalized by majority vote once
// the smoothing window fills. Cancelling the context halts the loop
// immediately; the caller owns and releases the Source.
type Session struct {
	source   Source
	logger   *zap.Logger
	clock    Clock
	window   int
	interval time.Duration
	timeout  time.Duration
	onStatus func(string)
}

type SessionOption func(*Session)

func WithClock(c Clock) SessionOption {
	return func(s *Session) { s.clock = c }
}

func WithWindow(n int) SessionOption {
	return func(s *Session) { s.window = n }
}

func WithInterval(d time.Duration) SessionOption {
	return func(s *Session) { s.interval = d }
}

func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.timeout = d }
}

// WithStatus registers a callback for user-visible phase changes
// ("waiting for face", ...).
func WithStatus(fn func(string)) SessionOption {
	return func(s *Session) { s.onStatus = fn }
}

func NewSession(source Source, logger *zap.Logger, opts ...SessionOption) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		source:   source,
		logger:   logger,
		clock:    realClock{},
		window:   defaultWindow,
		interval: defaultInterval,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) status(msg string) {
	if s.onStatus != nil {
		s.onStatus(msg)
	}
}

// Run drives the polling loop until a stable mood is reached, the context is
// cancelled, or the timeout elapses. Transient inference errors are logged
// and tolerated; they never abort the session on their own.
func (s *Session) Run(ctx context.Context) (Result, error) {
	deadline := s.clock.Now().Add(s.timeout)
	smoother := NewSmoother(s.window)
	var last Result

	s.status("waiting for face")

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if !s.clock.Now().Before(deadline) {
			s.status("detection timed out")
			return Result{}, ErrDetectionTimeout
		}

		det, err := s.source.Detect(ctx)
		switch {
		case err != nil:
			// Tolerated within the loop up to the session timeout.
			s.logger.Debug("inference call failed", zap.Error(err))
		case det == nil:
			s.status("waiting for face")
		default:
			metrics, ok := ExtractMetrics(det.Keypoints)
			if !ok {
				s.logger.Debug("detection rejected",
					zap.Int("keypoints", len(det.Keypoints)))
				s.status("waiting for face")
				break
			}
			last = Classify(metrics)
			smoother.Add(last.Mood)
			s.status("analyzing expression")

			if smoother.Full() {
				mood, _ := smoother.Majority()
				last.Mood = mood
				s.logger.Info("mood finalized",
					zap.String("mood", string(mood)),
					zap.Int("frames", smoother.Len()))
				return last, nil
			}
		}

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-s.clock.After(s.interval):
		}
	}
}
