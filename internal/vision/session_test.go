package vision

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitmind/internal/models"
)

// fakeClock advances only when the session waits on After, so tests run
// without real timers.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// scriptedSource replays a fixed sequence of outcomes, then repeats the last.
type scriptedSource struct {
	frames []func() (*Detection, error)
	calls  int
}

func (s *scriptedSource) Detect(ctx context.Context) (*Detection, error) {
	i := s.calls
	if i >= len(s.frames) {
		i = len(s.frames) - 1
	}
	s.calls++
	return s.frames[i]()
}

func happyFrame() (*Detection, error) {
	points := syntheticFace()
	// Widen the mouth and lift the corners well into the strong bands.
	points[idxMouthLeft] = Point{X: 0.35, Y: 0.70}
	points[idxMouthRight] = Point{X: 0.65, Y: 0.70}
	points[idxLipTop] = Point{X: 0.5, Y: 0.72}
	points[idxLipBottom] = Point{X: 0.5, Y: 0.76}
	return &Detection{Keypoints: points}, nil
}

func noFace() (*Detection, error) { return nil, nil }

func TestSessionFinalizesByMajorityVote(t *testing.T) {
	source := &scriptedSource{frames: []func() (*Detection, error){happyFrame}}
	session := NewSession(source, nil,
		WithClock(&fakeClock{}),
		WithWindow(5),
		WithInterval(100*time.Millisecond),
		WithTimeout(30*time.Second),
	)

	result, err := session.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.MoodHappy, result.Mood)
	assert.Equal(t, 5, source.calls)
}

func TestSessionTimesOutWithoutFace(t *testing.T) {
	var statuses []string
	source := &scriptedSource{frames: []func() (*Detection, error){noFace}}
	session := NewSession(source, nil,
		WithClock(&fakeClock{}),
		WithWindow(5),
		WithInterval(time.Second),
		WithTimeout(10*time.Second),
		WithStatus(func(s string) { statuses = append(statuses, s) }),
	)

	_, err := session.Run(context.Background())
	assert.ErrorIs(t, err, ErrDetectionTimeout)
	assert.Contains(t, statuses, "waiting for face")
	assert.Contains(t, statuses, "detection timed out")
}

func TestSessionToleratesTransientInferenceErrors(t *testing.T) {
	flaky := errors.New("inference backend hiccup")
	source := &scriptedSource{frames: []func() (*Detection, error){
		func() (*Detection, error) { return nil, flaky },
		func() (*Detection, error) { return nil, flaky },
		happyFrame,
	}}
	session := NewSession(source, nil,
		WithClock(&fakeClock{}),
		WithWindow(3),
		WithInterval(100*time.Millisecond),
		WithTimeout(30*time.Second),
	)

	result, err := session.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.MoodHappy, result.Mood)
	// 2 failures + 3 good frames to fill the window.
	assert.Equal(t, 5, source.calls)
}

func TestSessionCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &scriptedSource{frames: []func() (*Detection, error){happyFrame}}
	session := NewSession(source, nil, WithClock(&fakeClock{}))

	_, err := session.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	// The reschedule chain halts synchronously: no further inference calls.
	assert.Equal(t, 0, source.calls)
}

func TestSessionNeverFinalizesFromPartialWindow(t *testing.T) {
	// Fewer good frames than the window size before the deadline: the
	// session must time out rather than emit a mood from a partial vote.
	calls := 0
	source := &scriptedSource{frames: []func() (*Detection, error){
		func() (*Detection, error) { calls++; return happyFrame() },
	}}
	session := NewSession(source, nil,
		WithClock(&fakeClock{}),
		WithWindow(10),
		WithInterval(time.Second),
		WithTimeout(5*time.Second),
	)

	_, err := session.Run(context.Background())
	assert.ErrorIs(t, err, ErrDetectionTimeout)
	assert.Less(t, calls, 10)
}
