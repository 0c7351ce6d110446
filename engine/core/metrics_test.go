package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFrameMetrics(t *testing.T) {
	m := NewFrameMetrics()
	require.Zero(t, m.FPS())

	// 62.5ms frames, sixteen of them make one second.
	for i := 0; i < 15; i++ {
		m.Update(0.0625)
	}
	require.Zero(t, m.FPS())
	require.Zero(t, m.FrameTime())

	m.Update(0.0625)
	require.Equal(t, float64(16), m.FPS())

	for i := 16; i < int(AVG_COUNT); i++ {
		m.Update(0.0625)
	}
	require.Equal(t, 62.5, m.FrameTime())
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := &Clock{now: func() time.Time { return now }}

	c.Update()
	require.Zero(t, c.Elapsed())

	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	require.InDelta(t, 1.5, c.Elapsed(), 1e-9)

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	require.InDelta(t, 1.5, c.Elapsed(), 1e-9)
}
