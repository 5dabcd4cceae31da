package host

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/iburimskiy/landing-fx/internal/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCanvas struct {
	w, h   int
	clears int
	fills  int
}

func (c *countingCanvas) Resize(w, h int) { c.w, c.h = w, h }
func (c *countingCanvas) Clear()          { c.clears++ }
func (c *countingCanvas) FillCircle(float64, float64, float64, color.NRGBA, float64) {
	c.fills++
}

var epoch = time.Unix(1_700_000_000, 0)

func TestHost_FramesRunOnNextTick(t *testing.T) {
	h := New(epoch)
	var order []int

	h.RequestFrame(func() {
		order = append(order, 1)
		h.RequestFrame(func() { order = append(order, 3) })
	})
	h.RequestFrame(func() { order = append(order, 2) })

	h.Tick(epoch.Add(16 * time.Millisecond))
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, h.PendingFrames())

	h.Tick(epoch.Add(32 * time.Millisecond))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestHost_CancelFrame(t *testing.T) {
	h := New(epoch)
	ran := false
	id := h.RequestFrame(func() { ran = true })

	h.CancelFrame(id)
	h.Tick(epoch.Add(time.Second))

	assert.False(t, ran)
	assert.Zero(t, h.PendingFrames())
}

func TestHost_TimersFireInDeadlineOrder(t *testing.T) {
	h := New(epoch)
	var fired []string

	h.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	h.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })
	stopped := h.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "stopped") })
	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	h.Tick(epoch.Add(99 * time.Millisecond))
	assert.Empty(t, fired)

	h.Tick(epoch.Add(300 * time.Millisecond))
	assert.Equal(t, []string{"early", "late"}, fired)
	assert.Zero(t, h.PendingTimers())
	assert.Equal(t, epoch.Add(300*time.Millisecond), h.Now())
}

func TestHost_ClockIsMonotonic(t *testing.T) {
	h := New(epoch)
	h.Tick(epoch.Add(time.Second))
	h.Tick(epoch)
	assert.Equal(t, epoch.Add(time.Second), h.Now())
}

func TestHost_ViewportNotifiesOnChange(t *testing.T) {
	h := New(epoch)
	calls := 0
	id := h.AddResizeListener(func(w, hh int) {
		calls++
		assert.Equal(t, 640, w)
		assert.Equal(t, 480, hh)
	})

	h.SetViewport(640, 480)
	h.SetViewport(640, 480)
	assert.Equal(t, 1, calls)

	h.RemoveResizeListener(id)
	assert.Zero(t, h.Listeners())
	h.SetViewport(10, 10)
	assert.Equal(t, 1, calls)
}

func TestHost_LayerCapacity(t *testing.T) {
	h := New(epoch, WithMaxElements(2))
	a, b, c := &fx.Confetto{}, &fx.Confetto{}, &fx.Confetto{}

	assert.True(t, h.Append(a))
	assert.True(t, h.Append(b))
	assert.False(t, h.Append(c))
	assert.Equal(t, []*fx.Confetto{a, b}, h.Elements())

	h.Remove(a)
	h.Remove(a)
	assert.Equal(t, []*fx.Confetto{b}, h.Elements())
}

func TestHost_DrivesParticleField(t *testing.T) {
	h := New(epoch)
	h.SetViewport(800, 600)
	c := &countingCanvas{}
	h.Register("particle-canvas", c)

	f := fx.NewParticleField(h, fx.WithRand(fx.NewRand(1)))
	f.Start("particle-canvas")
	require.True(t, f.Running())
	assert.Equal(t, 1, c.clears)

	now := epoch
	for i := 0; i < 10; i++ {
		now = now.Add(16 * time.Millisecond)
		h.Tick(now)
	}
	assert.Equal(t, 11, c.clears)
	assert.Equal(t, 11*60, c.fills)

	h.SetViewport(400, 300)
	assert.Equal(t, 400, c.w)
	assert.Len(t, f.Particles(), 60)

	f.Stop()
	assert.Zero(t, h.PendingFrames())
	assert.Zero(t, h.Listeners())
	h.Tick(now.Add(time.Second))
	assert.Equal(t, 11, c.clears)
}

func TestHost_DrivesBurstCleanup(t *testing.T) {
	h := New(epoch)
	b := fx.NewBurstEffect(h, fx.WithRand(fx.NewRand(1)))

	b.Burst(100, 200, fx.WithCount(5))
	require.Len(t, h.Elements(), 5)
	for _, e := range h.Elements() {
		assert.Equal(t, 100.0, e.X)
		assert.Equal(t, 200.0, e.Y)
	}

	h.Tick(epoch.Add(1500 * time.Millisecond))
	assert.Len(t, h.Elements(), 5)

	h.Tick(epoch.Add(2000 * time.Millisecond))
	assert.Empty(t, h.Elements())
	assert.Zero(t, b.Active())
}

func TestHost_TimerCancelsFrameInSameTick(t *testing.T) {
	h := New(epoch)
	ran := false
	id := h.RequestFrame(func() { ran = true })
	h.AfterFunc(10*time.Millisecond, func() { h.CancelFrame(id) })

	h.Tick(epoch.Add(10 * time.Millisecond))

	assert.False(t, ran)
}

func TestHost_BurstFromAnotherGoroutine(t *testing.T) {
	h := New(epoch)
	b := fx.NewBurstEffect(h, fx.WithRand(fx.NewRand(1)))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			b.Burst(1, 1, fx.WithCount(5))
			_ = b.Active()
		}
	}()

	now := epoch
	for i := 0; i < 2000; i++ {
		now = now.Add(5 * time.Millisecond)
		h.Tick(now)
	}
	wg.Wait()

	h.Tick(now.Add(time.Hour))
	assert.Zero(t, b.Active())
	assert.Empty(t, h.Elements())
	assert.Zero(t, h.PendingTimers())
}

func TestHost_ShutdownRacesTick(t *testing.T) {
	h := New(epoch)
	b := fx.NewBurstEffect(h, fx.WithRand(fx.NewRand(2)))
	for i := 0; i < 20; i++ {
		b.Burst(0, 0)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Shutdown()
	}()
	h.Tick(epoch.Add(1800 * time.Millisecond))
	<-done

	assert.Zero(t, b.Active())
	assert.Empty(t, h.Elements())
}

func TestHost_FieldStartedAfterTickStepsOncePerTick(t *testing.T) {
	h := New(epoch)
	h.SetViewport(800, 600)
	c := &countingCanvas{}
	h.Register("particle-canvas", c)
	f := fx.NewParticleField(h, fx.WithRand(fx.NewRand(4)))

	// Same order as the game's Update: tick first, then start.
	now := epoch.Add(16 * time.Millisecond)
	h.Tick(now)
	f.Start("particle-canvas")
	assert.Equal(t, 1, c.clears, "only the synchronous first frame")
	assert.Equal(t, 1, h.PendingFrames())

	h.Tick(now.Add(16 * time.Millisecond))
	assert.Equal(t, 2, c.clears)
}
