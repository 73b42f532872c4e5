package pool_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"
	"github.com/stretchr/testify/require"

	"github.com/fsbench/fsbench/libs/pool"
)

func TestPoolRunsTasks(t *testing.T) {
	defer leaktest.Check(t)()

	p := pool.New(2)
	defer p.Close()

	ran := make(chan struct{})
	h := p.Submit(func() error {
		close(ran)
		return nil
	})

	require.NoError(t, h.Wait())
	select {
	case <-ran:
	default:
		t.Fatal("task did not run")
	}
}

func TestPoolPropagatesTaskError(t *testing.T) {
	defer leaktest.Check(t)()

	p := pool.New(2)
	defer p.Close()

	boom := errors.New("boom")
	h := p.Submit(func() error { return boom })
	require.ErrorIs(t, h.Wait(), boom)
}

func TestPoolJoinWaitsForAll(t *testing.T) {
	defer leaktest.Check(t)()

	p := pool.New(2)
	defer p.Close()

	const delay = 20 * time.Millisecond
	boom := errors.New("boom")

	start := time.Now()
	slow := p.Submit(func() error {
		time.Sleep(delay)
		return nil
	})
	failing := p.Submit(func() error { return boom })

	err := p.Join(failing, slow)
	elapsed := time.Since(start)

	// Join surfaces the error but still waits for the slow task.
	require.ErrorIs(t, err, boom)
	require.GreaterOrEqual(t, elapsed, delay)
}

func TestPoolSubmitAfterClose(t *testing.T) {
	defer leaktest.Check(t)()

	p := pool.New(2)
	p.Close()

	h := p.Submit(func() error { return nil })
	require.ErrorIs(t, h.Wait(), pool.ErrPoolClosed)
}

func TestPoolCloseIdempotent(t *testing.T) {
	defer leaktest.Check(t)()

	p := pool.New(4)
	h := p.Submit(func() error { return nil })
	require.NoError(t, h.Wait())

	p.Close()
	p.Close()
}

func TestPoolTasksOverlap(t *testing.T) {
	defer leaktest.Check(t)()

	p := pool.New(2)
	defer p.Close()

	const delay = 20 * time.Millisecond

	start := time.Now()
	h1 := p.Submit(func() error {
		time.Sleep(delay)
		return nil
	})
	h2 := p.Submit(func() error {
		time.Sleep(delay)
		return nil
	})
	require.NoError(t, p.Join(h1, h2))

	// Two workers, two sleeping tasks: total should be roughly one delay,
	// not two.
	require.Less(t, time.Since(start), 2*delay)
}
