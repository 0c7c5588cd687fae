package conc

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
)

func TestPoolSubmit(t *testing.T) {
	pool := NewPool[int](4, WithPreAlloc(true))
	defer pool.Release()

	futures := make([]*Future[int], 0, 10)
	for i := 0; i < 10; i++ {
		i := i
		futures = append(futures, pool.Submit(func() (int, error) {
			return i * i, nil
		}))
	}
	require.NoError(t, AwaitAll(futures...))
	for i, f := range futures {
		assert.True(t, f.Done())
		assert.Equal(t, i*i, f.Value())
	}
	assert.Equal(t, 4, pool.Cap())
}

func TestPoolError(t *testing.T) {
	pool := NewPool[int](2)
	defer pool.Release()

	errMock := errors.New("mock")
	ok := pool.Submit(func() (int, error) { return 1, nil })
	bad := pool.Submit(func() (int, error) { return 0, errMock })

	assert.ErrorIs(t, AwaitAll(ok, bad), errMock)
	_, err := bad.Await()
	assert.ErrorIs(t, err, errMock)
}

func TestPoolPanic(t *testing.T) {
	pool := NewPool[int](1)
	defer pool.Release()

	f := pool.Submit(func() (int, error) { panic("boom") })
	assert.ErrorIs(t, f.Err(), merr.ErrServiceInternal)
}

func TestPoolReleased(t *testing.T) {
	pool := NewPool[int](1)
	pool.Release()

	f := pool.Submit(func() (int, error) { return 1, nil })
	assert.ErrorIs(t, f.Err(), merr.ErrServiceInternal)
}

func TestPoolNonBlocking(t *testing.T) {
	pool := NewPool[int](1, WithNonBlocking(true), WithExpiryDuration(time.Minute), WithDisablePurge(true))
	defer pool.Release()

	block := make(chan struct{})
	busy := pool.Submit(func() (int, error) {
		<-block
		return 1, nil
	})
	rejected := pool.Submit(func() (int, error) { return 2, nil })
	assert.ErrorIs(t, rejected.Err(), merr.ErrServiceTooManyRequests)

	close(block)
	v, err := busy.Await()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestGo(t *testing.T) {
	f := Go(func() (string, error) { return "done", nil })
	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	<-f.Inner()
}
