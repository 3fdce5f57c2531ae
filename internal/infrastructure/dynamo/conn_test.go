package dynamo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/friskytrails/api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConn() *Conn {
	return NewConn(&config.Config{AWSRegion: "us-east-1"})
}

func fakeClient() *dynamodb.Client {
	return dynamodb.New(dynamodb.Options{Region: "us-east-1"})
}

func TestEnsure_ConcurrentColdStart_SingleAttempt(t *testing.T) {
	c := testConn()
	var dials int32
	c.dial = func(ctx context.Context) (*dynamodb.Client, error) {
		atomic.AddInt32(&dials, 1)
		time.Sleep(20 * time.Millisecond) // widen the race window
		return fakeClient(), nil
	}

	const callers = 25
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Ensure(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&dials))
	assert.True(t, c.Ready())
}

func TestEnsure_Established_NoRedial(t *testing.T) {
	c := testConn()
	var dials int32
	c.dial = func(ctx context.Context) (*dynamodb.Client, error) {
		atomic.AddInt32(&dials, 1)
		return fakeClient(), nil
	}

	for i := 0; i < 3; i++ {
		_, err := c.Ensure(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&dials))
}

func TestEnsure_FailureClearsSlot_NextCallRetries(t *testing.T) {
	c := testConn()
	boom := errors.New("network down")
	var dials int32
	c.dial = func(ctx context.Context) (*dynamodb.Client, error) {
		if atomic.AddInt32(&dials, 1) == 1 {
			return nil, boom
		}
		return fakeClient(), nil
	}

	_, err := c.Ensure(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, c.Ready())

	_, err = c.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dials))
	assert.True(t, c.Ready())
}

func TestEnsure_ConcurrentCallersShareFailure(t *testing.T) {
	c := testConn()
	boom := errors.New("refused")
	var dials int32
	c.dial = func(ctx context.Context) (*dynamodb.Client, error) {
		atomic.AddInt32(&dials, 1)
		time.Sleep(20 * time.Millisecond)
		return nil, boom
	}

	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Ensure(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&dials))
	for _, err := range errs {
		assert.ErrorIs(t, err, boom)
	}
}

func TestEnsure_InvalidateForcesReconnect(t *testing.T) {
	c := testConn()
	var dials int32
	c.dial = func(ctx context.Context) (*dynamodb.Client, error) {
		atomic.AddInt32(&dials, 1)
		return fakeClient(), nil
	}

	_, err := c.Ensure(context.Background())
	require.NoError(t, err)

	c.Invalidate()
	assert.False(t, c.Ready())

	_, err = c.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&dials))
}

func TestEnsure_MissingRegion_FailsFast(t *testing.T) {
	c := NewConn(&config.Config{})
	_, err := c.Ensure(context.Background())
	require.ErrorIs(t, err, ErrNoRegion)
}
