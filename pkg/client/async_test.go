package client

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiloren/Gred-In-Compression-System/pkg/protocol"
)

func TestPutAsyncResolves(t *testing.T) {
	c, _ := newTestClient(t, storeHandler())

	future := c.PutAsync(context.Background(), "svc:api", map[string]interface{}{"n": float64(1)})
	ok, err := future.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetAsyncResolves(t *testing.T) {
	c, _ := newTestClient(t, storeHandler())
	ctx := context.Background()

	_, err := c.Put(ctx, "svc:api", map[string]interface{}{"n": float64(1)})
	require.NoError(t, err)

	record, err := c.GetAsync(ctx, "svc:api").Wait(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "svc:api", record.Key)
}

func TestFutureWaitRepeatable(t *testing.T) {
	c, _ := newTestClient(t, storeHandler())
	ctx := context.Background()

	future := c.PutAsync(ctx, "k", nil)

	first, err1 := future.Wait(ctx)
	second, err2 := future.Wait(ctx)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestFutureWaitHonorsContext(t *testing.T) {
	slow := func(req *protocol.Request) *protocol.Response {
		time.Sleep(500 * time.Millisecond)
		id, _ := json.Marshal(req.ID)
		return &protocol.Response{ID: id, Result: json.RawMessage(`{"ok":true}`)}
	}
	c, _ := newTestClient(t, slow)

	future := c.PingAsync(context.Background())

	waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := future.Wait(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The call itself keeps running and still resolves.
	_, err = future.Wait(context.Background())
	assert.NoError(t, err)

	select {
	case <-future.Done():
	default:
		t.Fatal("future should be resolved")
	}
}

func TestConcurrentAsyncCalls(t *testing.T) {
	c, daemon := newTestClient(t, storeHandler(), WithPoolSize(4))
	ctx := context.Background()

	futures := make([]*Future[bool], 10)
	for i := range futures {
		futures[i] = c.PutAsync(ctx, "k", map[string]interface{}{"i": float64(i)})
	}
	for _, f := range futures {
		ok, err := f.Wait(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 10, daemon.RequestCount())
}
