package contracts

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCaller struct {
	calls  int64
	result []byte
	delay  time.Duration
}

func (c *countingCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	atomic.AddInt64(&c.calls, 1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.result, nil
}

func TestCallCacheReusesResultWithinTTL(t *testing.T) {
	caller := &countingCaller{result: []byte{0x01}}
	cache := NewCallCacheWithTTL(time.Second)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")

	for i := 0; i < 5; i++ {
		result, err := cache.Call(context.Background(), caller, to, []byte{0xaa})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01}, result)
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&caller.calls))
}

func TestCallCacheDistinguishesKeys(t *testing.T) {
	caller := &countingCaller{result: []byte{0x01}}
	cache := NewCallCacheWithTTL(time.Second)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	other := common.HexToAddress("0x2222222222222222222222222222222222222222")

	_, err := cache.Call(context.Background(), caller, to, []byte{0xaa})
	require.NoError(t, err)
	_, err = cache.Call(context.Background(), caller, to, []byte{0xbb})
	require.NoError(t, err)
	_, err = cache.Call(context.Background(), caller, other, []byte{0xaa})
	require.NoError(t, err)

	assert.Equal(t, int64(3), atomic.LoadInt64(&caller.calls))
}

func TestCallCacheCoalescesConcurrentCalls(t *testing.T) {
	caller := &countingCaller{result: []byte{0x02}, delay: 50 * time.Millisecond}
	cache := NewCallCacheWithTTL(time.Second)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := cache.Call(context.Background(), caller, to, []byte{0xcc})
			assert.NoError(t, err)
			assert.Equal(t, []byte{0x02}, result)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&caller.calls))
}

func TestCallCacheExpiresAfterTTL(t *testing.T) {
	caller := &countingCaller{result: []byte{0x03}}
	cache := NewCallCacheWithTTL(20 * time.Millisecond)
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")

	_, err := cache.Call(context.Background(), caller, to, []byte{0xdd})
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Call(context.Background(), caller, to, []byte{0xdd})
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&caller.calls))
}
