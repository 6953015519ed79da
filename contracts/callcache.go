package contracts

import (
	"context"
	"encoding/hex"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/singleflight"
)

// defaultCallTTL is the window within which identical contract reads are
// served from the last result instead of hitting the RPC endpoint again.
const defaultCallTTL = 500 * time.Millisecond

// Caller is the subset of ethclient.Client the wrappers need for reads.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type cacheEntry struct {
	result   []byte
	storedAt time.Time
}

// CallCache coalesces identical outbound contract reads. Concurrent callers
// of the same (contract, calldata) share one in-flight RPC call, and the
// settled result is reused for a short TTL. Single-process only.
type CallCache struct {
	mu      sync.Mutex
	group   singleflight.Group
	entries map[string]cacheEntry
	ttl     time.Duration
}

func NewCallCache() *CallCache {
	return &CallCache{
		entries: make(map[string]cacheEntry),
		ttl:     defaultCallTTL,
	}
}

// NewCallCacheWithTTL exists for tests that need a shorter or longer window.
func NewCallCacheWithTTL(ttl time.Duration) *CallCache {
	c := NewCallCache()
	c.ttl = ttl
	return c
}

// Call performs a read through the cache. The key is the target address plus
// the packed calldata, which already encodes method and arguments.
func (c *CallCache) Call(ctx context.Context, caller Caller, to common.Address, data []byte) ([]byte, error) {
	key := to.Hex() + "|" + hex.EncodeToString(data)

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		if time.Since(entry.storedAt) < c.ttl {
			c.mu.Unlock()
			return entry.result, nil
		}
		delete(c.entries, key)
	}
	c.mu.Unlock()

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		out, err := caller.CallContract(ctx, ethereum.CallMsg{
			To:   &to,
			Data: data,
		}, nil)
		if err != nil {
			return nil, err
		}

		storedAt := time.Now()
		c.mu.Lock()
		c.entries[key] = cacheEntry{result: out, storedAt: storedAt}
		c.mu.Unlock()

		// Self-cleanup once the TTL lapses. The timestamp check keeps a
		// stale timer from deleting an entry a newer call has replaced.
		time.AfterFunc(c.ttl, func() {
			c.mu.Lock()
			if entry, ok := c.entries[key]; ok && entry.storedAt.Equal(storedAt) {
				delete(c.entries, key)
			}
			c.mu.Unlock()
		})

		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// Len reports the number of cached entries. Used by tests.
func (c *CallCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
