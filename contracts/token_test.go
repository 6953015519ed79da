package contracts

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUnits(t *testing.T) {
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	assert.Equal(t, "1", FormatUnits(one, 18))
	assert.Equal(t, "0.5", FormatUnits(new(big.Int).Div(one, big.NewInt(2)), 18))
	assert.Equal(t, "0", FormatUnits(big.NewInt(0), 18))
	assert.Equal(t, "2.5", FormatUnits(big.NewInt(2500000), 6))
}

func TestBugTokenBalanceOf(t *testing.T) {
	// 32-byte big-endian value of 42, as an eth_call would return it.
	result := make([]byte, 32)
	result[31] = 42

	caller := &countingCaller{result: result}
	token, err := NewBugToken(caller, "0x1111111111111111111111111111111111111111", NewCallCacheWithTTL(time.Second))
	require.NoError(t, err)

	balance, err := token.BalanceOf(context.Background(), "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.Int64())

	// Same read again inside the TTL window hits the cache.
	_, err = token.BalanceOf(context.Background(), "0x2222222222222222222222222222222222222222")
	require.NoError(t, err)
	assert.Equal(t, int64(1), caller.calls)
}

func TestBugTokenRejectsBadAddress(t *testing.T) {
	token, err := NewBugToken(&countingCaller{}, "0x1111111111111111111111111111111111111111", NewCallCache())
	require.NoError(t, err)

	_, err = token.BalanceOf(context.Background(), "not-an-address")
	assert.Error(t, err)

	_, err = token.PackTransfer("also-not-an-address", big.NewInt(1))
	assert.Error(t, err)
}
