package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BugToken wraps the BugTokenV3 ERC20 contract. Reads go through the shared
// call cache so bursts of identical balance lookups collapse into one RPC call.
type BugToken struct {
	client  Caller
	address common.Address
	abi     abi.ABI
	cache   *CallCache
}

// NewBugToken creates a BugToken instance. Only the functions we call are in
// the ABI.
func NewBugToken(client Caller, address string, cache *CallCache) (*BugToken, error) {
	tokenABI := `[
		{"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
		{"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
	]`

	parsedABI, err := abi.JSON(strings.NewReader(tokenABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse BugToken ABI: %w", err)
	}

	return &BugToken{
		client:  client,
		address: common.HexToAddress(address),
		abi:     parsedABI,
		cache:   cache,
	}, nil
}

func (t *BugToken) Address() common.Address {
	return t.address
}

// BalanceOf returns the raw token balance (18 decimals) for a wallet.
func (t *BugToken) BalanceOf(ctx context.Context, wallet string) (*big.Int, error) {
	if !common.IsHexAddress(wallet) {
		return nil, fmt.Errorf("invalid wallet address: %s", wallet)
	}

	callData, err := t.abi.Pack("balanceOf", common.HexToAddress(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf call data: %w", err)
	}

	result, err := t.cache.Call(ctx, t.client, t.address, callData)
	if err != nil {
		return nil, fmt.Errorf("failed to call balanceOf: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("empty result from balanceOf")
	}

	var balance *big.Int
	if err := t.abi.UnpackIntoInterface(&balance, "balanceOf", result); err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result: %w", err)
	}

	return balance, nil
}

// BalanceDisplay returns the balance formatted in whole BUG (18 decimals).
func (t *BugToken) BalanceDisplay(ctx context.Context, wallet string) (string, error) {
	raw, err := t.BalanceOf(ctx, wallet)
	if err != nil {
		return "0", err
	}
	return FormatUnits(raw, 18), nil
}

// PackTransfer builds transfer calldata for the one-shot funding scripts.
func (t *BugToken) PackTransfer(to string, amount *big.Int) ([]byte, error) {
	if !common.IsHexAddress(to) {
		return nil, fmt.Errorf("invalid recipient address: %s", to)
	}
	return t.abi.Pack("transfer", common.HexToAddress(to), amount)
}

// FormatUnits converts a raw integer amount to a decimal string with the
// given number of decimals.
func FormatUnits(raw *big.Int, decimals int) string {
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).SetInt(raw)
	value.Quo(value, scale)
	return value.Text('f', -1)
}
