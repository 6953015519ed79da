package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BugNFT wraps the BugNFT ERC721 contract.
type BugNFT struct {
	client  Caller
	address common.Address
	abi     abi.ABI
	cache   *CallCache
}

func NewBugNFT(client Caller, address string, cache *CallCache) (*BugNFT, error) {
	nftABI := `[
		{"inputs":[{"internalType":"address","name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
		{"inputs":[],"name":"totalSupply","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
		{"inputs":[{"internalType":"address","name":"minter","type":"address"}],"name":"authorizeMinter","outputs":[],"stateMutability":"nonpayable","type":"function"},
		{"inputs":[{"internalType":"address","name":"minter","type":"address"}],"name":"authorizedMinters","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"}
	]`

	parsedABI, err := abi.JSON(strings.NewReader(nftABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse BugNFT ABI: %w", err)
	}

	return &BugNFT{
		client:  client,
		address: common.HexToAddress(address),
		abi:     parsedABI,
		cache:   cache,
	}, nil
}

func (n *BugNFT) Address() common.Address {
	return n.address
}

// BalanceOf returns the number of BugNFTs a wallet owns.
func (n *BugNFT) BalanceOf(ctx context.Context, wallet string) (*big.Int, error) {
	if !common.IsHexAddress(wallet) {
		return nil, fmt.Errorf("invalid wallet address: %s", wallet)
	}

	callData, err := n.abi.Pack("balanceOf", common.HexToAddress(wallet))
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf call data: %w", err)
	}

	result, err := n.cache.Call(ctx, n.client, n.address, callData)
	if err != nil {
		return nil, fmt.Errorf("failed to call balanceOf: %w", err)
	}

	var count *big.Int
	if err := n.abi.UnpackIntoInterface(&count, "balanceOf", result); err != nil {
		return nil, fmt.Errorf("failed to unpack balanceOf result: %w", err)
	}

	return count, nil
}

// TotalSupply returns the number of minted BugNFTs.
func (n *BugNFT) TotalSupply(ctx context.Context) (*big.Int, error) {
	callData, err := n.abi.Pack("totalSupply")
	if err != nil {
		return nil, fmt.Errorf("failed to pack totalSupply call data: %w", err)
	}

	result, err := n.cache.Call(ctx, n.client, n.address, callData)
	if err != nil {
		return nil, fmt.Errorf("failed to call totalSupply: %w", err)
	}

	var supply *big.Int
	if err := n.abi.UnpackIntoInterface(&supply, "totalSupply", result); err != nil {
		return nil, fmt.Errorf("failed to unpack totalSupply result: %w", err)
	}

	return supply, nil
}

// IsAuthorizedMinter checks whether an address may mint.
func (n *BugNFT) IsAuthorizedMinter(ctx context.Context, minter string) (bool, error) {
	if !common.IsHexAddress(minter) {
		return false, fmt.Errorf("invalid minter address: %s", minter)
	}

	callData, err := n.abi.Pack("authorizedMinters", common.HexToAddress(minter))
	if err != nil {
		return false, fmt.Errorf("failed to pack authorizedMinters call data: %w", err)
	}

	result, err := n.cache.Call(ctx, n.client, n.address, callData)
	if err != nil {
		return false, fmt.Errorf("failed to call authorizedMinters: %w", err)
	}

	var authorized bool
	if err := n.abi.UnpackIntoInterface(&authorized, "authorizedMinters", result); err != nil {
		return false, fmt.Errorf("failed to unpack authorizedMinters result: %w", err)
	}

	return authorized, nil
}

// PackAuthorizeMinter builds authorizeMinter calldata for the admin script.
func (n *BugNFT) PackAuthorizeMinter(minter string) ([]byte, error) {
	if !common.IsHexAddress(minter) {
		return nil, fmt.Errorf("invalid minter address: %s", minter)
	}
	return n.abi.Pack("authorizeMinter", common.HexToAddress(minter))
}
