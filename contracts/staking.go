package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// BugStaking wraps the BugSubmissionStaking contract. The backend only reads
// stakes; staking itself happens from the user's wallet.
type BugStaking struct {
	client  Caller
	address common.Address
	abi     abi.ABI
	cache   *CallCache
}

func NewBugStaking(client Caller, address string, cache *CallCache) (*BugStaking, error) {
	stakingABI := `[
		{"inputs":[{"internalType":"address","name":"staker","type":"address"},{"internalType":"bytes32","name":"submissionId","type":"bytes32"}],"name":"stakeForSubmission","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
		{"inputs":[],"name":"minimumStake","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
	]`

	parsedABI, err := abi.JSON(strings.NewReader(stakingABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse BugStaking ABI: %w", err)
	}

	return &BugStaking{
		client:  client,
		address: common.HexToAddress(address),
		abi:     parsedABI,
		cache:   cache,
	}, nil
}

// StakeForSubmission returns the amount a staker has locked for a submission.
func (s *BugStaking) StakeForSubmission(ctx context.Context, staker string, submissionID [32]byte) (*big.Int, error) {
	if !common.IsHexAddress(staker) {
		return nil, fmt.Errorf("invalid staker address: %s", staker)
	}

	callData, err := s.abi.Pack("stakeForSubmission", common.HexToAddress(staker), submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to pack stakeForSubmission call data: %w", err)
	}

	result, err := s.cache.Call(ctx, s.client, s.address, callData)
	if err != nil {
		return nil, fmt.Errorf("failed to call stakeForSubmission: %w", err)
	}

	var stake *big.Int
	if err := s.abi.UnpackIntoInterface(&stake, "stakeForSubmission", result); err != nil {
		return nil, fmt.Errorf("failed to unpack stakeForSubmission result: %w", err)
	}

	return stake, nil
}

// MinimumStake returns the contract's required stake per submission.
func (s *BugStaking) MinimumStake(ctx context.Context) (*big.Int, error) {
	callData, err := s.abi.Pack("minimumStake")
	if err != nil {
		return nil, fmt.Errorf("failed to pack minimumStake call data: %w", err)
	}

	result, err := s.cache.Call(ctx, s.client, s.address, callData)
	if err != nil {
		return nil, fmt.Errorf("failed to call minimumStake: %w", err)
	}

	var minimum *big.Int
	if err := s.abi.UnpackIntoInterface(&minimum, "minimumStake", result); err != nil {
		return nil, fmt.Errorf("failed to unpack minimumStake result: %w", err)
	}

	return minimum, nil
}
