// One-shot admin script: transfer BUG tokens from the deployer wallet to the
// voting contract so it can pay out voter rewards.
//
//	BUG_TOKEN_ADDRESS, VOTING_CONTRACT_ADDRESS, REWARD_AMOUNT (whole BUG),
//	RPC_URL, PRIVATE_KEY, CHAIN_ID
package main

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"

	"bugdex-backend/contracts"
)

func main() {
	_ = godotenv.Load()

	rpcURL := os.Getenv("RPC_URL")
	if rpcURL == "" {
		rpcURL = "https://base-sepolia-rpc.publicnode.com"
	}

	tokenAddress := os.Getenv("BUG_TOKEN_ADDRESS")
	votingAddress := os.Getenv("VOTING_CONTRACT_ADDRESS")
	privateKeyHex := os.Getenv("PRIVATE_KEY")
	amountStr := os.Getenv("REWARD_AMOUNT")
	if tokenAddress == "" || votingAddress == "" || privateKeyHex == "" || amountStr == "" {
		log.Fatal("BUG_TOKEN_ADDRESS, VOTING_CONTRACT_ADDRESS, PRIVATE_KEY and REWARD_AMOUNT are required")
	}

	wholeTokens, ok := new(big.Int).SetString(amountStr, 10)
	if !ok {
		log.Fatalf("Invalid REWARD_AMOUNT: %s", amountStr)
	}
	// BUG has 18 decimals.
	amount := new(big.Int).Mul(wholeTokens, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

	chainID := int64(84532) // Base Sepolia
	if v := os.Getenv("CHAIN_ID"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("Invalid CHAIN_ID: %v", err)
		}
		chainID = parsed
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		log.Fatalf("Failed to connect to Ethereum node: %v", err)
	}
	defer client.Close()

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		log.Fatalf("Failed to parse private key: %v", err)
	}
	from := crypto.PubkeyToAddress(privateKey.PublicKey)

	token, err := contracts.NewBugToken(client, tokenAddress, contracts.NewCallCache())
	if err != nil {
		log.Fatalf("Failed to set up BugToken contract: %v", err)
	}

	ctx := context.Background()

	if balance, err := token.BalanceDisplay(ctx, from.Hex()); err == nil {
		fmt.Printf("Deployer balance before: %s BUG\n", balance)
	}
	if balance, err := token.BalanceDisplay(ctx, votingAddress); err == nil {
		fmt.Printf("Voting contract balance before: %s BUG\n", balance)
	}

	callData, err := token.PackTransfer(votingAddress, amount)
	if err != nil {
		log.Fatalf("Failed to pack transfer call: %v", err)
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		log.Fatalf("Failed to get nonce: %v", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		log.Fatalf("Failed to get gas price: %v", err)
	}

	to := token.Address()
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: callData})
	if err != nil {
		log.Fatalf("Failed to estimate gas: %v", err)
	}

	tx := types.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, callData)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(chainID)), privateKey)
	if err != nil {
		log.Fatalf("Failed to sign transaction: %v", err)
	}

	if err := client.SendTransaction(ctx, signedTx); err != nil {
		log.Fatalf("Failed to send transaction: %v", err)
	}

	fmt.Printf("transfer(%s, %s BUG) sent: %s\n", votingAddress, amountStr, signedTx.Hash().Hex())
	fmt.Println("Waiting for confirmation...")

	receipt, err := bind.WaitMined(ctx, client, signedTx)
	if err != nil {
		log.Fatalf("Failed waiting for transaction: %v", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		log.Fatalf("Transaction reverted in block %d", receipt.BlockNumber.Uint64())
	}

	fmt.Printf("Confirmed in block %d (gas used %d)\n", receipt.BlockNumber.Uint64(), receipt.GasUsed)

	if balance, err := token.BalanceDisplay(ctx, votingAddress); err == nil {
		fmt.Printf("Voting contract balance after: %s BUG\n", balance)
	}
}
