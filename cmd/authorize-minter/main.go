// One-shot admin script: authorize the voting contract (or any address) as a
// minter on BugNFT. Edit the env vars per run; there is no retry logic.
//
//	BUG_NFT_ADDRESS, MINTER_ADDRESS, RPC_URL, PRIVATE_KEY, CHAIN_ID
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

	nftAddress := os.Getenv("BUG_NFT_ADDRESS")
	minterAddress := os.Getenv("MINTER_ADDRESS")
	privateKeyHex := os.Getenv("PRIVATE_KEY")
	if nftAddress == "" || minterAddress == "" || privateKeyHex == "" {
		log.Fatal("BUG_NFT_ADDRESS, MINTER_ADDRESS and PRIVATE_KEY are required")
	}

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

	nft, err := contracts.NewBugNFT(client, nftAddress, contracts.NewCallCache())
	if err != nil {
		log.Fatalf("Failed to set up BugNFT contract: %v", err)
	}

	ctx := context.Background()

	already, err := nft.IsAuthorizedMinter(ctx, minterAddress)
	if err != nil {
		log.Printf("Warning: could not check current authorization: %v", err)
	} else if already {
		fmt.Printf("%s is already an authorized minter on %s, nothing to do\n", minterAddress, nftAddress)
		return
	}

	callData, err := nft.PackAuthorizeMinter(minterAddress)
	if err != nil {
		log.Fatalf("Failed to pack authorizeMinter call: %v", err)
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		log.Fatalf("Failed to get nonce: %v", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		log.Fatalf("Failed to get gas price: %v", err)
	}

	to := nft.Address()
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

	fmt.Printf("authorizeMinter(%s) sent: %s\n", minterAddress, signedTx.Hash().Hex())
	fmt.Println("Waiting for confirmation...")

	receipt, err := bind.WaitMined(ctx, client, signedTx)
	if err != nil {
		log.Fatalf("Failed waiting for transaction: %v", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		log.Fatalf("Transaction reverted in block %d", receipt.BlockNumber.Uint64())
	}

	fmt.Printf("Confirmed in block %d (gas used %d)\n", receipt.BlockNumber.Uint64(), receipt.GasUsed)
	fmt.Printf("%s can now mint on %s\n", minterAddress, nftAddress)
}
