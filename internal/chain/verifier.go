package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Verification errors. All of them mean the submitted proof does not
// establish a valid game-fee payment; none of them are retried here.
var (
	ErrTxNotFound     = errors.New("transaction not found or not yet mined")
	ErrTxFailed       = errors.New("transaction reverted on chain")
	ErrWrongRecipient = errors.New("transaction was not sent to the game contract")
	ErrWrongSender    = errors.New("transaction was not sent by the player")
)

// Verifier checks that a transaction hash proves a game-fee payment
// from the given player to the configured game contract. It only reads
// chain state; uniqueness of consumption is enforced by the store.
type Verifier struct {
	client       *Client
	gameContract string
	required     bool
}

// NewVerifier creates a Verifier bound to the game contract address.
// When required is false, Verify becomes a no-op so the backend can
// run without an RPC endpoint (replay protection still applies).
func NewVerifier(client *Client, gameContract string, required bool) *Verifier {
	return &Verifier{
		client:       client,
		gameContract: gameContract,
		required:     required,
	}
}

// Verify confirms the payment transaction: it must exist, have
// succeeded, originate from the player's address, and target the game
// contract. Address comparison is case-insensitive since EVM addresses
// are checksummed hex.
func (v *Verifier) Verify(ctx context.Context, address, txHash string) error {
	if !v.required {
		return nil
	}

	receipt, err := v.client.GetTransactionReceipt(ctx, txHash)
	if err != nil {
		return fmt.Errorf("failed to fetch receipt: %w", err)
	}
	if receipt == nil {
		return ErrTxNotFound
	}
	if !receipt.Succeeded() {
		return ErrTxFailed
	}
	if !strings.EqualFold(receipt.From, address) {
		return ErrWrongSender
	}

	// Some nodes omit the receipt's to field; fall back to the
	// transaction record before ruling on the recipient.
	to := receipt.To
	if to == "" {
		tx, err := v.client.GetTransactionByHash(ctx, txHash)
		if err != nil {
			return fmt.Errorf("failed to fetch transaction: %w", err)
		}
		if tx == nil {
			return ErrTxNotFound
		}
		to = tx.To
	}
	if v.gameContract != "" && !strings.EqualFold(to, v.gameContract) {
		return ErrWrongRecipient
	}

	log.Debug().
		Str("tx_hash", txHash).
		Str("address", address).
		Str("block", receipt.BlockNumber).
		Msg("Payment transaction verified")

	return nil
}
