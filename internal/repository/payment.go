package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PaymentRepository records consumed transaction hashes. The primary
// key on tx_hash makes consumption a check-then-insert that the
// database serializes: of any concurrent attempts with the same hash,
// exactly one insert succeeds.
type PaymentRepository struct {
	db Querier
}

// NewPaymentRepository creates a new PaymentRepository instance.
func NewPaymentRepository(db Querier) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *PaymentRepository) WithTx(tx pgx.Tx) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

// Consume marks a transaction hash as spent. Returns
// ErrDuplicatePayment if the hash was already consumed.
func (r *PaymentRepository) Consume(ctx context.Context, txHash, address string) error {
	const query = `
		INSERT INTO payments (tx_hash, address, consumed_at)
		VALUES ($1, $2, NOW())
	`

	if _, err := r.db.Exec(ctx, query, txHash, address); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePayment
		}
		return fmt.Errorf("failed to consume payment: %w", err)
	}

	return nil
}

// Exists reports whether a transaction hash has been consumed.
func (r *PaymentRepository) Exists(ctx context.Context, txHash string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM payments WHERE tx_hash = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, txHash).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payment existence: %w", err)
	}

	return exists, nil
}
