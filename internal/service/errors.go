// Package service provides business logic implementations.
package service

import (
	"errors"

	"monad-wordle/internal/repository"
)

// Validation errors never mutate state; the client can correct the
// guess and resubmit.
var (
	ErrInvalidGuessLength = errors.New("guess must be exactly 5 letters")
	ErrUnknownWord        = errors.New("not a valid word")
)

// State-conflict errors signal a client logic or replay error and are
// surfaced verbatim.
var (
	ErrGameNotFound        = repository.ErrGameNotFound
	ErrGameAlreadyFinished = errors.New("game is already finished")
	ErrDuplicatePayment    = repository.ErrDuplicatePayment
)

// ErrNoWordsAvailable is an operational misconfiguration: the
// dictionary has not been seeded.
var ErrNoWordsAvailable = repository.ErrEmptyDictionary

// ErrPaymentRejected wraps a payment-verifier failure so transport can
// distinguish it from internal faults. Use errors.Is to check and
// errors.Unwrap for the underlying chain error.
var ErrPaymentRejected = errors.New("payment verification failed")
