// Package service implements the engine's business logic: vote tallying,
// solution marking, bookmarking, and the notification bus. Services validate
// input, resolve identities, own retry policy, and emit push events; the
// store owns per-entity atomicity.
package service

import (
	"context"
	"log/slog"
	"time"

	domainerrors "github.com/parleyapp/parley-server/internal/errors"
	"github.com/parleyapp/parley-server/internal/store"
)

const (
	maxWriteAttempts = 3
	retryBaseDelay   = 25 * time.Millisecond
)

// withWriteRetry runs fn, retrying on SQLite lock contention with backoff.
// After maxWriteAttempts the contention surfaces as a CONFLICT so clients
// can retry; every attempt either fully committed or fully rolled back, so
// retrying is safe.
func withWriteRetry(ctx context.Context, logger *slog.Logger, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err = fn()
		if err == nil || !domainerrors.Is(err, store.ErrBusy) {
			return err
		}

		logger.Debug("storage busy, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt))

		select {
		case <-time.After(retryBaseDelay * time.Duration(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return domainerrors.Conflictf("storage contention on %s, please retry", op).WithCause(err)
}

// mapStoreErr converts store sentinels to domain errors, with a caller
// supplied message for the not-found case.
func mapStoreErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case domainerrors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(notFoundMsg)
	case domainerrors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation("invalid input").WithCause(err)
	case domainerrors.Is(err, store.ErrBusy):
		return domainerrors.Conflict("storage busy").WithCause(err)
	default:
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "storage failure")
	}
}
