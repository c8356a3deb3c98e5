package inventory

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"github.com/safwanadnan/bazaar/internal/domain"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

const (
	defaultMaxAttempts = 3
	backoffBase        = 5 * time.Millisecond
	backoffJitter      = 20 * time.Millisecond
)

// CommitResult is the outcome of a successfully committed movement.
type CommitResult struct {
	Movement *entity.StockMovement
	Quantity int64
	Version  int64
}

// CommitMovementUseCase serializes concurrent movements per (product, store)
// pair with optimistic concurrency: read the level and its version, validate
// against it, then append the movement and bump the level in one
// transaction conditioned on the version not having moved. A version
// conflict rolls the whole unit back (the append never survives) and the
// attempt is retried with fresh state, up to maxAttempts.
//
// No lock is held across validation, and independent pairs never contend.
type CommitMovementUseCase struct {
	tx          TxRunner
	levels      repository.LevelRepository
	validator   *Validator
	log         zerolog.Logger
	maxAttempts int
}

// NewCommitMovementUseCase builds the use case. levels is the pool-backed
// repository used for the unlocked read that opens each attempt.
func NewCommitMovementUseCase(
	tx TxRunner,
	levels repository.LevelRepository,
	validator *Validator,
	log zerolog.Logger,
) *CommitMovementUseCase {
	return &CommitMovementUseCase{
		tx:          tx,
		levels:      levels,
		validator:   validator,
		log:         log,
		maxAttempts: defaultMaxAttempts,
	}
}

// Commit validates and commits one movement. Any rejection (validation,
// unknown ids, insufficient stock, reused idempotency key) aborts with the
// ledger and level untouched. domain.ErrConcurrentModification is returned
// only after maxAttempts version conflicts; the ledger is guaranteed
// unchanged in that case too.
func (uc *CommitMovementUseCase) Commit(ctx context.Context, in MovementInput) (*CommitResult, error) {
	var lastErr error
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		result, err := uc.attempt(ctx, in)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
		uc.log.Debug().
			Str("product_id", in.ProductID).
			Str("store_id", in.StoreID).
			Int("attempt", attempt).
			Msg("version conflict, retrying commit")
		if attempt < uc.maxAttempts {
			if err := sleepWithJitter(ctx); err != nil {
				return nil, err
			}
		}
	}
	return nil, lastErr
}

// attempt runs one pass of the commit state machine:
// Proposed -> Validated -> AttemptingCommit -> Committed | conflict.
func (uc *CommitMovementUseCase) attempt(ctx context.Context, in MovementInput) (*CommitResult, error) {
	level, err := uc.levels.Get(ctx, in.ProductID, in.StoreID)
	if err != nil {
		return nil, err
	}
	if err := uc.validator.Validate(ctx, in, level.Quantity); err != nil {
		return nil, err
	}
	delta := entity.SignedQuantity(in.Type, in.Quantity)

	movement := &entity.StockMovement{
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	}
	var committed *entity.StockLevel
	err = uc.tx.Run(ctx, func(
		movements repository.MovementRepository,
		levels repository.LevelRepository,
		keys repository.IdempotencyKeyRepository,
	) error {
		if err := movements.Append(ctx, movement); err != nil {
			return err
		}
		updated, err := levels.ApplyDelta(ctx, in.ProductID, in.StoreID, delta, level.Version)
		if err != nil {
			return err
		}
		committed = updated
		if in.IdempotencyKey != "" {
			if err := keys.Record(ctx, in.ProductID, in.StoreID, in.IdempotencyKey, movement.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CommitResult{
		Movement: movement,
		Quantity: committed.Quantity,
		Version:  committed.Version,
	}, nil
}

// sleepWithJitter waits a small randomized interval before the next attempt
// so colliding writers do not retry in lockstep.
func sleepWithJitter(ctx context.Context) error {
	d := backoffBase + time.Duration(rand.Int64N(int64(backoffJitter)))
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
