package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implements the append-only ledger over PostgreSQL (pool or
// tx). Ids come from a bigserial so allocation is monotonic and safe under
// concurrent writers; there is no UPDATE or DELETE path.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the adapter. Pass a pool or tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserts the movement and fills its id and commit timestamp from
// the database, so ordering is decided where the rows are.
func (r *MovementRepo) Append(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (product_id, store_id, type, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, committed_at`
	err := r.q.QueryRow(ctx, query,
		movement.ProductID, movement.StoreID, movement.Type, movement.Quantity, movement.Notes,
	).Scan(&movement.ID, &movement.CommittedAt)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	movement.CommittedAt = movement.CommittedAt.UTC()
	return nil
}

// GetByID returns a movement or nil when absent.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, store_id, type, quantity, notes, committed_at
		FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.StoreID, &m.Type, &m.Quantity, &m.Notes, &m.CommittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.CommittedAt = m.CommittedAt.UTC()
	return &m, nil
}

// List returns movements matching the filter in commit order ascending.
// Paging by limit/offset over the ascending id makes the listing
// restartable: re-requesting the same filter sees the same prefix, possibly
// extended by newer appends.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, store_id, type, quantity, notes, committed_at
		FROM stock_movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.StoreID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, filter.StoreID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND committed_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND committed_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.StoreID, &m.Type, &m.Quantity, &m.Notes, &m.CommittedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.CommittedAt = m.CommittedAt.UTC()
		list = append(list, &m)
	}
	return list, rows.Err()
}
