package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	"github.com/bizpilot/bizpilot_backend/internal/models"
	"github.com/bizpilot/bizpilot_backend/internal/utils/mapping"
	"github.com/bizpilot/bizpilot_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product and stock
// movement data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryWithTx {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryWithTx
var _ portsrepo.ProductRepositoryWithTx = (*PgxProductRepository)(nil)

// FindProductByIDForUpdate retrieves a product and locks its row for the
// remainder of the transaction. Stock adjustments take this lock before
// checking the resulting stock level.
func (r *PgxProductRepository) FindProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, business_id, name, is_active, current_stock, cost_price,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM products
		WHERE product_id = $1
		FOR UPDATE;
	`
	var m models.Product
	err := tx.QueryRow(ctx, query, productID).Scan(
		&m.ProductID,
		&m.BusinessID,
		&m.Name,
		&m.IsActive,
		&m.CurrentStock,
		&m.CostPrice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s for update: %w", productID, mapPgError(err))
	}

	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// AdjustProductStockInTx applies a signed quantity delta to current_stock as a
// relative increment within the transaction.
func (r *PgxProductRepository) AdjustProductStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET current_stock = COALESCE(current_stock, 0) + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE product_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, productID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %s: %w", productID, mapPgError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}

	return nil
}

// InsertStockMovementInTx appends a movement record within the transaction.
func (r *PgxProductRepository) InsertStockMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	m := mapping.ToModelStockMovement(movement)
	query := `
		INSERT INTO stock_movements (
			stock_movement_id, product_id, movement_type, reference_type, reference_id,
			quantity, cost_price, balance_before, balance_after, movement_date, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		m.StockMovementID,
		m.ProductID,
		m.MovementType,
		m.ReferenceType,
		m.ReferenceID,
		m.Quantity,
		m.CostPrice,
		m.BalanceBefore,
		m.BalanceAfter,
		m.MovementDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", m.StockMovementID, mapPgError(err))
	}

	return nil
}

// SumStockValuation returns sum(current_stock * cost_price) over active
// products of a business.
func (r *PgxProductRepository) SumStockValuation(ctx context.Context, businessID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(current_stock * cost_price), 0)
		FROM products
		WHERE business_id = $1 AND is_active = TRUE;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, businessID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum stock valuation for business %s: %w", businessID, err)
	}

	return total, nil
}

// ListMovementsByProduct retrieves a paginated list of stock movements for a
// product using token-based pagination. It returns the movements, a token for
// the next page, and an error.
func (r *PgxProductRepository) ListMovementsByProduct(ctx context.Context, productID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT stock_movement_id, product_id, movement_type, reference_type, reference_id,
		       quantity, cost_price, balance_before, balance_after, movement_date, notes,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM stock_movements
		WHERE product_id = $1
	`
	// Ordering is crucial and must be stable
	orderByClause := `ORDER BY movement_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{productID}

	if nextToken != nil && *nextToken != "" {
		lastMovementDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("invalid nextToken: %w", apperrors.ErrValidation)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (movement_date, created_at) < ($2, $3)`
		args = append(args, lastMovementDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query stock movements for product %s: %w", productID, err)
	}
	defer rows.Close()

	movements := make([]models.StockMovement, 0, fetchLimit)
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(
			&m.StockMovementID,
			&m.ProductID,
			&m.MovementType,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.Quantity,
			&m.CostPrice,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.MovementDate,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan stock movement row for product %s: %w", productID, err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating stock movement rows for product %s: %w", productID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := movements
	if len(movements) > limit {
		// The token points to the last item included in this response page.
		lastMovement := movements[limit-1]
		newToken := pagination.EncodeToken(lastMovement.MovementDate, lastMovement.CreatedAt)
		nextTokenVal = &newToken
		results = movements[:limit]
	}

	return mapping.ToDomainStockMovementSlice(results), nextTokenVal, nil
}
