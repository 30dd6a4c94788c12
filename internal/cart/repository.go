package cart

import (
	"context"
	"database/sql"
	"errors"

	"foodmarket-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetUnit(ctx context.Context, customerID, foodID string) (int, error)
	SetUnit(ctx context.Context, customerID, foodID string, unit int) error
	Remove(ctx context.Context, customerID, foodID string) error
	ListItems(ctx context.Context, customerID string) ([]Item, error)
	Clear(ctx context.Context, customerID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetUnit returns the current unit of a line, or ErrCartItemNotFound.
func (r *repository) GetUnit(ctx context.Context, customerID, foodID string) (int, error) {
	var unit int
	err := r.db.QueryRowContext(ctx,
		`SELECT unit FROM cart_items WHERE customer_id = $1 AND food_id = $2`,
		customerID, foodID,
	).Scan(&unit)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCartItemNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get cart unit",
			zap.String("layer", "repository"),
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return 0, err
	}
	return unit, nil
}

func (r *repository) SetUnit(ctx context.Context, customerID, foodID string, unit int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (customer_id, food_id, unit)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, food_id) DO UPDATE SET unit = EXCLUDED.unit, updated_at = NOW()
	`, customerID, foodID, unit)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to set cart unit",
			zap.String("layer", "repository"),
			zap.String("customer_id", customerID),
			zap.String("food_id", foodID),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) Remove(ctx context.Context, customerID, foodID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE customer_id = $1 AND food_id = $2`,
		customerID, foodID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ListItems(ctx context.Context, customerID string) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "cart.ListItems"),
		zap.String("customer_id", customerID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.unit,
			f.id, f.vendor_id, f.name, f.description, f.category, f.food_type,
			f.ready_time, f.price, f.rating, f.images, f.created_at, f.updated_at
		FROM cart_items c
		JOIN foods f ON f.id = c.food_id
		WHERE c.customer_id = $1
		ORDER BY c.created_at
	`, customerID)
	if err != nil {
		log.Error("failed to query cart", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var it Item
		f := &it.Food
		if err := rows.Scan(
			&it.Unit,
			&f.ID, &f.VendorID, &f.Name, &f.Description, &f.Category, &f.FoodType,
			&f.ReadyTime, &f.Price, &f.Rating, pq.Array(&f.Images), &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			log.Error("failed to scan cart row", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) Clear(ctx context.Context, customerID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID)
	return err
}
