package food

import (
	"context"
	"database/sql"
	"errors"

	"foodmarket-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const foodColumns = `id, vendor_id, name, description, category, food_type, ready_time, price, rating, images, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, f *Food) error
	FindByID(ctx context.Context, id string) (*Food, error)
	FindByIDs(ctx context.Context, ids []string) ([]Food, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Food, error)
	ListByVendorIDs(ctx context.Context, vendorIDs []string) ([]Food, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(s rowScanner) (Food, error) {
	var f Food
	err := s.Scan(
		&f.ID, &f.VendorID, &f.Name, &f.Description, &f.Category, &f.FoodType,
		&f.ReadyTime, &f.Price, &f.Rating, pq.Array(&f.Images), &f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

func (r *repository) Create(ctx context.Context, f *Food) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "food.Create"),
		zap.String("vendor_id", f.VendorID),
	)

	if f.Images == nil {
		f.Images = []string{}
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO foods (id, vendor_id, name, description, category, food_type, ready_time, price, rating, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`,
		f.ID, f.VendorID, f.Name, f.Description, f.Category, f.FoodType,
		f.ReadyTime, f.Price, f.Rating, pq.Array(f.Images),
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		log.Error("failed to insert food", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Food, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = $1`, id)
	f, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindByIDs returns the foods that exist among ids; unknown ids are skipped.
func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Food, error) {
	if len(ids) == 0 {
		return []Food{}, nil
	}
	return r.list(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = ANY($1)`, pq.Array(ids))
}

func (r *repository) ListByVendor(ctx context.Context, vendorID string) ([]Food, error) {
	return r.list(ctx, `SELECT `+foodColumns+` FROM foods WHERE vendor_id = $1 ORDER BY created_at`, vendorID)
}

func (r *repository) ListByVendorIDs(ctx context.Context, vendorIDs []string) ([]Food, error) {
	if len(vendorIDs) == 0 {
		return []Food{}, nil
	}
	return r.list(ctx, `SELECT `+foodColumns+` FROM foods WHERE vendor_id = ANY($1) ORDER BY created_at`, pq.Array(vendorIDs))
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]Food, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query foods", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	foods := []Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}
