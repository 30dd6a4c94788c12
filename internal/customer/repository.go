package customer

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"foodmarket-be/internal/db"
	"foodmarket-be/internal/logger"

	"go.uber.org/zap"
)

const customerColumns = `id, email, phone, password, salt, first_name, last_name, address, verified, otp, otp_expiry, lat, lng, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	MarkVerified(ctx context.Context, id string) (*Customer, error)
	UpdateOTP(ctx context.Context, id string, otp int, expiry time.Time) error
	UpdateProfile(ctx context.Context, id string, p EditProfileParams) (*Customer, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "customer.Create"),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (id, email, phone, password, salt, first_name, last_name, address, verified, otp, otp_expiry, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`,
		c.ID, c.Email, c.Phone, c.Password, c.Salt, c.FirstName, c.LastName, c.Address,
		c.Verified, c.OTP, c.OTPExpiry, c.Lat, c.Lng,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Info("customer email or phone already registered")
			return ErrAccountExists
		}
		log.Error("failed to insert customer", zap.Error(err))
		return err
	}

	log.Info("customer created", zap.String("customer_id", c.ID))
	return nil
}

func (r *repository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1 OR phone = $2)`,
		email, phone,
	).Scan(&exists)
	return exists, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = $1`, email)
}

// MarkVerified flips verified on and clears the stored OTP so it cannot be
// replayed.
func (r *repository) MarkVerified(ctx context.Context, id string) (*Customer, error) {
	return r.findOne(ctx, `
		UPDATE customers
		SET verified = true, otp = 0, otp_expiry = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING `+customerColumns,
		id,
	)
}

func (r *repository) UpdateOTP(ctx context.Context, id string, otp int, expiry time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET otp = $2, otp_expiry = $3, updated_at = NOW() WHERE id = $1`,
		id, otp, expiry,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to store otp", zap.String("customer_id", id), zap.Error(err))
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *repository) UpdateProfile(ctx context.Context, id string, p EditProfileParams) (*Customer, error) {
	return r.findOne(ctx, `
		UPDATE customers
		SET first_name = $2, last_name = $3, address = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+customerColumns,
		id, p.FirstName, p.LastName, p.Address,
	)
}

func (r *repository) findOne(ctx context.Context, query string, args ...any) (*Customer, error) {
	var c Customer
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Email, &c.Phone, &c.Password, &c.Salt, &c.FirstName, &c.LastName, &c.Address,
		&c.Verified, &c.OTP, &c.OTPExpiry, &c.Lat, &c.Lng, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load customer", zap.String("layer", "repository"), zap.Error(err))
		return nil, err
	}
	return &c, nil
}
