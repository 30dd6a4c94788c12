package order

import (
	"context"
	"database/sql"
	"errors"

	"foodmarket-be/internal/db"
	"foodmarket-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const orderColumns = `id, customer_id, vendor_id, total_amount, order_date, paid_through, payment_response, order_status, remarks, ready_time, created_at, updated_at`

// Repository persists orders. Every order it returns carries its items
// hydrated with the ordered food.
type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	FindForCustomer(ctx context.Context, customerID, orderID string) (*Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Order, error)
	FindForVendor(ctx context.Context, vendorID, orderID string) (*Order, error)
	UpdateStatus(ctx context.Context, o *Order, from Status) error
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

func scanOrder(s rowScanner) (Order, error) {
	var o Order
	err := s.Scan(
		&o.ID, &o.CustomerID, &o.VendorID, &o.TotalAmount, &o.OrderDate, &o.PaidThrough,
		&o.PaymentResponse, &o.OrderStatus, &o.Remarks, &o.ReadyTime, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

// CreateOrderTx inserts the order and its items and empties the customer's
// cart in a single transaction. A clash on the order id returns
// ErrOrderIDTaken.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "order.CreateOrderTx"),
		zap.String("order_id", o.ID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, customer_id, vendor_id, total_amount, order_date, paid_through, payment_response, order_status, remarks, ready_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`,
		o.ID, o.CustomerID, o.VendorID, o.TotalAmount, o.OrderDate, o.PaidThrough,
		o.PaymentResponse, o.OrderStatus, o.Remarks, o.ReadyTime,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("order id collision")
			err = ErrOrderIDTaken
			return err
		}
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, food_id, unit, price)
			VALUES ($1, $2, $3, $4)
		`, o.ID, item.Food.ID, item.Unit, item.Price)
		if err != nil {
			log.Error("failed to insert order item", zap.String("food_id", item.Food.ID), zap.Error(err))
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, o.CustomerID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return err
	}

	log.Info("order persisted", zap.Int("items", len(o.Items)))
	return nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY order_date DESC`, customerID)
}

func (r *repository) FindForCustomer(ctx context.Context, customerID, orderID string) (*Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 AND customer_id = $2`, orderID, customerID)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID string) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE vendor_id = $1 ORDER BY order_date DESC`, vendorID)
}

func (r *repository) FindForVendor(ctx context.Context, vendorID, orderID string) (*Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 AND vendor_id = $2`, orderID, vendorID)
}

// UpdateStatus writes status, remarks and ready time, provided the stored
// status still equals from. Otherwise it returns ErrInvalidTransition.
func (r *repository) UpdateStatus(ctx context.Context, o *Order, from Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "order.UpdateStatus"),
		zap.String("order_id", o.ID),
	)

	err := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET order_status = $3, remarks = $4, ready_time = $5, updated_at = NOW()
		WHERE id = $1 AND vendor_id = $2 AND order_status = $6
		RETURNING updated_at
	`, o.ID, o.VendorID, o.OrderStatus, o.Remarks, o.ReadyTime, from).Scan(&o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("order status changed concurrently", zap.String("from", string(from)))
		return ErrInvalidTransition
	}
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) findOne(ctx context.Context, query string, args ...any) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load order", zap.String("layer", "repository"), zap.Error(err))
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = itemsOrEmpty(items[o.ID])
	return &o, nil
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query orders", zap.String("layer", "repository"), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsOrEmpty(items[orders[i].ID])
	}
	return orders, nil
}

func (r *repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.unit, oi.price,
			f.id, f.vendor_id, f.name, f.description, f.category, f.food_type,
			f.ready_time, f.price, f.rating, f.images, f.created_at, f.updated_at
		FROM order_items oi
		JOIN foods f ON f.id = oi.food_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(orderIDs))
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query order items", zap.String("layer", "repository"), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[string][]Item, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			it      Item
		)
		f := &it.Food
		if err := rows.Scan(
			&orderID, &it.Unit, &it.Price,
			&f.ID, &f.VendorID, &f.Name, &f.Description, &f.Category, &f.FoodType,
			&f.ReadyTime, &f.Price, &f.Rating, pq.Array(&f.Images), &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		byOrder[orderID] = append(byOrder[orderID], it)
	}
	return byOrder, rows.Err()
}

func itemsOrEmpty(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}
