package order

import (
	"context"
	"errors"
	"time"

	"foodmarket-be/internal/events"
	"foodmarket-be/internal/food"
	"foodmarket-be/internal/logger"
	"foodmarket-be/internal/utils"
	"foodmarket-be/internal/vendor"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	tracerName = "foodmarket-be/internal/order"

	// maxIDAttempts bounds retries when a random order id is already taken.
	maxIDAttempts = 3
)

type VendorFinder interface {
	FindByID(ctx context.Context, id string) (*vendor.Vendor, error)
}

type FoodFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]food.Food, error)
}

type Service interface {
	CreateOrder(ctx context.Context, customerID string, p CreateOrderParams) (*Order, error)
	ListCustomerOrders(ctx context.Context, customerID string) ([]Order, error)
	GetCustomerOrder(ctx context.Context, customerID, orderID string) (*Order, error)
	ListVendorOrders(ctx context.Context, vendorID string) ([]Order, error)
	GetVendorOrder(ctx context.Context, vendorID, orderID string) (*Order, error)
	ProcessOrder(ctx context.Context, vendorID, orderID string, p ProcessOrderParams) (*Order, error)
}

type service struct {
	repo      Repository
	vendors   VendorFinder
	foods     FoodFinder
	publisher events.Publisher
	producer  string
	newID     func() string
	now       func() time.Time
}

// NewService wires order handling. producer names this process in
// published event envelopes.
func NewService(repo Repository, vendors VendorFinder, foods FoodFinder, publisher events.Publisher, producer string) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		repo:      repo,
		vendors:   vendors,
		foods:     foods,
		publisher: publisher,
		producer:  producer,
		newID:     utils.GenerateOrderID,
		now:       time.Now,
	}
}

// CreateOrder turns submitted cart lines into a Waiting COD order for the
// vendor. Lines whose food does not exist are dropped; the unit price of
// each remaining line is copied into the order. The customer's cart is
// emptied in the same transaction.
func (s *service) CreateOrder(ctx context.Context, customerID string, p CreateOrderParams) (*Order, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "order.CreateOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.String("vendor.id", p.VendorID),
	)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "order.CreateOrder"),
		zap.String("customer_id", customerID),
		zap.String("vendor_id", p.VendorID),
	)

	if err := utils.ValidateStruct(p); err != nil {
		return nil, err
	}

	if _, err := s.vendors.FindByID(ctx, p.VendorID); err != nil {
		log.Info("order for unknown vendor", zap.Error(err))
		return nil, err
	}

	ids := make([]string, 0, len(p.Items))
	for _, line := range p.Items {
		ids = append(ids, line.FoodID)
	}

	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		log.Error("failed to load foods", zap.Error(err))
		return nil, err
	}
	byID := make(map[string]food.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	var (
		items     []Item
		total     = decimal.Zero
		readyTime int
	)
	for _, line := range p.Items {
		f, ok := byID[line.FoodID]
		if !ok || line.Unit == 0 {
			continue
		}

		price := decimal.NewFromFloat(f.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Unit))))
		items = append(items, Item{Food: f, Unit: line.Unit, Price: f.Price})
		readyTime = max(readyTime, f.ReadyTime)
	}
	if len(items) == 0 {
		return nil, ErrNoOrderableItems
	}

	amount, _ := total.Round(2).Float64()
	o := &Order{
		CustomerID:      customerID,
		VendorID:        p.VendorID,
		Items:           items,
		TotalAmount:     amount,
		OrderDate:       s.now().UTC(),
		PaidThrough:     PaidThroughCOD,
		PaymentResponse: "",
		OrderStatus:     StatusWaiting,
		ReadyTime:       readyTime,
	}

	for attempt := 1; ; attempt++ {
		o.ID = s.newID()
		err = s.repo.CreateOrderTx(ctx, o)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrOrderIDTaken) || attempt == maxIDAttempts {
			span.RecordError(err)
			span.SetStatus(codes.Error, "create order failed")
			return nil, err
		}
		log.Warn("retrying with a fresh order id", zap.Int("attempt", attempt))
	}

	span.SetAttributes(attribute.String("order.id", o.ID))
	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Float64("total_amount", o.TotalAmount),
	)

	lines := make([]events.OrderLine, len(o.Items))
	for i, it := range o.Items {
		lines[i] = events.OrderLine{FoodID: it.Food.ID, Unit: it.Unit, Price: it.Price}
	}
	s.publish(ctx, events.EventOrderCreated, o.ID, events.OrderCreatedPayload{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		VendorID:    o.VendorID,
		Items:       lines,
		TotalAmount: o.TotalAmount,
		PaidThrough: o.PaidThrough,
	})

	return o, nil
}

func (s *service) ListCustomerOrders(ctx context.Context, customerID string) ([]Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) GetCustomerOrder(ctx context.Context, customerID, orderID string) (*Order, error) {
	return s.repo.FindForCustomer(ctx, customerID, orderID)
}

func (s *service) ListVendorOrders(ctx context.Context, vendorID string) ([]Order, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *service) GetVendorOrder(ctx context.Context, vendorID, orderID string) (*Order, error) {
	return s.repo.FindForVendor(ctx, vendorID, orderID)
}

// ProcessOrder moves a vendor's order to a new status. The optional time
// overrides the ready time.
func (s *service) ProcessOrder(ctx context.Context, vendorID, orderID string, p ProcessOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "order.ProcessOrder"),
		zap.String("vendor_id", vendorID),
		zap.String("order_id", orderID),
	)

	if err := utils.ValidateStruct(p); err != nil {
		return nil, err
	}

	next := Status(p.Status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.FindForVendor(ctx, vendorID, orderID)
	if err != nil {
		return nil, err
	}

	from := o.OrderStatus
	if !CanTransition(from, next) {
		log.Info("rejected status change", zap.String("from", string(from)), zap.String("to", string(next)))
		return nil, ErrInvalidTransition
	}

	o.OrderStatus = next
	o.Remarks = p.Remarks
	if p.Time != nil {
		o.ReadyTime = *p.Time
	}

	if err := s.repo.UpdateStatus(ctx, o, from); err != nil {
		return nil, err
	}

	log.Info("order status changed", zap.String("from", string(from)), zap.String("to", string(next)))
	s.publish(ctx, events.EventOrderStatusChanged, o.ID, events.OrderStatusChangedPayload{
		OrderID:   o.ID,
		VendorID:  o.VendorID,
		From:      string(from),
		To:        string(next),
		Remarks:   o.Remarks,
		ReadyTime: o.ReadyTime,
	})

	return o, nil
}

// publish never fails the caller; broker errors are only logged.
func (s *service) publish(ctx context.Context, eventType, orderID string, payload any) {
	log := logger.FromCtx(ctx).With(
		zap.String("event_type", eventType),
		zap.String("order_id", orderID),
	)

	env, err := events.NewEnvelope(s.producer, eventType, orderID, payload)
	if err != nil {
		log.Error("failed to build event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, orderID, env); err != nil {
		log.Error("failed to publish event", zap.Error(err))
		return
	}
	trace.SpanFromContext(ctx).AddEvent("event published", trace.WithAttributes(
		attribute.String("event.type", eventType),
		attribute.String("event.id", env.EventID),
	))
}
