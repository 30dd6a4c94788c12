package cart

import (
	"context"
	"errors"

	"foodmarket-be/internal/food"
	"foodmarket-be/internal/logger"

	"go.uber.org/zap"
)

type FoodFinder interface {
	FindByID(ctx context.Context, id string) (*food.Food, error)
}

type Service interface {
	AddToCart(ctx context.Context, customerID, foodID string, unit int) ([]Item, error)
	RemoveFromCart(ctx context.Context, customerID, foodID string) ([]Item, error)
	GetCart(ctx context.Context, customerID string) ([]Item, error)
	ClearCart(ctx context.Context, customerID string) error
}

type service struct {
	repo  Repository
	foods FoodFinder
}

func NewService(repo Repository, foods FoodFinder) Service {
	return &service{repo: repo, foods: foods}
}

// AddToCart adds unit to the customer's line for foodID, creating it when
// absent. A zero unit changes nothing. The read and the write are separate
// statements, so two concurrent adds of 1 can leave the line at 1 or 2.
func (s *service) AddToCart(ctx context.Context, customerID, foodID string, unit int) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "cart.AddToCart"),
		zap.String("customer_id", customerID),
		zap.String("food_id", foodID),
	)

	if unit < 0 {
		return nil, ErrInvalidUnit
	}

	if _, err := s.foods.FindByID(ctx, foodID); err != nil {
		if errors.Is(err, food.ErrFoodNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	if unit > 0 {
		current, err := s.repo.GetUnit(ctx, customerID, foodID)
		if err != nil && !errors.Is(err, ErrCartItemNotFound) {
			return nil, err
		}

		if err := s.repo.SetUnit(ctx, customerID, foodID, current+unit); err != nil {
			return nil, err
		}
		log.Info("cart updated", zap.Int("unit", current+unit))
	}

	return s.repo.ListItems(ctx, customerID)
}

func (s *service) RemoveFromCart(ctx context.Context, customerID, foodID string) ([]Item, error) {
	if err := s.repo.Remove(ctx, customerID, foodID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, customerID)
}

func (s *service) GetCart(ctx context.Context, customerID string) ([]Item, error) {
	return s.repo.ListItems(ctx, customerID)
}

func (s *service) ClearCart(ctx context.Context, customerID string) error {
	if err := s.repo.Clear(ctx, customerID); err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
