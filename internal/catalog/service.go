package catalog

import (
	"context"
	"errors"
	"fmt"

	"foodmarket-be/internal/food"
	"foodmarket-be/internal/vendor"
)

// DefaultTopLimit is the number of restaurants returned when no limit is given.
const DefaultTopLimit = 10

// MaxTopLimit bounds the limit, and with it the number of distinct cache keys per pincode.
const MaxTopLimit = 50

type VendorReader interface {
	ListAvailableByPincode(ctx context.Context, pincode string, limit int) ([]vendor.Vendor, error)
	FindByID(ctx context.Context, id string) (*vendor.Vendor, error)
}

// Service answers the read-only shopping queries. Every empty result is
// ErrNotFound.
type Service interface {
	Availability(ctx context.Context, pincode string) ([]vendor.Vendor, error)
	TopRestaurants(ctx context.Context, pincode string, limit int) ([]vendor.Vendor, error)
	FoodsIn30Min(ctx context.Context, pincode string) ([]food.Food, error)
	SearchFoods(ctx context.Context, pincode string) ([]food.Food, error)
	RestaurantByID(ctx context.Context, id string) (*vendor.Vendor, error)
}

type service struct {
	vendors VendorReader
	cache   *Cache
}

// NewService builds the catalog. cache may be nil.
func NewService(vendors VendorReader, cache *Cache) Service {
	return &service{vendors: vendors, cache: cache}
}

func (s *service) Availability(ctx context.Context, pincode string) ([]vendor.Vendor, error) {
	return cached(ctx, s.cache, fmt.Sprintf(keyAvailability, pincode), func() ([]vendor.Vendor, error) {
		return s.vendors.ListAvailableByPincode(ctx, pincode, 0)
	})
}

func (s *service) TopRestaurants(ctx context.Context, pincode string, limit int) ([]vendor.Vendor, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > MaxTopLimit {
		limit = MaxTopLimit
	}
	return cached(ctx, s.cache, fmt.Sprintf(keyTopRestaurants, pincode, limit), func() ([]vendor.Vendor, error) {
		return s.vendors.ListAvailableByPincode(ctx, pincode, limit)
	})
}

func (s *service) FoodsIn30Min(ctx context.Context, pincode string) ([]food.Food, error) {
	return cached(ctx, s.cache, fmt.Sprintf(keyFoodsIn30Min, pincode), func() ([]food.Food, error) {
		foods, err := s.flatten(ctx, pincode)
		if err != nil {
			return nil, err
		}

		quick := make([]food.Food, 0, len(foods))
		for _, f := range foods {
			if f.ReadyTime <= food.QuickReadyMinutes {
				quick = append(quick, f)
			}
		}
		return quick, nil
	})
}

func (s *service) SearchFoods(ctx context.Context, pincode string) ([]food.Food, error) {
	return cached(ctx, s.cache, fmt.Sprintf(keySearch, pincode), func() ([]food.Food, error) {
		return s.flatten(ctx, pincode)
	})
}

func (s *service) RestaurantByID(ctx context.Context, id string) (*vendor.Vendor, error) {
	v, err := s.vendors.FindByID(ctx, id)
	if errors.Is(err, vendor.ErrVendorNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *service) flatten(ctx context.Context, pincode string) ([]food.Food, error) {
	vendors, err := s.vendors.ListAvailableByPincode(ctx, pincode, 0)
	if err != nil {
		return nil, err
	}

	var foods []food.Food
	for _, v := range vendors {
		foods = append(foods, v.Foods...)
	}
	return foods, nil
}
