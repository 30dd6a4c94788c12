package httpapi

import (
	"context"
	"net/http"

	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/customer"
	"foodmarket-be/internal/food"
	"foodmarket-be/internal/order"
	"foodmarket-be/internal/vendor"

	"github.com/stretchr/testify/mock"
)

type MockVendorService struct{ mock.Mock }

func (m *MockVendorService) vendorResult(args mock.Arguments) (*vendor.Vendor, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

func (m *MockVendorService) Create(ctx context.Context, p vendor.CreateVendorParams) (*vendor.Vendor, error) {
	return m.vendorResult(m.Called(ctx, p))
}

func (m *MockVendorService) GetByID(ctx context.Context, id string) (*vendor.Vendor, error) {
	return m.vendorResult(m.Called(ctx, id))
}

func (m *MockVendorService) GetByEmail(ctx context.Context, email string) (*vendor.Vendor, error) {
	return m.vendorResult(m.Called(ctx, email))
}

func (m *MockVendorService) List(ctx context.Context) ([]vendor.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vendor.Vendor), args.Error(1)
}

func (m *MockVendorService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockVendorService) UpdateProfile(ctx context.Context, p vendor.UpdateProfileParams) (*vendor.Vendor, error) {
	return m.vendorResult(m.Called(ctx, p))
}

func (m *MockVendorService) ToggleService(ctx context.Context, vendorID string) (*vendor.Vendor, error) {
	return m.vendorResult(m.Called(ctx, vendorID))
}

func (m *MockVendorService) AddCoverImages(ctx context.Context, vendorID string, images []string) (*vendor.Vendor, error) {
	return m.vendorResult(m.Called(ctx, vendorID, images))
}

func (m *MockVendorService) AddFood(ctx context.Context, vendorID string, p vendor.AddFoodParams) (*vendor.Vendor, error) {
	return m.vendorResult(m.Called(ctx, vendorID, p))
}

func (m *MockVendorService) ListFoods(ctx context.Context, vendorID string) ([]food.Food, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]food.Food), args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) vendors(args mock.Arguments) ([]vendor.Vendor, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vendor.Vendor), args.Error(1)
}

func (m *MockCatalogService) foods(args mock.Arguments) ([]food.Food, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]food.Food), args.Error(1)
}

func (m *MockCatalogService) Availability(ctx context.Context, pincode string) ([]vendor.Vendor, error) {
	return m.vendors(m.Called(ctx, pincode))
}

func (m *MockCatalogService) TopRestaurants(ctx context.Context, pincode string, limit int) ([]vendor.Vendor, error) {
	return m.vendors(m.Called(ctx, pincode, limit))
}

func (m *MockCatalogService) FoodsIn30Min(ctx context.Context, pincode string) ([]food.Food, error) {
	return m.foods(m.Called(ctx, pincode))
}

func (m *MockCatalogService) SearchFoods(ctx context.Context, pincode string) ([]food.Food, error) {
	return m.foods(m.Called(ctx, pincode))
}

func (m *MockCatalogService) RestaurantByID(ctx context.Context, id string) (*vendor.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

type MockCustomerService struct{ mock.Mock }

func (m *MockCustomerService) tokenResult(args mock.Arguments) (string, *customer.Customer, error) {
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*customer.Customer), args.Error(2)
}

func (m *MockCustomerService) SignUp(ctx context.Context, p customer.SignUpParams) (string, *customer.Customer, error) {
	return m.tokenResult(m.Called(ctx, p))
}

func (m *MockCustomerService) Login(ctx context.Context, p customer.LoginParams) (string, *customer.Customer, error) {
	return m.tokenResult(m.Called(ctx, p))
}

func (m *MockCustomerService) Verify(ctx context.Context, customerID string, otp int) (string, *customer.Customer, error) {
	return m.tokenResult(m.Called(ctx, customerID, otp))
}

func (m *MockCustomerService) RequestOTP(ctx context.Context, customerID string) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockCustomerService) GetProfile(ctx context.Context, customerID string) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) EditProfile(ctx context.Context, customerID string, p customer.EditProfileParams) (*customer.Customer, error) {
	args := m.Called(ctx, customerID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) items(args mock.Arguments) ([]cart.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Item), args.Error(1)
}

func (m *MockCartService) AddToCart(ctx context.Context, customerID, foodID string, unit int) ([]cart.Item, error) {
	return m.items(m.Called(ctx, customerID, foodID, unit))
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, customerID, foodID string) ([]cart.Item, error) {
	return m.items(m.Called(ctx, customerID, foodID))
}

func (m *MockCartService) GetCart(ctx context.Context, customerID string) ([]cart.Item, error) {
	return m.items(m.Called(ctx, customerID))
}

func (m *MockCartService) ClearCart(ctx context.Context, customerID string) error {
	return m.Called(ctx, customerID).Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) one(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) many(args mock.Arguments) ([]order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, customerID string, p order.CreateOrderParams) (*order.Order, error) {
	return m.one(m.Called(ctx, customerID, p))
}

func (m *MockOrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]order.Order, error) {
	return m.many(m.Called(ctx, customerID))
}

func (m *MockOrderService) GetCustomerOrder(ctx context.Context, customerID, orderID string) (*order.Order, error) {
	return m.one(m.Called(ctx, customerID, orderID))
}

func (m *MockOrderService) ListVendorOrders(ctx context.Context, vendorID string) ([]order.Order, error) {
	return m.many(m.Called(ctx, vendorID))
}

func (m *MockOrderService) GetVendorOrder(ctx context.Context, vendorID, orderID string) (*order.Order, error) {
	return m.one(m.Called(ctx, vendorID, orderID))
}

func (m *MockOrderService) ProcessOrder(ctx context.Context, vendorID, orderID string, p order.ProcessOrderParams) (*order.Order, error) {
	return m.one(m.Called(ctx, vendorID, orderID, p))
}

type MockImageSaver struct{ mock.Mock }

func (m *MockImageSaver) SaveImages(r *http.Request, field string) ([]string, error) {
	args := m.Called(field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
