package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodmarket-be/internal/auth"
	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/logger"
	"foodmarket-be/internal/notification"
	"foodmarket-be/internal/order"
	"foodmarket-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TokenSigner interface {
	Generate(p auth.Payload) (string, error)
}

type CartReader interface {
	GetCart(ctx context.Context, customerID string) ([]cart.Item, error)
}

type OrderReader interface {
	ListCustomerOrders(ctx context.Context, customerID string) ([]order.Order, error)
}

type Service interface {
	SignUp(ctx context.Context, p SignUpParams) (string, *Customer, error)
	Login(ctx context.Context, p LoginParams) (string, *Customer, error)
	Verify(ctx context.Context, customerID string, otp int) (string, *Customer, error)
	RequestOTP(ctx context.Context, customerID string) error
	GetProfile(ctx context.Context, customerID string) (*Customer, error)
	EditProfile(ctx context.Context, customerID string, p EditProfileParams) (*Customer, error)
}

type service struct {
	repo   Repository
	signer TokenSigner
	sms    notification.Sender
	carts  CartReader
	orders OrderReader
	now    func() time.Time
}

// NewService wires customer accounts. carts and orders hydrate the
// profile and may be nil.
func NewService(repo Repository, signer TokenSigner, sms notification.Sender, carts CartReader, orders OrderReader) Service {
	return &service{
		repo:   repo,
		signer: signer,
		sms:    sms,
		carts:  carts,
		orders: orders,
		now:    time.Now,
	}
}

// SignUp registers an unverified customer and sends an OTP. An SMS failure
// is logged but does not undo the signup; the customer can ask for a new
// code.
func (s *service) SignUp(ctx context.Context, p SignUpParams) (string, *Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "customer.SignUp"),
	)

	if err := utils.ValidateStruct(p); err != nil {
		return "", nil, err
	}

	exists, err := s.repo.ExistsByEmailOrPhone(ctx, p.Email, p.Phone)
	if err != nil {
		log.Error("failed to check existing customer", zap.Error(err))
		return "", nil, err
	}
	if exists {
		return "", nil, ErrAccountExists
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		log.Error("failed to generate salt", zap.Error(err))
		return "", nil, err
	}

	otp, err := auth.GenerateOTP(s.now())
	if err != nil {
		log.Error("failed to generate otp", zap.Error(err))
		return "", nil, err
	}

	c := &Customer{
		ID:        uuid.NewString(),
		Email:     p.Email,
		Phone:     p.Phone,
		Password:  auth.HashPassword(p.Password, salt),
		Salt:      salt,
		Verified:  false,
		OTP:       otp.Code,
		OTPExpiry: otp.Expiry,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return "", nil, err
	}

	if err := s.sms.SendOTP(ctx, c.Phone, otp.Code); err != nil {
		log.Warn("signup otp not delivered", zap.String("customer_id", c.ID), zap.Error(err))
	}

	token, err := s.token(c)
	if err != nil {
		log.Error("failed to sign token", zap.Error(err))
		return "", nil, err
	}

	log.Info("customer signed up", zap.String("customer_id", c.ID))
	return token, c, nil
}

func (s *service) Login(ctx context.Context, p LoginParams) (string, *Customer, error) {
	if err := utils.ValidateStruct(p); err != nil {
		return "", nil, err
	}

	c, err := s.repo.FindByEmail(ctx, p.Email)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.ValidatePassword(p.Password, c.Password, c.Salt) {
		logger.FromCtx(ctx).Info("password mismatch", zap.String("customer_id", c.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.token(c)
	if err != nil {
		return "", nil, err
	}
	return token, c, nil
}

// Verify checks the OTP. A verified account or a wrong or expired code
// stops here without changing anything.
func (s *service) Verify(ctx context.Context, customerID string, otp int) (string, *Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "customer.Verify"),
		zap.String("customer_id", customerID),
	)

	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return "", nil, err
	}

	if c.Verified {
		return "", nil, ErrAlreadyVerified
	}

	stored := auth.OTP{Code: c.OTP, Expiry: c.OTPExpiry}
	if !stored.Matches(otp, s.now()) {
		log.Info("otp rejected")
		return "", nil, ErrInvalidOTP
	}

	c, err = s.repo.MarkVerified(ctx, customerID)
	if err != nil {
		return "", nil, err
	}

	token, err := s.token(c)
	if err != nil {
		return "", nil, err
	}

	log.Info("customer verified")
	return token, c, nil
}

func (s *service) RequestOTP(ctx context.Context, customerID string) error {
	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	otp, err := auth.GenerateOTP(s.now())
	if err != nil {
		return err
	}

	if err := s.repo.UpdateOTP(ctx, c.ID, otp.Code, otp.Expiry); err != nil {
		return err
	}

	if err := s.sms.SendOTP(ctx, c.Phone, otp.Code); err != nil {
		return fmt.Errorf("request otp: %w", err)
	}
	return nil
}

func (s *service) GetProfile(ctx context.Context, customerID string) (*Customer, error) {
	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) EditProfile(ctx context.Context, customerID string, p EditProfileParams) (*Customer, error) {
	if err := utils.ValidateStruct(p); err != nil {
		return nil, err
	}

	c, err := s.repo.UpdateProfile(ctx, customerID, p)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) hydrate(ctx context.Context, c *Customer) error {
	c.Cart = []cart.Item{}
	c.Orders = []order.Order{}

	if s.carts != nil {
		items, err := s.carts.GetCart(ctx, c.ID)
		if err != nil {
			return err
		}
		c.Cart = items
	}
	if s.orders != nil {
		orders, err := s.orders.ListCustomerOrders(ctx, c.ID)
		if err != nil {
			return err
		}
		c.Orders = orders
	}
	return nil
}

func (s *service) token(c *Customer) (string, error) {
	return s.signer.Generate(auth.Payload{
		ID:       c.ID,
		Email:    c.Email,
		Verified: c.Verified,
		Role:     auth.RoleCustomer,
	})
}
