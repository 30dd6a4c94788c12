package customer

import (
	"time"

	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/order"
)

type Customer struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Password  string        `json:"-"`
	Salt      string        `json:"-"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Address   string        `json:"address"`
	Verified  bool          `json:"verified"`
	OTP       int           `json:"-"`
	OTPExpiry time.Time     `json:"-"`
	Lat       float64       `json:"lat"`
	Lng       float64       `json:"lng"`
	Cart      []cart.Item   `json:"cart"`
	Orders    []order.Order `json:"orders"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type SignUpParams struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=12"`
	Password string `json:"password" validate:"required,min=3,max=12"`
}

type LoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3,max=12"`
}

type EditProfileParams struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=16"`
	LastName  string `json:"lastName" validate:"required,min=3,max=16"`
	Address   string `json:"address" validate:"required,min=6,max=64"`
}
