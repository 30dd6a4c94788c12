package order

import (
	"time"

	"foodmarket-be/internal/cart"
	"foodmarket-be/internal/food"
)

const PaidThroughCOD = "COD"

// Item is an order line. Price is the unit price at the time of ordering.
type Item struct {
	Food  food.Food `json:"food"`
	Unit  int       `json:"unit"`
	Price float64   `json:"price"`
}

type Order struct {
	ID              string    `json:"orderId"`
	CustomerID      string    `json:"customerId"`
	VendorID        string    `json:"vendorId"`
	Items           []Item    `json:"items"`
	TotalAmount     float64   `json:"totalAmount"`
	OrderDate       time.Time `json:"orderDate"`
	PaidThrough     string    `json:"paidThrough"`
	PaymentResponse string    `json:"paymentResponse"`
	OrderStatus     Status    `json:"orderStatus"`
	Remarks         string    `json:"remarks"`
	ReadyTime       int       `json:"readyTime"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateOrderParams struct {
	VendorID string      `json:"vendorId" validate:"required"`
	Items    []cart.Line `json:"items" validate:"required,min=1,dive"`
}

type ProcessOrderParams struct {
	Status  string `json:"status" validate:"required"`
	Remarks string `json:"remarks"`
	Time    *int   `json:"time" validate:"omitnil,gt=0"`
}
