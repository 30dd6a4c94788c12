package food

import "time"

type Food struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendorId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FoodType    string    `json:"foodType"`
	ReadyTime   int       `json:"readyTime"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QuickReadyMinutes is the cut-off for "foods in 30 minutes".
const QuickReadyMinutes = 30
