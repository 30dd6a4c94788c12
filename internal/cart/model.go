package cart

import "foodmarket-be/internal/food"

// Item is a cart line hydrated with its food.
type Item struct {
	Food food.Food `json:"food"`
	Unit int       `json:"unit"`
}

// Line is a cart line as submitted by a client.
type Line struct {
	FoodID string `json:"id" validate:"required"`
	Unit   int    `json:"unit" validate:"gte=0"`
}
