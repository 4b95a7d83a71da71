package domain

import (
	"time"

	"github.com/google/uuid"
)

type FoodID = uuid.UUID
type CategoryID = uuid.UUID

type FoodCategory struct {
	ID        CategoryID `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
}

type Food struct {
	ID         FoodID     `json:"id"`
	Name       string     `json:"name"`
	Price      float64    `json:"price"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	CategoryID CategoryID `json:"categoryId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
