package domain

import "time"

// Ingredient is a named main-ingredient slot with a hard capacity of
// IngredientCapacity concurrently valid claiming teams. Created by an admin
// or lazily by a registering food team when no case-insensitive name match
// exists.
type Ingredient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IngredientAvailability pairs an ingredient with its live claim count
type IngredientAvailability struct {
	Ingredient
	ClaimCount int `json:"claim_count"`
	SlotsLeft  int `json:"slots_left"`
}
