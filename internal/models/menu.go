package models

// MenuCategory groups menu items.
type MenuCategory string

// Menu categories.
const (
	CategoryFood  MenuCategory = "food"
	CategoryDrink MenuCategory = "drink"
	CategoryAddon MenuCategory = "addon"
)

// MenuItem is a sellable item. ID is the unique key; Price is in whole currency units.
type MenuItem struct {
	ID       int          `json:"id"`
	Name     string       `json:"name" binding:"required"`
	Category MenuCategory `json:"category" binding:"oneof=food drink addon"`
	Price    int          `json:"price" binding:"gte=0"`
	Status   Status       `json:"status" binding:"oneof=active inactive"`
	Image    *string      `json:"image"`
}
