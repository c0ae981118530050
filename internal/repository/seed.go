package repository

import (
	"encoding/json"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
)

// DefaultSnapshot is written on first start when no store file exists.
func DefaultSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Users: []models.User{
			{Username: "admin", Password: "admin123", Email: "admin@sotolamongan.com", Role: models.RoleAdmin, Status: models.StatusActive},
			{Username: "kasir1", Password: "kasir123", Email: "kasir1@sotolamongan.com", Role: models.RoleCashier, Status: models.StatusActive},
		},
		MenuItems: []models.MenuItem{
			{ID: 1, Name: "Soto Ayam Lamongan", Category: models.CategoryFood, Price: 25000, Status: models.StatusActive},
			{ID: 2, Name: "Soto Daging Lamongan", Category: models.CategoryFood, Price: 30000, Status: models.StatusActive},
			{ID: 3, Name: "Nasi Goreng Lamongan", Category: models.CategoryFood, Price: 20000, Status: models.StatusActive},
			{ID: 4, Name: "Es Jeruk", Category: models.CategoryDrink, Price: 8000, Status: models.StatusActive},
			{ID: 5, Name: "Teh Manis", Category: models.CategoryDrink, Price: 5000, Status: models.StatusActive},
			{ID: 6, Name: "Kerupuk Udang", Category: models.CategoryAddon, Price: 3000, Status: models.StatusActive},
			{ID: 7, Name: "Telur Rebus", Category: models.CategoryAddon, Price: 5000, Status: models.StatusActive},
			{ID: 8, Name: "Emping Melinjo", Category: models.CategoryAddon, Price: 4000, Status: models.StatusActive},
		},
		SalesData: json.RawMessage("[]"),
	}
}
