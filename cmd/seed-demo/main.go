// seed-demo creates or updates the admin console user and a small set of
// demo clients with price lists, so a fresh database is usable right away.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/models"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	adminUsername = "khidkivadaAdmin"
	adminPassword = "Kh!dk1Vada"
	adminName     = "KhidkiVada Admin"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	seedAdmin(ctx, db)
	seedClients(ctx, db)
}

func seedAdmin(ctx context.Context, db *gorm.DB) {
	var existing models.User
	err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		if _, err := models.CreateUser(ctx, &models.NewUser{
			Username: adminUsername,
			Name:     adminName,
			Password: adminPassword,
			Role:     models.UserRoleAdmin,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: username=%q\n", adminUsername)
		return
	}

	// Existing user: refresh password and role.
	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	active := true
	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).Updates(map[string]any{
		"password":  string(hashed),
		"name":      adminName,
		"is_active": &active,
		"role":      models.UserRoleAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated admin user: username=%q\n", adminUsername)
}

func seedClients(ctx context.Context, db *gorm.DB) {
	demo := []models.NewClient{
		{
			Name:  "Sharma Distributors",
			Type:  models.ClientTypeDistributor,
			State: "Maharashtra",
			Phone: "+91 9820012345",
			Prices: []models.NewClientPrice{
				{Item: models.Pack250g, UnitPrice: decimal.NewFromInt(30)},
				{Item: models.Pack500g, UnitPrice: decimal.NewFromInt(58)},
				{Item: models.Pack1kg, UnitPrice: decimal.NewFromInt(112)},
				{Item: models.Pack5kg, UnitPrice: decimal.NewFromInt(540)},
				{Item: models.Pack15kg, UnitPrice: decimal.NewFromInt(1575)},
				{Item: models.Pack30kg, UnitPrice: decimal.NewFromInt(3060)},
			},
		},
		{
			Name:  "Patel Foods",
			Type:  models.ClientTypeFranchise,
			State: "Gujarat",
			Phone: "+91 9900112233",
			Prices: []models.NewClientPrice{
				{Item: models.Pack250g, UnitPrice: decimal.NewFromInt(32)},
				{Item: models.Pack500g, UnitPrice: decimal.NewFromInt(62)},
				{Item: models.Pack1kg, UnitPrice: decimal.NewFromInt(120)},
				{Item: models.Pack5kg, UnitPrice: decimal.NewFromInt(575)},
				{Item: models.Pack15kg, UnitPrice: decimal.NewFromInt(1680)},
				{Item: models.Pack30kg, UnitPrice: decimal.NewFromInt(3240)},
			},
		},
	}

	for i := range demo {
		input := demo[i]
		var count int64
		if err := db.WithContext(ctx).Model(&models.Client{}).
			Where("name = ? AND type = ?", input.Name, input.Type).
			Count(&count).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to lookup client %q: %v\n", input.Name, err)
			os.Exit(1)
		}
		if count > 0 {
			fmt.Printf("Client exists, skipping: %q\n", input.Name)
			continue
		}
		if _, err := models.CreateClient(ctx, &input); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create client %q: %v\n", input.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Created client: %q (%s, %s)\n", input.Name, input.Type, input.State)
	}
}
