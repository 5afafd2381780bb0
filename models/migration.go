package models

import (
	"log"

	"github.com/Pallab-Dutta/KhidkiVada/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Client{}, &ClientPrice{},
		&Order{}, &OrderItem{}, &Payment{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
