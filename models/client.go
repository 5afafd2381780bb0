package models

import (
	"context"
	"errors"
	"time"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Client struct {
	ID        int           `gorm:"primary_key" json:"id"`
	Name      string        `gorm:"size:255;not null;uniqueIndex:idx_client_name_type" json:"name" binding:"required"`
	Type      ClientType    `gorm:"type:enum('distributor','franchise');not null;uniqueIndex:idx_client_name_type" json:"type" binding:"required"`
	Address   string        `gorm:"type:text" json:"address"`
	State     string        `gorm:"size:100;not null" json:"state" binding:"required"`
	Gstin     string        `gorm:"size:15" json:"gstin"`
	Phone     string        `gorm:"size:20" json:"phone"`
	Prices    []ClientPrice `gorm:"foreignKey:ClientId" json:"prices"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// ClientPrice is one row of a client's price list: the unit price the
// client pays for a catalog pack size. Orders snapshot these prices at
// creation; editing a price list never rewrites existing orders.
type ClientPrice struct {
	ID        int             `gorm:"primary_key" json:"id"`
	ClientId  int             `gorm:"index;not null;uniqueIndex:idx_client_price_item" json:"client_id"`
	Item      ItemName        `gorm:"size:20;not null;uniqueIndex:idx_client_price_item" json:"item"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	Name    string           `json:"name" binding:"required"`
	Type    ClientType       `json:"type" binding:"required"`
	Address string           `json:"address"`
	State   string           `json:"state" binding:"required"`
	Gstin   string           `json:"gstin"`
	Phone   string           `json:"phone"`
	Prices  []NewClientPrice `json:"prices" binding:"required"`
}

type NewClientPrice struct {
	Item      ItemName        `json:"item" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// PriceFor resolves the client's unit price for a catalog item.
func (c *Client) PriceFor(item ItemName) (decimal.Decimal, error) {
	for _, p := range c.Prices {
		if p.Item == item {
			return p.UnitPrice, nil
		}
	}
	return decimal.Zero, utils.ErrorInvalidLineItem
}

func (input NewClient) validate(ctx context.Context) error {
	if !input.Type.Valid() {
		return errors.New("invalid client type")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	if input.Gstin != "" && !utils.IsValidGstin(input.Gstin) {
		return errors.New("invalid GSTIN")
	}
	if len(input.Prices) == 0 {
		return errors.New("price list is required")
	}
	seen := make(map[ItemName]bool, len(input.Prices))
	for _, p := range input.Prices {
		if !p.Item.Valid() {
			return utils.ErrorInvalidLineItem
		}
		if seen[p.Item] {
			return errors.New("duplicate price list item")
		}
		seen[p.Item] = true
		if p.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return errors.New("unit price must be positive")
		}
	}

	// unique (name, type)
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&Client{}).
		Where("name = ? AND type = ?", input.Name, input.Type).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate client name")
	}
	return nil
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	prices := make([]ClientPrice, 0, len(input.Prices))
	for _, p := range input.Prices {
		prices = append(prices, ClientPrice{Item: p.Item, UnitPrice: p.UnitPrice.Round(2)})
	}

	client := Client{
		Name:    input.Name,
		Type:    input.Type,
		Address: input.Address,
		State:   input.State,
		Gstin:   input.Gstin,
		Phone:   input.Phone,
		Prices:  prices,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func GetClient(ctx context.Context, id int) (*Client, error) {
	db := config.GetDB()
	var client Client
	err := db.WithContext(ctx).Preload("Prices").First(&client, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.ErrorClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func ListClients(ctx context.Context, clientType *ClientType) ([]*Client, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).Preload("Prices").Order("name asc")
	if clientType != nil {
		query = query.Where("type = ?", *clientType)
	}
	var clients []*Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}
