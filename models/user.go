package models

import (
	"context"
	"errors"
	"time"

	"github.com/Pallab-Dutta/KhidkiVada/config"
	"github.com/Pallab-Dutta/KhidkiVada/utils"
	"golang.org/x/crypto/bcrypt"
)

// User is an operator or client login. Client users carry the client name
// so their dashboard only lists their own orders.
type User struct {
	ID         int       `gorm:"primary_key" json:"id"`
	Username   string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name       string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Password   string    `gorm:"size:255;not null" json:"password"`
	Role       UserRole  `gorm:"type:enum('admin','client');not null;default:client" json:"role"`
	ClientName string    `gorm:"size:255" json:"client_name"`
	IsActive   *bool     `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username   string   `json:"username" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Password   string   `json:"password" binding:"required"`
	Role       UserRole `json:"role" binding:"required"`
	ClientName string   `json:"client_name"`
}

type LoginInfo struct {
	Token      string   `json:"token"`
	Name       string   `json:"name"`
	Role       UserRole `json:"role"`
	ClientName string   `json:"client_name,omitempty"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	active := true
	user := User{
		Username:   input.Username,
		Name:       input.Name,
		Password:   string(hashed),
		Role:       input.Role,
		ClientName: input.ClientName,
		IsActive:   &active,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {
	db := config.GetDB()

	user := User{}
	err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error
	if err != nil {
		return nil, errors.New("invalid username or password")
	}

	err = utils.ComparePassword(user.Password, password)
	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		return nil, errors.New("invalid username or password")
	}

	if user.IsActive == nil || !*user.IsActive {
		return nil, errors.New("user is disabled")
	}

	token, err := utils.JwtGenerate(user.ID, string(user.Role), user.ClientName)
	if err != nil {
		return nil, err
	}

	return &LoginInfo{
		Token:      token,
		Name:       user.Name,
		Role:       user.Role,
		ClientName: user.ClientName,
	}, nil
}
