package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleShopper = "shopper"
)

type User struct {
	ID           string `gorm:"primaryKey"           json:"id"`
	FullName     string `gorm:"not null"             json:"full_name"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Role         string `gorm:"not null"             json:"role"`
}

type Article struct {
	ID          string  `gorm:"primaryKey"                json:"id"`
	Name        string  `gorm:"index;not null"            json:"name"`
	Category    string  `gorm:"index"                     json:"category"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int     `gorm:"not null;check:stock >= 0" json:"stock"`
}

type Cart struct {
	ID     string `gorm:"primaryKey"           json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`
}

type CartItem struct {
	ID        string `gorm:"primaryKey"                            json:"id"`
	CartID    string `gorm:"uniqueIndex:idx_cart_article;not null" json:"cart_id"`
	ArticleID string `gorm:"uniqueIndex:idx_cart_article;not null" json:"article_id"`
	Quantity  int    `gorm:"not null;check:quantity > 0"           json:"quantity"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}
