package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 価格はnumeric(10,2)。浮動小数は使わない。
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    int64           `gorm:"not null;index" json:"seller_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`
	Stock       int64           `gorm:"not null;default:0" json:"stock"`
	Rating      decimal.Decimal `gorm:"type:numeric(3,2);not null;default:0" json:"rating"`
	ReviewCount int64           `gorm:"not null;default:0" json:"review_count"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"-"`
}
