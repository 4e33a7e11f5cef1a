package domain

import "time"

// Product is a catalog item. Every product references an existing
// category; the constraint is enforced by the store, not here.
type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:200;index" json:"name"`
	Price      float64   `json:"price"` // price in main currency units (e.g., dollars)
	CategoryID int64     `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
