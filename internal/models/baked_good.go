package models

import "time"

type BakedGood struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null"`
	Price     float64 `gorm:"not null;index"`
	BakeryID  *uint   `gorm:"index"` // optional; no back-reference to Bakery
	CreatedAt time.Time
	UpdatedAt time.Time
}
