package models

import "time"

// Bakery owns zero or more BakedGood rows through baked_goods.bakery_id.
// Children are fetched by foreign key, never through a field on this struct.
type Bakery struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
