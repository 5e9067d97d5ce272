package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionUndo   AuditAction = "undo"
)

const (
	EntityBakery    = "bakery"
	EntityBakedGood = "baked_good"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Request that produced the change, for correlating with access logs.
	RequestID string `gorm:"size:64" json:"request_id"`

	// "bakery" or "baked_good"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// Snapshots of the row before and after the change, as JSON.
	BeforeData string `gorm:"type:text" json:"before_data"`
	AfterData  string `gorm:"type:text" json:"after_data"`

	IsUndone bool       `gorm:"default:false" json:"is_undone"`
	UndoneAt *time.Time `json:"undone_at"`
}
