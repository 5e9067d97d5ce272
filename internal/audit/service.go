package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakery-api/internal/models"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

var (
	// ErrLogNotFound is returned by Undo when no audit entry has the given id.
	ErrLogNotFound = errors.New("audit log not found")
	// ErrAlreadyUndone is returned when the entry was undone before.
	ErrAlreadyUndone = errors.New("change already undone")
	// ErrNotUndoable is returned for entries that cannot be reversed, such as undo entries.
	ErrNotUndoable = errors.New("change cannot be undone")
)

type LogOptions struct {
	RequestID   string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog records a change. Pass the transaction the change ran in so both commit together.
func WriteLog(tx *gorm.DB, opts LogOptions) error {
	entry := models.AuditLog{
		RequestID:   opts.RequestID,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}
	return nil
}

func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Undo reverses the change recorded by the entry with logID and appends an undo entry.
func Undo(ctx context.Context, db *gorm.DB, logID uint, requestID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.AuditLog
		if err := tx.First(&entry, "id = ?", logID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLogNotFound
			}
			return err
		}

		if entry.IsUndone {
			return ErrAlreadyUndone
		}

		switch entry.Action {
		case models.AuditActionCreate:
			if err := deleteEntity(tx, entry.EntityType, entry.EntityID); err != nil {
				return err
			}
		case models.AuditActionUpdate:
			if err := ensureLatestUpdate(tx, entry); err != nil {
				return err
			}
			if err := restoreEntity(tx, entry.EntityType, entry.EntityID, entry.BeforeData); err != nil {
				return err
			}
		case models.AuditActionDelete:
			if err := recreateEntity(tx, entry.EntityType, entry.BeforeData); err != nil {
				return err
			}
		default:
			return ErrNotUndoable
		}

		now := time.Now()
		entry.IsUndone = true
		entry.UndoneAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("marking audit log undone: %w", err)
		}

		return WriteLog(tx, LogOptions{
			RequestID:   requestID,
			EntityType:  entry.EntityType,
			EntityID:    entry.EntityID,
			Action:      models.AuditActionUndo,
			Description: fmt.Sprintf("Undone: %s", entry.Description),
			Before:      rawJSON(entry.AfterData),
			After:       rawJSON(entry.BeforeData),
		})
	})
}

func rawJSON(s string) json.RawMessage {
	if s == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}

func deleteEntity(tx *gorm.DB, entityType string, entityID uint) error {
	switch entityType {
	case models.EntityBakedGood:
		res := tx.Delete(&models.BakedGood{}, "id = ?", entityID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: baked good %d no longer exists", ErrNotUndoable, entityID)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown entity type %s", ErrNotUndoable, entityType)
	}
}

func recreateEntity(tx *gorm.DB, entityType string, dataJSON string) error {
	switch entityType {
	case models.EntityBakedGood:
		var good models.BakedGood
		if err := json.Unmarshal([]byte(dataJSON), &good); err != nil {
			return fmt.Errorf("decoding baked good snapshot: %w", err)
		}
		if good.BakeryID != nil {
			var count int64
			if err := tx.Model(&models.Bakery{}).Where("id = ?", *good.BakeryID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				good.BakeryID = nil
			}
		}
		good.ID = 0
		return tx.Create(&good).Error
	default:
		return fmt.Errorf("%w: unknown entity type %s", ErrNotUndoable, entityType)
	}
}

// ensureLatestUpdate refuses to restore a snapshot while a later update of the same entity is still applied.
func ensureLatestUpdate(tx *gorm.DB, entry models.AuditLog) error {
	var newer int64
	if err := tx.Model(&models.AuditLog{}).
		Where("entity_type = ? AND entity_id = ? AND action = ? AND is_undone = ? AND id > ?",
			entry.EntityType, entry.EntityID, models.AuditActionUpdate, false, entry.ID).
		Count(&newer).Error; err != nil {
		return err
	}
	if newer > 0 {
		return fmt.Errorf("%w: a newer change must be undone first", ErrNotUndoable)
	}
	return nil
}

func restoreEntity(tx *gorm.DB, entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case models.EntityBakery:
		var bakery models.Bakery
		if err := json.Unmarshal([]byte(dataJSON), &bakery); err != nil {
			return fmt.Errorf("decoding bakery snapshot: %w", err)
		}
		res := tx.Model(&models.Bakery{}).Where("id = ?", entityID).Update("name", bakery.Name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: bakery %d no longer exists", ErrNotUndoable, entityID)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown entity type %s", ErrNotUndoable, entityType)
	}
}
