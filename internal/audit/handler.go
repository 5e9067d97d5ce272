package audit

import (
	"errors"
	"strconv"

	"bakery-api/internal/logger"
	"bakery-api/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	RequestID   string             `json:"request_id"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	IsUndone    bool               `json:"is_undone"`
	UndoneAt    *string            `json:"undone_at"`
}

// GET /audit_logs?entity_type=baked_good&entity_id=1
func ListAuditLogsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := db.WithContext(c.UserContext()).Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}

		if entityIDStr := c.Query("entity_id"); entityIDStr != "" {
			entityID, err := strconv.ParseInt(entityIDStr, 10, 64)
			if err != nil || entityID <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "entity_id must be a positive integer")
			}
			dbq = dbq.Where("entity_id = ?", entityID)
		}

		var logs []models.AuditLog
		if err := dbq.Order("id DESC").Find(&logs).Error; err != nil {
			return err
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			var undoneAt *string
			if l.UndoneAt != nil {
				s := l.UndoneAt.Format("2006-01-02 15:04:05")
				undoneAt = &s
			}
			res = append(res, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				RequestID:   l.RequestID,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				IsUndone:    l.IsUndone,
				UndoneAt:    undoneAt,
			})
		}

		return c.JSON(res)
	}
}

// POST /audit_logs/:id/undo
func UndoAuditLogHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}

		ctx := c.UserContext()
		err = Undo(ctx, db, uint(id), logger.RequestIDFromContext(ctx))
		switch {
		case err == nil:
		case errors.Is(err, ErrLogNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Audit log not found")
		case errors.Is(err, ErrAlreadyUndone), errors.Is(err, ErrNotUndoable):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		default:
			return err
		}

		logger.FromContext(ctx).WithField("auditLogID", id).Info("Change undone")
		return c.JSON(fiber.Map{"message": "Change undone"})
	}
}
