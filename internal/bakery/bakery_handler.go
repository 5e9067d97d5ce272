package bakery

import (
	"errors"
	"fmt"

	"bakery-api/internal/audit"
	"bakery-api/internal/logger"
	"bakery-api/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const homePage = "<h1>Bakery GET-POST-PATCH-DELETE API</h1>"

// GET /
func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(homePage)
	}
}

// GET /bakeries
func ListBakeriesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx := db.WithContext(c.UserContext())

		var bakeries []models.Bakery
		if err := tx.Order("id ASC").Find(&bakeries).Error; err != nil {
			return err
		}

		res, err := SerializeBakeries(tx, bakeries)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GET /bakeries/:id
func GetBakeryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		tx := db.WithContext(c.UserContext())

		var bakery models.Bakery
		if err := tx.First(&bakery, "id = ?", id).Error; err != nil {
			return bakeryLookupError(err)
		}

		res, err := SerializeBakery(tx, bakery)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// PATCH /bakeries/:id
func UpdateBakeryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		var res BakeryResponse

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var bakery models.Bakery
			if err := tx.First(&bakery, "id = ?", id).Error; err != nil {
				return bakeryLookupError(err)
			}

			body, err := parseUpdateBakery(c)
			if err != nil {
				return err
			}

			if body.Name != nil {
				before := bakery
				bakery.Name = *body.Name
				if err := tx.Save(&bakery).Error; err != nil {
					return err
				}
				if err := audit.WriteLog(tx, audit.LogOptions{
					RequestID:   logger.RequestIDFromContext(ctx),
					EntityType:  models.EntityBakery,
					EntityID:    bakery.ID,
					Action:      models.AuditActionUpdate,
					Description: fmt.Sprintf("Bakery renamed from %q to %q", before.Name, bakery.Name),
					Before:      before,
					After:       bakery,
				}); err != nil {
					return err
				}
			}

			res, err = SerializeBakery(tx, bakery)
			return err
		})
		if err != nil {
			return err
		}

		return c.JSON(res)
	}
}

func bakeryLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Bakery not found")
	}
	return err
}
