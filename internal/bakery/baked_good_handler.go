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

// POST /baked_goods
func CreateBakedGoodHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := parseCreateBakedGood(c)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		good := models.BakedGood{
			Name:     body.Name,
			Price:    body.Price,
			BakeryID: body.BakeryID,
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if good.BakeryID != nil {
				var count int64
				if err := tx.Model(&models.Bakery{}).Where("id = ?", *good.BakeryID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Bakery not found")
				}
			}

			if err := tx.Create(&good).Error; err != nil {
				return err
			}

			return audit.WriteLog(tx, audit.LogOptions{
				RequestID:   logger.RequestIDFromContext(ctx),
				EntityType:  models.EntityBakedGood,
				EntityID:    good.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Baked good %q created", good.Name),
				After:       good,
			})
		})
		if err != nil {
			return err
		}

		logger.FromContext(ctx).WithField("bakedGoodID", good.ID).Info("Baked good created")
		return c.Status(fiber.StatusCreated).JSON(SerializeBakedGood(good))
	}
}

// DELETE /baked_goods/:id
func DeleteBakedGoodHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return err
		}

		ctx := c.UserContext()
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var good models.BakedGood
			if err := tx.First(&good, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Baked good not found")
				}
				return err
			}

			if err := tx.Delete(&good).Error; err != nil {
				return err
			}

			return audit.WriteLog(tx, audit.LogOptions{
				RequestID:   logger.RequestIDFromContext(ctx),
				EntityType:  models.EntityBakedGood,
				EntityID:    good.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Baked good %q deleted", good.Name),
				Before:      good,
			})
		})
		if err != nil {
			return err
		}

		logger.FromContext(ctx).WithField("bakedGoodID", id).Info("Baked good deleted")
		return c.JSON(fiber.Map{"message": "Baked good successfully deleted"})
	}
}

// byPrice orders by price, most expensive first. Equal prices keep insertion order.
func byPrice(tx *gorm.DB) *gorm.DB {
	return tx.Order("price DESC").Order("id ASC")
}

// GET /baked_goods/by_price
func ListBakedGoodsByPriceHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var goods []models.BakedGood
		if err := db.WithContext(c.UserContext()).Scopes(byPrice).Find(&goods).Error; err != nil {
			return err
		}
		return c.JSON(SerializeBakedGoods(goods))
	}
}

// GET /baked_goods/most_expensive
func MostExpensiveBakedGoodHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var good models.BakedGood
		if err := db.WithContext(c.UserContext()).Scopes(byPrice).Take(&good).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "No baked goods found")
			}
			return err
		}
		return c.JSON(SerializeBakedGood(good))
	}
}
