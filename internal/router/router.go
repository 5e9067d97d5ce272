package router

import (
	"errors"
	"strings"

	"bakery-api/internal/audit"
	"bakery-api/internal/bakery"
	"bakery-api/internal/config"
	"bakery-api/internal/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// New builds the HTTP application with every route registered.
func New(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "bakery-api",
		ErrorHandler: errorHandler,
		JSONEncoder:  indentJSON,
		JSONDecoder:  json.Unmarshal,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}

	app.Use(logger.RequestID())
	app.Use(logger.Middleware())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/", bakery.HomeHandler())

	app.Get("/bakeries", bakery.ListBakeriesHandler(db))
	app.Get("/bakeries/:id", bakery.GetBakeryHandler(db))
	app.Patch("/bakeries/:id", bakery.UpdateBakeryHandler(db))

	// static paths before /baked_goods/:id
	app.Get("/baked_goods/by_price", bakery.ListBakedGoodsByPriceHandler(db))
	app.Get("/baked_goods/most_expensive", bakery.MostExpensiveBakedGoodHandler(db))
	app.Post("/baked_goods", bakery.CreateBakedGoodHandler(db))
	app.Delete("/baked_goods/:id", bakery.DeleteBakedGoodHandler(db))

	app.Get("/audit_logs", audit.ListAuditLogsHandler(db))
	app.Post("/audit_logs/:id/undo", audit.UndoAuditLogHandler(db))

	return app
}

func indentJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func errorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	logger.FromContext(c.UserContext()).WithError(err).Error("Unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
