package bakery

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
)

type CreateBakedGoodRequest struct {
	Name     string
	Price    float64
	BakeryID *uint // optional
}

type UpdateBakeryRequest struct {
	Name *string // nil leaves the name unchanged
}

// formValue looks key up in a url-encoded or multipart body and reports whether it was sent.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	if args := c.Context().PostArgs(); args.Has(key) {
		return string(args.Peek(key)), true
	}
	if form, err := c.MultipartForm(); err == nil {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}

func parseCreateBakedGood(c *fiber.Ctx) (CreateBakedGoodRequest, error) {
	var req CreateBakedGoodRequest

	name, ok := formValue(c, "name")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return req, fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if !utf8.ValidString(name) {
		return req, fiber.NewError(fiber.StatusBadRequest, "name must be valid UTF-8")
	}
	req.Name = name

	priceStr, ok := formValue(c, "price")
	priceStr = strings.TrimSpace(priceStr)
	if !ok || priceStr == "" {
		return req, fiber.NewError(fiber.StatusBadRequest, "price is required")
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return req, fiber.NewError(fiber.StatusBadRequest, "price must be a number")
	}
	if price < 0 {
		return req, fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
	}
	req.Price = price

	if bakeryIDStr, ok := formValue(c, "bakery_id"); ok && strings.TrimSpace(bakeryIDStr) != "" {
		id, err := strconv.ParseUint(strings.TrimSpace(bakeryIDStr), 10, 64)
		if err != nil || id == 0 {
			return req, fiber.NewError(fiber.StatusBadRequest, "bakery_id must be a positive integer")
		}
		bakeryID := uint(id)
		req.BakeryID = &bakeryID
	}

	return req, nil
}

func parseUpdateBakery(c *fiber.Ctx) (UpdateBakeryRequest, error) {
	var req UpdateBakeryRequest

	if name, ok := formValue(c, "name"); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return req, fiber.NewError(fiber.StatusBadRequest, "name must not be blank")
		}
		if !utf8.ValidString(name) {
			return req, fiber.NewError(fiber.StatusBadRequest, "name must be valid UTF-8")
		}
		req.Name = &name
	}

	return req, nil
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}
