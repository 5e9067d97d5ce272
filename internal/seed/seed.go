// Package seed fills the database with a fixed catalogue of bakeries and baked goods.
package seed

import (
	"context"
	"fmt"

	"bakery-api/internal/logger"
	"bakery-api/internal/models"

	"gorm.io/gorm"
)

type bakedGoodSeed struct {
	Name  string
	Price float64
}

type bakerySeed struct {
	Name  string
	Goods []bakedGoodSeed
}

var catalogue = []bakerySeed{
	{
		Name: "Delightful donuts",
		Goods: []bakedGoodSeed{
			{Name: "Chocolate dipped donut", Price: 2.75},
			{Name: "Apple-spice filled donut", Price: 3.50},
			{Name: "Glazed honey cruller", Price: 3.25},
		},
	},
	{
		Name: "Incredible crullers",
		Goods: []bakedGoodSeed{
			{Name: "Plain cruller", Price: 2.25},
			{Name: "Powdered sugar cruller", Price: 2.50},
		},
	},
	{
		Name: "Morning loaf",
		Goods: []bakedGoodSeed{
			{Name: "Sourdough boule", Price: 7.00},
			{Name: "Rye loaf", Price: 6.25},
			{Name: "Butter croissant", Price: 3.50},
		},
	},
}

// Result reports how many rows Run inserted.
type Result struct {
	Bakeries   int
	BakedGoods int
}

// Run replaces every bakery and baked good with the catalogue in a single transaction.
func Run(ctx context.Context, db *gorm.DB) (Result, error) {
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&models.BakedGood{}).Error; err != nil {
			return fmt.Errorf("clearing baked goods: %w", err)
		}
		if err := all.Delete(&models.Bakery{}).Error; err != nil {
			return fmt.Errorf("clearing bakeries: %w", err)
		}

		for _, s := range catalogue {
			bakery := models.Bakery{Name: s.Name}
			if err := tx.Create(&bakery).Error; err != nil {
				return fmt.Errorf("creating bakery %q: %w", s.Name, err)
			}
			res.Bakeries++

			goods := make([]models.BakedGood, 0, len(s.Goods))
			for _, g := range s.Goods {
				goods = append(goods, models.BakedGood{
					Name:     g.Name,
					Price:    g.Price,
					BakeryID: &bakery.ID,
				})
			}
			if len(goods) == 0 {
				continue
			}
			if err := tx.Create(&goods).Error; err != nil {
				return fmt.Errorf("creating baked goods for %q: %w", s.Name, err)
			}
			res.BakedGoods += len(goods)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.FromContext(ctx).WithField("bakeries", res.Bakeries).WithField("bakedGoods", res.BakedGoods).Info("Seed completed")
	return res, nil
}
