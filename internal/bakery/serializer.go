package bakery

import (
	"bakery-api/internal/models"

	"gorm.io/gorm"
)

const timeLayout = "2006-01-02 15:04:05"

type BakedGoodResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	BakeryID  *uint   `json:"bakery_id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// BakeryResponse embeds the bakery's baked goods. BakedGoodResponse never embeds a bakery,
// so serialization cannot recurse.
type BakeryResponse struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	CreatedAt  string              `json:"created_at"`
	UpdatedAt  string              `json:"updated_at"`
	BakedGoods []BakedGoodResponse `json:"baked_goods"`
}

func SerializeBakedGood(g models.BakedGood) BakedGoodResponse {
	return BakedGoodResponse{
		ID:        g.ID,
		Name:      g.Name,
		Price:     g.Price,
		BakeryID:  g.BakeryID,
		CreatedAt: g.CreatedAt.Format(timeLayout),
		UpdatedAt: g.UpdatedAt.Format(timeLayout),
	}
}

func SerializeBakedGoods(goods []models.BakedGood) []BakedGoodResponse {
	res := make([]BakedGoodResponse, 0, len(goods))
	for _, g := range goods {
		res = append(res, SerializeBakedGood(g))
	}
	return res
}

// SerializeBakeries loads the baked goods of all given bakeries with a single query on
// baked_goods.bakery_id and attaches them to each bakery's response.
func SerializeBakeries(tx *gorm.DB, bakeries []models.Bakery) ([]BakeryResponse, error) {
	res := make([]BakeryResponse, 0, len(bakeries))
	if len(bakeries) == 0 {
		return res, nil
	}

	ids := make([]uint, 0, len(bakeries))
	for _, b := range bakeries {
		ids = append(ids, b.ID)
	}

	var goods []models.BakedGood
	if err := tx.Where("bakery_id IN ?", ids).Order("id ASC").Find(&goods).Error; err != nil {
		return nil, err
	}

	byBakery := make(map[uint][]BakedGoodResponse, len(bakeries))
	for _, g := range goods {
		byBakery[*g.BakeryID] = append(byBakery[*g.BakeryID], SerializeBakedGood(g))
	}

	for _, b := range bakeries {
		children := byBakery[b.ID]
		if children == nil {
			children = []BakedGoodResponse{}
		}
		res = append(res, BakeryResponse{
			ID:         b.ID,
			Name:       b.Name,
			CreatedAt:  b.CreatedAt.Format(timeLayout),
			UpdatedAt:  b.UpdatedAt.Format(timeLayout),
			BakedGoods: children,
		})
	}
	return res, nil
}

func SerializeBakery(tx *gorm.DB, b models.Bakery) (BakeryResponse, error) {
	res, err := SerializeBakeries(tx, []models.Bakery{b})
	if err != nil {
		return BakeryResponse{}, err
	}
	return res[0], nil
}
