package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
)

// PoshishMaterial is upholstery stock, usually tracked in meters of
// fabric rather than pieces.
type PoshishMaterial struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Name         string    `gorm:"size:256;not null;index" json:"name"`
	Color        string    `gorm:"size:128" json:"color"`
	Unit         string    `gorm:"size:32;not null;default:'meters'" json:"unit"`
	QtyOnHand    int       `gorm:"not null;default:0" json:"qty_on_hand"`
	ReorderLevel int       `gorm:"not null;default:0" json:"reorder_level"`
	CostPricePKR int64     `gorm:"not null;default:0" json:"cost_price_pkr"`
	SalePricePKR int64     `gorm:"not null;default:0" json:"sale_price_pkr"`
	Notes        string    `gorm:"type:text" json:"notes"`
	IsActive     *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPoshishMaterial struct {
	Name         string `json:"name" binding:"required"`
	Color        string `json:"color"`
	Unit         string `json:"unit"`
	QtyOnHand    int    `json:"qty_on_hand"`
	ReorderLevel int    `json:"reorder_level"`
	CostPricePKR int64  `json:"cost_price_pkr"`
	SalePricePKR int64  `json:"sale_price_pkr"`
	Notes        string `json:"notes"`
}

func (input *NewPoshishMaterial) validate() error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("material name is required")
	}
	if input.CostPricePKR < 0 || input.SalePricePKR < 0 {
		return errors.New("price cannot be negative")
	}
	if input.ReorderLevel < 0 {
		return errors.New("reorder level cannot be negative")
	}
	return nil
}

func CreatePoshishMaterial(ctx context.Context, input *NewPoshishMaterial) (*PoshishMaterial, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "meters"
	}

	material := PoshishMaterial{
		Name:         strings.TrimSpace(input.Name),
		Color:        input.Color,
		Unit:         unit,
		QtyOnHand:    input.QtyOnHand,
		ReorderLevel: input.ReorderLevel,
		CostPricePKR: input.CostPricePKR,
		SalePricePKR: input.SalePricePKR,
		Notes:        input.Notes,
		IsActive:     utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func UpdatePoshishMaterial(ctx context.Context, id int, input *NewPoshishMaterial) (*PoshishMaterial, error) {

	material, err := utils.FetchModel[PoshishMaterial](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "meters"
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(material).
		Updates(map[string]interface{}{
			"Name":         strings.TrimSpace(input.Name),
			"Color":        input.Color,
			"Unit":         unit,
			"QtyOnHand":    input.QtyOnHand,
			"ReorderLevel": input.ReorderLevel,
			"CostPricePKR": input.CostPricePKR,
			"SalePricePKR": input.SalePricePKR,
			"Notes":        input.Notes,
		}).Error
	if err != nil {
		return nil, err
	}
	return material, nil
}

func SoftDeletePoshishMaterial(ctx context.Context, id int) (*PoshishMaterial, error) {

	material, err := utils.FetchModel[PoshishMaterial](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	err = db.WithContext(ctx).Model(material).Update("is_active", false).Error
	if err != nil {
		return nil, err
	}
	return material, nil
}

func ListPoshishMaterials(ctx context.Context, q string, limit int) ([]PoshishMaterial, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	var materials []PoshishMaterial
	query := db.WithContext(ctx).Model(&PoshishMaterial{}).
		Where("is_active = ?", true)
	if q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	err := query.Order("id DESC").Limit(limit).Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

type PoshishCard struct {
	Item     PoshishMaterial `json:"item"`
	Badge    StockBadge      `json:"badge"`
	BadgeCss string          `json:"badge_class"`
}

func PoshishCards(materials []PoshishMaterial) []PoshishCard {
	cards := make([]PoshishCard, 0, len(materials))
	for _, material := range materials {
		badge := ComputeStockBadge(material.QtyOnHand, material.ReorderLevel)
		cards = append(cards, PoshishCard{Item: material, Badge: badge, BadgeCss: BadgeClass(badge)})
	}
	return cards
}
