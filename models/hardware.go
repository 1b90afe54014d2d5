package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
)

type HardwareMaterial struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Name         string    `gorm:"size:256;not null;index" json:"name"`
	Unit         string    `gorm:"size:32;not null;default:'pieces'" json:"unit"`
	QtyOnHand    int       `gorm:"not null;default:0" json:"qty_on_hand"`
	ReorderLevel int       `gorm:"not null;default:0" json:"reorder_level"`
	CostPricePKR int64     `gorm:"not null;default:0" json:"cost_price_pkr"`
	SalePricePKR int64     `gorm:"not null;default:0" json:"sale_price_pkr"`
	Notes        string    `gorm:"type:text" json:"notes"`
	IsActive     *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewHardwareMaterial struct {
	Name         string `json:"name" binding:"required"`
	Unit         string `json:"unit"`
	QtyOnHand    int    `json:"qty_on_hand"`
	ReorderLevel int    `json:"reorder_level"`
	CostPricePKR int64  `json:"cost_price_pkr"`
	SalePricePKR int64  `json:"sale_price_pkr"`
	Notes        string `json:"notes"`
}

func (input *NewHardwareMaterial) validate() error {
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

func CreateHardwareMaterial(ctx context.Context, input *NewHardwareMaterial) (*HardwareMaterial, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "pieces"
	}

	material := HardwareMaterial{
		Name:         strings.TrimSpace(input.Name),
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

func UpdateHardwareMaterial(ctx context.Context, id int, input *NewHardwareMaterial) (*HardwareMaterial, error) {

	material, err := utils.FetchModel[HardwareMaterial](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "pieces"
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(material).
		Updates(map[string]interface{}{
			"Name":         strings.TrimSpace(input.Name),
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

func SoftDeleteHardwareMaterial(ctx context.Context, id int) (*HardwareMaterial, error) {

	material, err := utils.FetchModel[HardwareMaterial](ctx, id)
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

func ListHardwareMaterials(ctx context.Context, q string, limit int) ([]HardwareMaterial, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	var materials []HardwareMaterial
	query := db.WithContext(ctx).Model(&HardwareMaterial{}).
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

type HardwareCard struct {
	Item     HardwareMaterial `json:"item"`
	Badge    StockBadge       `json:"badge"`
	BadgeCss string           `json:"badge_class"`
}

func HardwareCards(materials []HardwareMaterial) []HardwareCard {
	cards := make([]HardwareCard, 0, len(materials))
	for _, material := range materials {
		badge := ComputeStockBadge(material.QtyOnHand, material.ReorderLevel)
		cards = append(cards, HardwareCard{Item: material, Badge: badge, BadgeCss: BadgeClass(badge)})
	}
	return cards
}
