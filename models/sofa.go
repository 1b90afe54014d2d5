package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
)

// SofaItem carries its own quantity instead of variant rows; sofas are
// one-off builds, not size grids.
type SofaItem struct {
	ID               int       `gorm:"primary_key" json:"id"`
	Name             string    `gorm:"size:256;not null;index" json:"name"`
	SofaType         string    `gorm:"size:128;not null;index" json:"sofa_type"`
	HardwareMaterial string    `gorm:"size:128;index" json:"hardware_material"`
	PoshishMaterial  string    `gorm:"size:128;index" json:"poshish_material"`
	SeatingCapacity  string    `gorm:"size:64" json:"seating_capacity"`
	QtyOnHand        int       `gorm:"not null;default:0" json:"qty_on_hand"`
	ReorderLevel     int       `gorm:"not null;default:0" json:"reorder_level"`
	CostPricePKR     int64     `gorm:"not null;default:0" json:"cost_price_pkr"`
	SalePricePKR     int64     `gorm:"not null;default:0" json:"sale_price_pkr"`
	Notes            string    `gorm:"type:text" json:"notes"`
	IsActive         *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSofaItem struct {
	Name             string `json:"name" binding:"required"`
	SofaType         string `json:"sofa_type" binding:"required"`
	HardwareMaterial string `json:"hardware_material"`
	PoshishMaterial  string `json:"poshish_material"`
	SeatingCapacity  string `json:"seating_capacity"`
	QtyOnHand        int    `json:"qty_on_hand"`
	ReorderLevel     int    `json:"reorder_level"`
	CostPricePKR     int64  `json:"cost_price_pkr"`
	SalePricePKR     int64  `json:"sale_price_pkr"`
	Notes            string `json:"notes"`
}

func (input *NewSofaItem) validate() error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("sofa name is required")
	}
	if strings.TrimSpace(input.SofaType) == "" {
		return errors.New("sofa type is required")
	}
	if input.CostPricePKR < 0 || input.SalePricePKR < 0 {
		return errors.New("price cannot be negative")
	}
	if input.ReorderLevel < 0 {
		return errors.New("reorder level cannot be negative")
	}
	return nil
}

func CreateSofaItem(ctx context.Context, input *NewSofaItem) (*SofaItem, error) {

	if err := input.validate(); err != nil {
		return nil, err
	}

	item := SofaItem{
		Name:             strings.TrimSpace(input.Name),
		SofaType:         strings.TrimSpace(input.SofaType),
		HardwareMaterial: input.HardwareMaterial,
		PoshishMaterial:  input.PoshishMaterial,
		SeatingCapacity:  input.SeatingCapacity,
		QtyOnHand:        input.QtyOnHand,
		ReorderLevel:     input.ReorderLevel,
		CostPricePKR:     input.CostPricePKR,
		SalePricePKR:     input.SalePricePKR,
		Notes:            input.Notes,
		IsActive:         utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateSofaItem(ctx context.Context, id int, input *NewSofaItem) (*SofaItem, error) {

	item, err := utils.FetchModel[SofaItem](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(item).
		Updates(map[string]interface{}{
			"Name":             strings.TrimSpace(input.Name),
			"SofaType":         strings.TrimSpace(input.SofaType),
			"HardwareMaterial": input.HardwareMaterial,
			"PoshishMaterial":  input.PoshishMaterial,
			"SeatingCapacity":  input.SeatingCapacity,
			"QtyOnHand":        input.QtyOnHand,
			"ReorderLevel":     input.ReorderLevel,
			"CostPricePKR":     input.CostPricePKR,
			"SalePricePKR":     input.SalePricePKR,
			"Notes":            input.Notes,
		}).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func SoftDeleteSofaItem(ctx context.Context, id int) (*SofaItem, error) {

	item, err := utils.FetchModel[SofaItem](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	err = db.WithContext(ctx).Model(item).Update("is_active", false).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func ListSofaItems(ctx context.Context, q string, sofaType string, limit int) ([]SofaItem, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = config.SearchLimit
	}

	db := config.GetDB()
	var items []SofaItem
	query := db.WithContext(ctx).Model(&SofaItem{}).
		Where("is_active = ?", true)
	if sofaType != "" {
		query = query.Where("sofa_type = ?", sofaType)
	}
	if q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	err := query.Order("id DESC").Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

type SofaCard struct {
	Item     SofaItem   `json:"item"`
	Badge    StockBadge `json:"badge"`
	BadgeCss string     `json:"badge_class"`
}

func SofaCards(items []SofaItem) []SofaCard {
	cards := make([]SofaCard, 0, len(items))
	for _, item := range items {
		badge := ComputeStockBadge(item.QtyOnHand, item.ReorderLevel)
		cards = append(cards, SofaCard{Item: item, Badge: badge, BadgeCss: BadgeClass(badge)})
	}
	return cards
}
