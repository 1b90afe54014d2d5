package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
	"gorm.io/gorm"
)

type FurnitureItem struct {
	ID            int             `gorm:"primary_key" json:"id"`
	Name          string          `gorm:"size:256;not null;index" json:"name"`
	Sku           string          `gorm:"size:64;not null;index" json:"sku"`
	MaterialType  string          `gorm:"size:32;not null;default:'Wood'" json:"material_type"`
	ColorFinish   string          `gorm:"size:128" json:"color_finish"`
	Status        FurnitureStatus `gorm:"type:enum('IN_STOCK','OUT_OF_STOCK','MADE_TO_ORDER');not null;default:'IN_STOCK';index" json:"status"`
	CategoryId    int             `gorm:"not null;index" json:"category_id"`
	SubCategoryId *int            `gorm:"index" json:"sub_category_id"`
	Notes         string          `gorm:"type:text" json:"notes"`
	IsActive      *bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// FurnitureVariant is one stocked size of an item. BedSizeId is null
// for single-size pieces like showcases.
type FurnitureVariant struct {
	ID              int       `gorm:"primary_key" json:"id"`
	FurnitureItemId int       `gorm:"not null;index" json:"furniture_item_id"`
	BedSizeId       *int      `gorm:"index" json:"bed_size_id"`
	QtyOnHand       int       `gorm:"not null;default:0" json:"qty_on_hand"`
	ReorderLevel    int       `gorm:"not null;default:0" json:"reorder_level"`
	CostPricePKR    int64     `gorm:"not null;default:0" json:"cost_price_pkr"`
	SalePricePKR    int64     `gorm:"not null;default:0" json:"sale_price_pkr"`
	IsActive        *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewFurnitureItem struct {
	Name          string          `json:"name" binding:"required"`
	Sku           string          `json:"sku"`
	MaterialType  string          `json:"material_type"`
	ColorFinish   string          `json:"color_finish"`
	Status        FurnitureStatus `json:"status"`
	CategoryId    int             `json:"category_id" binding:"required"`
	SubCategoryId *int            `json:"sub_category_id"`
	Notes         string          `json:"notes"`
}

func (input *NewFurnitureItem) validate(ctx context.Context) error {
	if strings.TrimSpace(input.Name) == "" {
		return errors.New("item name is required")
	}
	if input.Status != "" && !input.Status.Valid() {
		return errors.New("invalid furniture status")
	}
	if err := utils.ValidateResourceId[InventoryCategory](ctx, input.CategoryId); err != nil {
		return errors.New("category not found")
	}
	if input.SubCategoryId != nil {
		if err := utils.ValidateResourceId[InventoryCategory](ctx, *input.SubCategoryId); err != nil {
			return errors.New("sub category not found")
		}
	}
	if sku := strings.TrimSpace(input.Sku); sku != "" {
		if err := utils.ValidateUnique[FurnitureItem](ctx, "sku", sku, 0); err != nil {
			return errors.New("sku is already in use")
		}
	}
	return nil
}

func CreateFurnitureItem(ctx context.Context, input *NewFurnitureItem) (*FurnitureItem, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = FurnitureStatusInStock
	}
	materialType := input.MaterialType
	if materialType == "" {
		materialType = "Wood"
	}

	item := FurnitureItem{
		Name:          strings.TrimSpace(input.Name),
		Sku:           strings.TrimSpace(input.Sku),
		MaterialType:  materialType,
		ColorFinish:   input.ColorFinish,
		Status:        status,
		CategoryId:    input.CategoryId,
		SubCategoryId: input.SubCategoryId,
		Notes:         input.Notes,
		IsActive:      utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func GetFurnitureItem(ctx context.Context, id int) (*FurnitureItem, error) {
	return utils.FetchModel[FurnitureItem](ctx, id)
}

func ListFurnitureItems(ctx context.Context, q string, categoryId *int, limit int) ([]FurnitureItem, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 200
	}

	db := config.GetDB()
	var items []FurnitureItem
	query := db.WithContext(ctx).Model(&FurnitureItem{}).
		Where("is_active = ?", true)
	if categoryId != nil {
		query = query.Where("category_id = ?", *categoryId)
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

// SoftDeleteFurnitureItem deactivates the item and all of its variants.
func SoftDeleteFurnitureItem(ctx context.Context, id int) (*FurnitureItem, error) {

	item, err := utils.FetchModel[FurnitureItem](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(item).Update("is_active", false).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&FurnitureVariant{}).
		Where("furniture_item_id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err = tx.Commit().Error; err != nil {
		return nil, err
	}
	return item, nil
}

type NewFurnitureVariant struct {
	FurnitureItemId int   `json:"furniture_item_id" binding:"required"`
	BedSizeId       *int  `json:"bed_size_id"`
	QtyOnHand       int   `json:"qty_on_hand"`
	ReorderLevel    int   `json:"reorder_level"`
	CostPricePKR    int64 `json:"cost_price_pkr"`
	SalePricePKR    int64 `json:"sale_price_pkr"`
}

func (input *NewFurnitureVariant) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[FurnitureItem](ctx, input.FurnitureItemId); err != nil {
		return errors.New("furniture item not found")
	}
	if input.BedSizeId != nil {
		if err := utils.ValidateResourceId[BedSize](ctx, *input.BedSizeId); err != nil {
			return errors.New("bed size not found")
		}
	}
	if input.CostPricePKR < 0 || input.SalePricePKR < 0 {
		return errors.New("price cannot be negative")
	}
	if input.ReorderLevel < 0 {
		return errors.New("reorder level cannot be negative")
	}
	return nil
}

// UpsertFurnitureVariant keys on (item, bed size) where a null bed size
// is its own key, overwrites the stocking fields, forces the row
// active, and recomputes the parent item's status either way.
func UpsertFurnitureVariant(ctx context.Context, input *NewFurnitureVariant) (*FurnitureVariant, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var variant FurnitureVariant
	query := db.WithContext(ctx).Model(&FurnitureVariant{}).
		Where("furniture_item_id = ?", input.FurnitureItemId)
	if input.BedSizeId == nil {
		query = query.Where("bed_size_id IS NULL")
	} else {
		query = query.Where("bed_size_id = ?", *input.BedSizeId)
	}
	err := query.Take(&variant).Error
	if err == nil {
		err = db.WithContext(ctx).Model(&variant).
			Updates(map[string]interface{}{
				"QtyOnHand":    input.QtyOnHand,
				"CostPricePKR": input.CostPricePKR,
				"SalePricePKR": input.SalePricePKR,
				"ReorderLevel": input.ReorderLevel,
				"IsActive":     true,
			}).Error
		if err != nil {
			return nil, err
		}
		if err := RecomputeFurnitureItemStatus(ctx, input.FurnitureItemId); err != nil {
			return nil, err
		}
		return &variant, nil
	}

	variant = FurnitureVariant{
		FurnitureItemId: input.FurnitureItemId,
		BedSizeId:       input.BedSizeId,
		QtyOnHand:       input.QtyOnHand,
		ReorderLevel:    input.ReorderLevel,
		CostPricePKR:    input.CostPricePKR,
		SalePricePKR:    input.SalePricePKR,
		IsActive:        utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&variant).Error; err != nil {
		return nil, err
	}
	if err := RecomputeFurnitureItemStatus(ctx, input.FurnitureItemId); err != nil {
		return nil, err
	}
	return &variant, nil
}

func ListFurnitureVariants(ctx context.Context, furnitureItemId int) ([]FurnitureVariant, error) {

	db := config.GetDB()
	var variants []FurnitureVariant
	err := db.WithContext(ctx).Model(&FurnitureVariant{}).
		Where("furniture_item_id = ?", furnitureItemId).
		Where("is_active = ?", true).
		Order("bed_size_id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// RecomputeFurnitureItemStatus rewrites the item's cached status from
// the sum of its active variant quantities. MADE_TO_ORDER is sticky:
// stock math never moves an item out of it.
func RecomputeFurnitureItemStatus(ctx context.Context, furnitureItemId int) error {

	db := config.GetDB()
	var item FurnitureItem
	err := db.WithContext(ctx).Model(&FurnitureItem{}).
		Where("id = ?", furnitureItemId).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if item.Status == FurnitureStatusMadeToOrder {
		return nil
	}

	var totalQty int64
	err = db.WithContext(ctx).Model(&FurnitureVariant{}).
		Where("is_active = ?", true).
		Where("furniture_item_id = ?", furnitureItemId).
		Select("COALESCE(SUM(qty_on_hand), 0)").
		Scan(&totalQty).Error
	if err != nil {
		return err
	}

	status := FurnitureStatusInStock
	if totalQty <= 0 {
		status = FurnitureStatusOutOfStock
	}
	return db.WithContext(ctx).Model(&item).Update("status", status).Error
}

// FurnitureCard aggregates an item's variants for the stock screen.
type FurnitureCard struct {
	Item     FurnitureItem `json:"item"`
	TotalQty int           `json:"total_qty"`
	MinCost  int64         `json:"min_cost"`
	MinSale  int64         `json:"min_sale"`
	Badge    StockBadge    `json:"badge"`
	BadgeCss string        `json:"badge_class"`
}

// FurnitureCards rolls active variants up per item. The item badge
// prefers Made to Order, then Out of Stock on a non-positive total,
// then Low Stock when any single variant runs low.
func FurnitureCards(ctx context.Context, items []FurnitureItem) ([]FurnitureCard, error) {

	if len(items) == 0 {
		return []FurnitureCard{}, nil
	}

	itemIds := make([]int, 0, len(items))
	for _, item := range items {
		itemIds = append(itemIds, item.ID)
	}

	db := config.GetDB()
	var variants []FurnitureVariant
	err := db.WithContext(ctx).Model(&FurnitureVariant{}).
		Where("is_active = ?", true).
		Where("furniture_item_id IN ?", itemIds).
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	byItem := make(map[int][]FurnitureVariant, len(items))
	for _, variant := range variants {
		byItem[variant.FurnitureItemId] = append(byItem[variant.FurnitureItemId], variant)
	}

	cards := make([]FurnitureCard, 0, len(items))
	for _, item := range items {
		itemVariants := byItem[item.ID]
		totalQty := 0
		var minCost, minSale int64
		anyLow := false
		for i, variant := range itemVariants {
			totalQty += variant.QtyOnHand
			if i == 0 || variant.CostPricePKR < minCost {
				minCost = variant.CostPricePKR
			}
			if i == 0 || variant.SalePricePKR < minSale {
				minSale = variant.SalePricePKR
			}
			if !anyLow {
				if variant.ReorderLevel > 0 {
					anyLow = variant.QtyOnHand <= variant.ReorderLevel
				} else {
					anyLow = variant.QtyOnHand < DefaultLowStockThreshold
				}
			}
		}

		badge := StockBadgeIn
		switch {
		case item.Status == FurnitureStatusMadeToOrder:
			badge = StockBadgeMadeToOrder
		case totalQty <= 0:
			badge = StockBadgeOut
		case anyLow:
			badge = StockBadgeLow
		}

		cards = append(cards, FurnitureCard{
			Item:     item,
			TotalQty: totalQty,
			MinCost:  minCost,
			MinSale:  minSale,
			Badge:    badge,
			BadgeCss: BadgeClass(badge),
		})
	}
	return cards, nil
}

// LowStockFurniture returns active furniture variants at or under their
// reorder threshold, emptiest first.
func LowStockFurniture(ctx context.Context, limit int) ([]FurnitureVariant, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 200
	}

	db := config.GetDB()
	var variants []FurnitureVariant
	err := db.WithContext(ctx).Model(&FurnitureVariant{}).
		Where("is_active = ?", true).
		Order("qty_on_hand ASC, id ASC").
		Limit(limit).
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	low := make([]FurnitureVariant, 0, len(variants))
	for _, variant := range variants {
		if ComputeStockBadge(variant.QtyOnHand, variant.ReorderLevel) != StockBadgeIn {
			low = append(low, variant)
		}
	}
	return low, nil
}
