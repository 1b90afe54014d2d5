package models

import (
	"context"
	"errors"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
	"gorm.io/gorm"
)

// StockMovement is the append-only audit trail behind every
// qty_on_hand change. VariantId points into the table named by
// InventoryType; rows are never updated or deleted.
type StockMovement struct {
	ID            int           `gorm:"primary_key" json:"id"`
	InventoryType InventoryKind `gorm:"type:enum('FURNITURE_VARIANT','FOAM_VARIANT','SOFA_ITEM','HARDWARE_MATERIAL','POSHISH_MATERIAL');not null;index" json:"inventory_type"`
	VariantId     int           `gorm:"not null;index" json:"variant_id"`
	MovementType  string        `gorm:"size:32;not null;index" json:"movement_type"`
	QtyChange     int           `gorm:"not null" json:"qty_change"`
	UnitCostPKR   *int64        `json:"unit_cost_pkr"`
	ReferenceType string        `gorm:"size:64" json:"reference_type"`
	ReferenceId   *int          `json:"reference_id"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

type NewStockAdjustment struct {
	InventoryType InventoryKind `json:"inventory_type" binding:"required"`
	VariantId     int           `json:"variant_id" binding:"required"`
	MovementType  string        `json:"movement_type"`
	QtyChange     int           `json:"qty_change" binding:"required"`
	UnitCostPKR   *int64        `json:"unit_cost_pkr"`
	Notes         string        `json:"notes"`
}

// applyStockDelta dispatches the quantity update by kind. Each branch adds
// the signed delta in place; over-withdrawal is allowed, so a quantity
// may go negative and stay there until a correcting entry lands.
func applyStockDelta(tx *gorm.DB, kind InventoryKind, variantId int, delta int) error {
	expr := gorm.Expr("qty_on_hand + ?", delta)
	var result *gorm.DB
	switch kind {
	case InventoryKindFurnitureVariant:
		result = tx.Model(&FurnitureVariant{}).Where("id = ?", variantId).Update("qty_on_hand", expr)
	case InventoryKindFoamVariant:
		result = tx.Model(&FoamVariant{}).Where("id = ?", variantId).Update("qty_on_hand", expr)
	case InventoryKindSofaItem:
		result = tx.Model(&SofaItem{}).Where("id = ?", variantId).Update("qty_on_hand", expr)
	case InventoryKindHardwareMaterial:
		result = tx.Model(&HardwareMaterial{}).Where("id = ?", variantId).Update("qty_on_hand", expr)
	case InventoryKindPoshishMaterial:
		result = tx.Model(&PoshishMaterial{}).Where("id = ?", variantId).Update("qty_on_hand", expr)
	default:
		return errors.New("invalid inventory type")
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// AdjustStock appends the movement row and applies the delta in one
// transaction. The furniture status recompute afterwards is best
// effort: its failure is logged and swallowed so a reporting hiccup
// never undoes a committed stock count.
func AdjustStock(ctx context.Context, input *NewStockAdjustment) (*StockMovement, error) {

	if !input.InventoryType.Valid() {
		return nil, errors.New("invalid inventory type")
	}
	if input.QtyChange == 0 {
		return nil, errors.New("quantity change cannot be zero")
	}

	movementType := input.MovementType
	if movementType == "" {
		movementType = "Stock In"
		if input.QtyChange < 0 {
			movementType = "Stock Out"
		}
	}

	movement := StockMovement{
		InventoryType: input.InventoryType,
		VariantId:     input.VariantId,
		MovementType:  movementType,
		QtyChange:     input.QtyChange,
		UnitCostPKR:   input.UnitCostPKR,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := applyStockDelta(tx.WithContext(ctx), input.InventoryType, input.VariantId, input.QtyChange); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if input.InventoryType == InventoryKindFurnitureVariant {
		variant, err := utils.FetchModel[FurnitureVariant](ctx, input.VariantId)
		if err == nil {
			err = RecomputeFurnitureItemStatus(ctx, variant.FurnitureItemId)
		}
		if err != nil {
			config.LogError(config.GetLogger(), "models", "AdjustStock", "recompute status", input.VariantId, err)
		}
	}

	return &movement, nil
}

func ListStockMovements(ctx context.Context, limit int) ([]StockMovement, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 200
	}

	db := config.GetDB()
	var movements []StockMovement
	err := db.WithContext(ctx).Model(&StockMovement{}).
		Order("id DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
