package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
)

type FoamBrand struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:128;not null;index" json:"name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type FoamModel struct {
	ID        int       `gorm:"primary_key" json:"id"`
	BrandId   int       `gorm:"not null;index" json:"brand_id"`
	Name      string    `gorm:"size:128;not null;index" json:"name"`
	Notes     string    `gorm:"type:text" json:"notes"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type FoamThickness struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Inches    int       `gorm:"not null;index" json:"inches"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FoamVariant is one stocked mattress: model x bed size x thickness.
type FoamVariant struct {
	ID              int       `gorm:"primary_key" json:"id"`
	FoamModelId     int       `gorm:"not null;index" json:"foam_model_id"`
	BedSizeId       int       `gorm:"not null;index" json:"bed_size_id"`
	ThicknessId     int       `gorm:"not null;index" json:"thickness_id"`
	DensityType     string    `gorm:"size:64" json:"density_type"`
	QtyOnHand       int       `gorm:"not null;default:0" json:"qty_on_hand"`
	ReorderLevel    int       `gorm:"not null;default:0" json:"reorder_level"`
	PurchaseCostPKR int64     `gorm:"not null;default:0" json:"purchase_cost_pkr"`
	SalePricePKR    int64     `gorm:"not null;default:0" json:"sale_price_pkr"`
	IsActive        *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func UpsertFoamBrand(ctx context.Context, name string) (*FoamBrand, error) {

	db := config.GetDB()
	var brand FoamBrand
	err := db.WithContext(ctx).Model(&FoamBrand{}).
		Where("LOWER(name) = LOWER(?)", name).
		Take(&brand).Error
	if err == nil {
		if brand.IsActive == nil || !*brand.IsActive {
			if err := db.WithContext(ctx).Model(&brand).Update("is_active", true).Error; err != nil {
				return nil, err
			}
		}
		return &brand, nil
	}

	brand = FoamBrand{Name: name, IsActive: utils.NewTrue()}
	if err := db.WithContext(ctx).Create(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func ListFoamBrands(ctx context.Context) ([]FoamBrand, error) {

	db := config.GetDB()
	var brands []FoamBrand
	err := db.WithContext(ctx).Model(&FoamBrand{}).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

func UpsertFoamThickness(ctx context.Context, inches int, sortOrder int) (*FoamThickness, error) {

	db := config.GetDB()
	var thickness FoamThickness
	err := db.WithContext(ctx).Model(&FoamThickness{}).
		Where("inches = ?", inches).
		Take(&thickness).Error
	if err == nil {
		err = db.WithContext(ctx).Model(&thickness).
			Updates(map[string]interface{}{"SortOrder": sortOrder, "IsActive": true}).Error
		if err != nil {
			return nil, err
		}
		return &thickness, nil
	}

	thickness = FoamThickness{Inches: inches, SortOrder: sortOrder, IsActive: utils.NewTrue()}
	if err := db.WithContext(ctx).Create(&thickness).Error; err != nil {
		return nil, err
	}
	return &thickness, nil
}

func ListFoamThicknesses(ctx context.Context) ([]FoamThickness, error) {

	db := config.GetDB()
	var thicknesses []FoamThickness
	err := db.WithContext(ctx).Model(&FoamThickness{}).
		Where("is_active = ?", true).
		Order("sort_order ASC, inches ASC").
		Find(&thicknesses).Error
	if err != nil {
		return nil, err
	}
	return thicknesses, nil
}

type NewFoamModel struct {
	BrandId int    `json:"brand_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Notes   string `json:"notes"`
}

func UpsertFoamModel(ctx context.Context, input *NewFoamModel) (*FoamModel, error) {

	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("model name is required")
	}
	if err := utils.ValidateResourceId[FoamBrand](ctx, input.BrandId); err != nil {
		return nil, errors.New("brand not found")
	}

	db := config.GetDB()
	var model FoamModel
	err := db.WithContext(ctx).Model(&FoamModel{}).
		Where("brand_id = ?", input.BrandId).
		Where("LOWER(name) = LOWER(?)", input.Name).
		Take(&model).Error
	if err == nil {
		if model.IsActive == nil || !*model.IsActive {
			if err := db.WithContext(ctx).Model(&model).Update("is_active", true).Error; err != nil {
				return nil, err
			}
		}
		return &model, nil
	}

	model = FoamModel{
		BrandId:  input.BrandId,
		Name:     strings.TrimSpace(input.Name),
		Notes:    input.Notes,
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}
	return &model, nil
}

func ListFoamModels(ctx context.Context, brandId *int) ([]FoamModel, error) {

	db := config.GetDB()
	var foamModels []FoamModel
	query := db.WithContext(ctx).Model(&FoamModel{}).
		Where("is_active = ?", true)
	if brandId != nil {
		query = query.Where("brand_id = ?", *brandId)
	}
	err := query.Order("brand_id ASC, name ASC").Find(&foamModels).Error
	if err != nil {
		return nil, err
	}
	return foamModels, nil
}

// SoftDeleteFoamModel deactivates the model and all of its variants.
// Stock movement history stays untouched.
func SoftDeleteFoamModel(ctx context.Context, id int) (*FoamModel, error) {

	model, err := utils.FetchModel[FoamModel](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	tx := db.Begin()
	err = tx.WithContext(ctx).Model(model).Update("is_active", false).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(&FoamVariant{}).
		Where("foam_model_id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err = tx.Commit().Error; err != nil {
		return nil, err
	}
	return model, nil
}

type NewFoamVariant struct {
	FoamModelId     int    `json:"foam_model_id" binding:"required"`
	BedSizeId       int    `json:"bed_size_id" binding:"required"`
	ThicknessId     int    `json:"thickness_id" binding:"required"`
	DensityType     string `json:"density_type"`
	QtyOnHand       int    `json:"qty_on_hand"`
	ReorderLevel    int    `json:"reorder_level"`
	PurchaseCostPKR int64  `json:"purchase_cost_pkr"`
	SalePricePKR    int64  `json:"sale_price_pkr"`
}

func (input *NewFoamVariant) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[FoamModel](ctx, input.FoamModelId); err != nil {
		return errors.New("foam model not found")
	}
	if err := utils.ValidateResourceId[BedSize](ctx, input.BedSizeId); err != nil {
		return errors.New("bed size not found")
	}
	if err := utils.ValidateResourceId[FoamThickness](ctx, input.ThicknessId); err != nil {
		return errors.New("thickness not found")
	}
	if input.PurchaseCostPKR < 0 || input.SalePricePKR < 0 {
		return errors.New("price cannot be negative")
	}
	if input.ReorderLevel < 0 {
		return errors.New("reorder level cannot be negative")
	}
	return nil
}

// UpsertFoamVariant keys on (model, bed size, thickness) and overwrites
// the stocking fields wholesale, reactivating the row if needed.
func UpsertFoamVariant(ctx context.Context, input *NewFoamVariant) (*FoamVariant, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	var variant FoamVariant
	err := db.WithContext(ctx).Model(&FoamVariant{}).
		Where("foam_model_id = ?", input.FoamModelId).
		Where("bed_size_id = ?", input.BedSizeId).
		Where("thickness_id = ?", input.ThicknessId).
		Take(&variant).Error
	if err == nil {
		err = db.WithContext(ctx).Model(&variant).
			Updates(map[string]interface{}{
				"DensityType":     input.DensityType,
				"QtyOnHand":       input.QtyOnHand,
				"PurchaseCostPKR": input.PurchaseCostPKR,
				"SalePricePKR":    input.SalePricePKR,
				"ReorderLevel":    input.ReorderLevel,
				"IsActive":        true,
			}).Error
		if err != nil {
			return nil, err
		}
		return &variant, nil
	}

	variant = FoamVariant{
		FoamModelId:     input.FoamModelId,
		BedSizeId:       input.BedSizeId,
		ThicknessId:     input.ThicknessId,
		DensityType:     input.DensityType,
		QtyOnHand:       input.QtyOnHand,
		ReorderLevel:    input.ReorderLevel,
		PurchaseCostPKR: input.PurchaseCostPKR,
		SalePricePKR:    input.SalePricePKR,
		IsActive:        utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func ListFoamVariants(ctx context.Context, foamModelId int) ([]FoamVariant, error) {

	db := config.GetDB()
	var variants []FoamVariant
	err := db.WithContext(ctx).Model(&FoamVariant{}).
		Where("foam_model_id = ?", foamModelId).
		Where("is_active = ?", true).
		Order("bed_size_id ASC, thickness_id ASC").
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// FoamVariantCard is one row of the foam stock screen, denormalized
// for rendering.
type FoamVariantCard struct {
	Variant   FoamVariant   `json:"variant"`
	Model     FoamModel     `json:"model"`
	Brand     FoamBrand     `json:"brand"`
	Size      BedSize       `json:"size"`
	Thickness FoamThickness `json:"thickness"`
	Badge     StockBadge    `json:"badge"`
	BadgeCss  string        `json:"badge_class"`
}

// FoamVariantCards lists active variants thinnest stock first so the
// mattresses about to run out sit at the top of the screen.
func FoamVariantCards(ctx context.Context, q string, brandId *int, limit int) ([]FoamVariantCard, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 200
	}

	db := config.GetDB()
	var rows []struct {
		FoamVariant
		Model     FoamModel     `gorm:"embedded;embeddedPrefix:model_"`
		Brand     FoamBrand     `gorm:"embedded;embeddedPrefix:brand_"`
		Size      BedSize       `gorm:"embedded;embeddedPrefix:size_"`
		Thickness FoamThickness `gorm:"embedded;embeddedPrefix:thickness_"`
	}

	query := db.WithContext(ctx).Model(&FoamVariant{}).
		Select("foam_variants.*, "+
			"foam_models.id AS model_id, foam_models.brand_id AS model_brand_id, foam_models.name AS model_name, "+
			"foam_brands.id AS brand_id, foam_brands.name AS brand_name, "+
			"bed_sizes.id AS size_id, bed_sizes.label AS size_label, bed_sizes.width_in AS size_width_in, bed_sizes.length_in AS size_length_in, "+
			"foam_thicknesses.id AS thickness_id, foam_thicknesses.inches AS thickness_inches").
		Joins("JOIN foam_models ON foam_models.id = foam_variants.foam_model_id").
		Joins("JOIN foam_brands ON foam_brands.id = foam_models.brand_id").
		Joins("JOIN bed_sizes ON bed_sizes.id = foam_variants.bed_size_id").
		Joins("JOIN foam_thicknesses ON foam_thicknesses.id = foam_variants.thickness_id").
		Where("foam_variants.is_active = ?", true).
		Where("foam_models.is_active = ?", true).
		Where("foam_brands.is_active = ?", true)
	if brandId != nil {
		query = query.Where("foam_models.brand_id = ?", *brandId)
	}
	if q != "" {
		query = query.Where("LOWER(foam_models.name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	err := query.Order("foam_variants.qty_on_hand ASC, foam_variants.id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	cards := make([]FoamVariantCard, 0, len(rows))
	for _, row := range rows {
		badge := ComputeStockBadge(row.QtyOnHand, row.ReorderLevel)
		cards = append(cards, FoamVariantCard{
			Variant:   row.FoamVariant,
			Model:     row.Model,
			Brand:     row.Brand,
			Size:      row.Size,
			Thickness: row.Thickness,
			Badge:     badge,
			BadgeCss:  BadgeClass(badge),
		})
	}
	return cards, nil
}

// LowStockFoam returns active foam variants at or under their reorder
// level, emptiest first.
func LowStockFoam(ctx context.Context, limit int) ([]FoamVariant, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 200
	}

	db := config.GetDB()
	var variants []FoamVariant
	err := db.WithContext(ctx).Model(&FoamVariant{}).
		Where("is_active = ?", true).
		Order("qty_on_hand ASC, id ASC").
		Limit(limit).
		Find(&variants).Error
	if err != nil {
		return nil, err
	}

	low := make([]FoamVariant, 0, len(variants))
	for _, variant := range variants {
		if ComputeStockBadge(variant.QtyOnHand, variant.ReorderLevel) != StockBadgeIn {
			low = append(low, variant)
		}
	}
	return low, nil
}
