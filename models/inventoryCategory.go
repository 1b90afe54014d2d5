package models

import (
	"context"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
	"gorm.io/gorm"
)

// InventoryCategory is a small self-referential tree: root (Furniture /
// Foam), category, sub-category. In practice it never goes deeper.
type InventoryCategory struct {
	ID        int          `gorm:"primary_key" json:"id"`
	Type      CategoryType `gorm:"type:enum('FURNITURE','FOAM');not null;index" json:"type"`
	Name      string       `gorm:"size:128;not null;index" json:"name"`
	ParentId  *int         `gorm:"index" json:"parent_id"`
	IsActive  *bool        `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func parentClause(query *gorm.DB, parentId *int) *gorm.DB {
	if parentId == nil {
		return query.Where("parent_id IS NULL")
	}
	return query.Where("parent_id = ?", *parentId)
}

// UpsertInventoryCategory looks a category up by (type, parent, name
// case-insensitive). An existing row is reactivated but never renamed,
// so the stored capitalization is whatever the first writer used.
func UpsertInventoryCategory(ctx context.Context, categoryType CategoryType, parentId *int, name string) (*InventoryCategory, error) {

	db := config.GetDB()
	var category InventoryCategory
	query := db.WithContext(ctx).Model(&InventoryCategory{}).
		Where("type = ?", categoryType).
		Where("LOWER(name) = LOWER(?)", name)
	query = parentClause(query, parentId)
	err := query.Take(&category).Error
	if err == nil {
		if category.IsActive == nil || !*category.IsActive {
			err = db.WithContext(ctx).Model(&category).Update("is_active", true).Error
			if err != nil {
				return nil, err
			}
		}
		return &category, nil
	}

	category = InventoryCategory{
		Type:     categoryType,
		Name:     name,
		ParentId: parentId,
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func ListInventoryCategories(ctx context.Context, categoryType CategoryType, parentId *int) ([]InventoryCategory, error) {

	db := config.GetDB()
	var categories []InventoryCategory
	query := db.WithContext(ctx).Model(&InventoryCategory{}).
		Where("is_active = ?", true).
		Where("type = ?", categoryType)
	query = parentClause(query, parentId)
	err := query.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func GetInventoryCategoryByName(ctx context.Context, categoryType CategoryType, name string, parentId *int) (*InventoryCategory, error) {

	db := config.GetDB()
	var category InventoryCategory
	query := db.WithContext(ctx).Model(&InventoryCategory{}).
		Where("is_active = ?", true).
		Where("type = ?", categoryType).
		Where("LOWER(name) = LOWER(?)", name)
	query = parentClause(query, parentId)
	err := query.Take(&category).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &category, nil
}

func DeactivateInventoryCategory(ctx context.Context, id int) (*InventoryCategory, error) {

	category, err := utils.FetchModel[InventoryCategory](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	err = db.WithContext(ctx).Model(category).Update("is_active", false).Error
	if err != nil {
		return nil, err
	}
	return category, nil
}
