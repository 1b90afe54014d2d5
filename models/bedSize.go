package models

import (
	"context"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
)

// BedSize stores mattress footprints in whole inches plus a display
// size in hundredths of a foot, precomputed so templates never divide.
type BedSize struct {
	ID           int       `gorm:"primary_key" json:"id"`
	Label        string    `gorm:"size:128;not null" json:"label"`
	WidthIn      int       `gorm:"not null" json:"width_in"`
	LengthIn     int       `gorm:"not null" json:"length_in"`
	WidthFtX100  *int      `json:"width_ft_x100"`
	LengthFtX100 *int      `json:"length_ft_x100"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
	IsActive     *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UpsertBedSize keys on the inch dimensions and overwrites the label
// and sort order on every call, so seed renames take effect in place.
func UpsertBedSize(ctx context.Context, label string, widthIn, lengthIn int, widthFtX100, lengthFtX100 *int, sortOrder int) (*BedSize, error) {

	db := config.GetDB()
	var size BedSize
	err := db.WithContext(ctx).Model(&BedSize{}).
		Where("width_in = ? AND length_in = ?", widthIn, lengthIn).
		Take(&size).Error
	if err == nil {
		err = db.WithContext(ctx).Model(&size).
			Updates(map[string]interface{}{
				"Label":        label,
				"WidthFtX100":  widthFtX100,
				"LengthFtX100": lengthFtX100,
				"SortOrder":    sortOrder,
				"IsActive":     true,
			}).Error
		if err != nil {
			return nil, err
		}
		return &size, nil
	}

	size = BedSize{
		Label:        label,
		WidthIn:      widthIn,
		LengthIn:     lengthIn,
		WidthFtX100:  widthFtX100,
		LengthFtX100: lengthFtX100,
		SortOrder:    sortOrder,
		IsActive:     utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&size).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

func ListBedSizes(ctx context.Context) ([]BedSize, error) {

	db := config.GetDB()
	var sizes []BedSize
	err := db.WithContext(ctx).Model(&BedSize{}).
		Where("is_active = ?", true).
		Order("sort_order ASC, width_in ASC").
		Find(&sizes).Error
	if err != nil {
		return nil, err
	}
	return sizes, nil
}
