package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
)

type WeeklyAssignment struct {
	ID          int              `gorm:"primary_key" json:"id"`
	EmployeeId  int              `gorm:"not null;index" json:"employee_id"`
	WeekStart   time.Time        `gorm:"type:date;not null;index" json:"week_start"`
	WeekEnd     time.Time        `gorm:"type:date;not null;index" json:"week_end"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Quantity    *int             `json:"quantity"`
	Status      AssignmentStatus `gorm:"type:enum('pending','in_progress','completed');not null;default:'pending';index" json:"status"`
	IsLocked    *bool            `gorm:"not null;default:false;index" json:"is_locked"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewWeeklyAssignment struct {
	EmployeeId  int              `json:"employee_id" binding:"required"`
	WeekStart   string           `json:"week_start"`
	Description string           `json:"description" binding:"required"`
	Quantity    *int             `json:"quantity"`
	Status      AssignmentStatus `json:"status"`
}

func (input *NewWeeklyAssignment) validate(ctx context.Context) error {
	if err := utils.ValidateResourceId[Employee](ctx, input.EmployeeId); err != nil {
		return errors.New("employee not found")
	}
	if strings.TrimSpace(input.Description) == "" {
		return errors.New("description is required")
	}
	if input.Status != "" && !input.Status.Valid() {
		return errors.New("invalid assignment status")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// CreateWeeklyAssignment pins the task to the Saturday-to-Thursday
// workshop week containing the given start date. An assignment created
// as completed is locked immediately and can never be edited.
func CreateWeeklyAssignment(ctx context.Context, input *NewWeeklyAssignment) (*WeeklyAssignment, error) {

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	anchor, err := utils.ParseDate(input.WeekStart)
	if err != nil {
		anchor = utils.DateOnly(time.Now())
	}
	weekStart, weekEnd := utils.SatThuWeekRange(anchor)

	status := input.Status
	if status == "" {
		status = AssignmentStatusPending
	}

	assignment := WeeklyAssignment{
		EmployeeId:  input.EmployeeId,
		WeekStart:   weekStart,
		WeekEnd:     weekEnd,
		Description: strings.TrimSpace(input.Description),
		Quantity:    input.Quantity,
		Status:      status,
		IsLocked:    utils.NewFalse(),
	}
	if status == AssignmentStatusCompleted {
		assignment.IsLocked = utils.NewTrue()
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&assignment).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

func UpdateWeeklyAssignment(ctx context.Context, id int, input *NewWeeklyAssignment) (*WeeklyAssignment, error) {

	assignment, err := utils.FetchModel[WeeklyAssignment](ctx, id)
	if err != nil {
		return nil, err
	}
	if utils.DereferencePtr(assignment.IsLocked, false) {
		return nil, errors.New("completed assignment is locked")
	}

	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = assignment.Status
	}
	isLocked := assignment.IsLocked
	if status == AssignmentStatusCompleted {
		isLocked = utils.NewTrue()
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(assignment).
		Updates(map[string]interface{}{
			"Description": strings.TrimSpace(input.Description),
			"Quantity":    input.Quantity,
			"Status":      status,
			"IsLocked":    isLocked,
		}).Error
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func ListAssignmentsForEmployee(ctx context.Context, employeeId int, limit int) ([]WeeklyAssignment, error) {

	if limit <= 0 || limit > config.SearchLimit {
		limit = 100
	}

	db := config.GetDB()
	var assignments []WeeklyAssignment
	err := db.WithContext(ctx).Model(&WeeklyAssignment{}).
		Where("employee_id = ?", employeeId).
		Order("week_start DESC, id DESC").
		Limit(limit).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
