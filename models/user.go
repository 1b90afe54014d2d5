package models

import (
	"context"
	"errors"
	"os"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID        int    `gorm:"primary_key" json:"id"`
	Username  string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password  string `gorm:"size:100;not null" json:"-"`
	IsActive  *bool  `gorm:"not null;default:true" json:"is_active"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

type LoginInfo struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {

	db := config.GetDB()
	var result LoginInfo

	user := User{}
	err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error
	if err != nil {
		return &result, errors.New("invalid username or password")
	}

	err = utils.ComparePassword(user.Password, password)
	if err != nil {
		return &result, errors.New("invalid username or password")
	}

	if user.IsActive == nil || !*user.IsActive {
		return &result, errors.New("user is disabled")
	}

	token, err := utils.JwtGenerate(user.ID, user.Username)
	if err != nil {
		return &result, err
	}
	result.Token = token
	result.Name = user.Username

	return &result, nil
}

// EnsureAdminUser creates the single admin account from ADMIN_USER /
// ADMIN_PASSWORD when it does not exist yet. The password hash is not
// rewritten on later boots, so a changed env password only applies to a
// fresh database.
func EnsureAdminUser(ctx context.Context) error {
	db := config.GetDB()

	username := os.Getenv("ADMIN_USER")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	var user User
	err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user = User{
		Username: username,
		Password: hashed,
		IsActive: utils.NewTrue(),
	}
	return db.WithContext(ctx).Create(&user).Error
}
