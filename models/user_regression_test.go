package models_test

import (
	"context"
	"testing"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/models"
)

func TestLoginRejectsUnverifiableHash(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	if err := models.EnsureAdminUser(ctx); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}
	if _, err := models.Login(ctx, "admin", "admin"); err != nil {
		t.Fatalf("login with default credentials: %v", err)
	}

	// A stored hash bcrypt cannot even parse must fail the login, not
	// just a clean mismatch.
	db := config.GetDB()
	err := db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", "admin").
		Update("password", "not-a-bcrypt-hash").Error
	if err != nil {
		t.Fatalf("corrupt hash: %v", err)
	}

	if _, err := models.Login(ctx, "admin", "admin"); err == nil {
		t.Fatal("login succeeded against an unverifiable stored hash")
	}
}
