package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/models"
)

// startIntegrationDB boots a throwaway MySQL container and points the
// config package at it. Callers get a migrated, seeded-empty database.
func startIntegrationDB(t *testing.T) {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "workshop_test")
	t.Setenv("REDIS_ADDRESS", "")

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		t.Fatalf("db is nil after ConnectDatabaseWithRetry")
	}
	models.MigrateTable()
}

func TestInventorySeedIsIdempotent(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	if err := models.EnsureInventorySeed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	sizesFirst, err := models.ListBedSizes(ctx)
	if err != nil {
		t.Fatalf("ListBedSizes: %v", err)
	}
	brandsFirst, err := models.ListFoamBrands(ctx)
	if err != nil {
		t.Fatalf("ListFoamBrands: %v", err)
	}

	if err := models.EnsureInventorySeed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	sizesSecond, err := models.ListBedSizes(ctx)
	if err != nil {
		t.Fatalf("ListBedSizes after reseed: %v", err)
	}
	brandsSecond, err := models.ListFoamBrands(ctx)
	if err != nil {
		t.Fatalf("ListFoamBrands after reseed: %v", err)
	}

	if len(sizesSecond) != len(sizesFirst) {
		t.Errorf("reseed duplicated bed sizes: %d -> %d", len(sizesFirst), len(sizesSecond))
	}
	if len(brandsSecond) != len(brandsFirst) {
		t.Errorf("reseed duplicated brands: %d -> %d", len(brandsFirst), len(brandsSecond))
	}

	categories, err := models.ListInventoryCategories(ctx, models.CategoryTypeFurniture, nil)
	if err != nil {
		t.Fatalf("ListInventoryCategories: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("expected seeded furniture root categories")
	}
}

func TestFoamVariantUpsertDoesNotDuplicate(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	if err := models.EnsureInventorySeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	brands, err := models.ListFoamBrands(ctx)
	if err != nil || len(brands) == 0 {
		t.Fatalf("ListFoamBrands: %v (%d brands)", err, len(brands))
	}
	foamModels, err := models.ListFoamModels(ctx, &brands[0].ID)
	if err != nil {
		t.Fatalf("ListFoamModels: %v", err)
	}
	if len(foamModels) == 0 {
		foamModel, err := models.UpsertFoamModel(ctx, &models.NewFoamModel{BrandId: brands[0].ID, Name: "Classic"})
		if err != nil {
			t.Fatalf("UpsertFoamModel: %v", err)
		}
		foamModels = append(foamModels, *foamModel)
	}
	sizes, err := models.ListBedSizes(ctx)
	if err != nil || len(sizes) == 0 {
		t.Fatalf("ListBedSizes: %v", err)
	}
	thicknesses, err := models.ListFoamThicknesses(ctx)
	if err != nil || len(thicknesses) == 0 {
		t.Fatalf("ListFoamThicknesses: %v", err)
	}

	input := &models.NewFoamVariant{
		FoamModelId:  foamModels[0].ID,
		BedSizeId:    sizes[0].ID,
		ThicknessId:  thicknesses[0].ID,
		QtyOnHand:    10,
		ReorderLevel: 2,
		SalePricePKR: 18000,
	}
	first, err := models.UpsertFoamVariant(ctx, input)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	input.QtyOnHand = 4
	second, err := models.UpsertFoamVariant(ctx, input)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a new row: %d vs %d", second.ID, first.ID)
	}
	if second.QtyOnHand != 4 {
		t.Fatalf("upsert should overwrite quantity, got %d", second.QtyOnHand)
	}
}

func TestFurnitureStatusFollowsVariantStock(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	if err := models.EnsureInventorySeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	categories, err := models.ListInventoryCategories(ctx, models.CategoryTypeFurniture, nil)
	if err != nil || len(categories) == 0 {
		t.Fatalf("ListInventoryCategories: %v", err)
	}

	item, err := models.CreateFurnitureItem(ctx, &models.NewFurnitureItem{
		Name:       "Test Bed Set",
		CategoryId: categories[0].ID,
	})
	if err != nil {
		t.Fatalf("CreateFurnitureItem: %v", err)
	}
	if item.Status != models.FurnitureStatusInStock {
		t.Fatalf("new item status = %s", item.Status)
	}

	sizes, err := models.ListBedSizes(ctx)
	if err != nil || len(sizes) < 2 {
		t.Fatalf("ListBedSizes: %v", err)
	}

	full, err := models.UpsertFurnitureVariant(ctx, &models.NewFurnitureVariant{
		FurnitureItemId: item.ID,
		BedSizeId:       &sizes[0].ID,
		QtyOnHand:       5,
	})
	if err != nil {
		t.Fatalf("variant 1: %v", err)
	}
	if _, err := models.UpsertFurnitureVariant(ctx, &models.NewFurnitureVariant{
		FurnitureItemId: item.ID,
		BedSizeId:       &sizes[1].ID,
		QtyOnHand:       0,
	}); err != nil {
		t.Fatalf("variant 2: %v", err)
	}

	refreshed, err := models.GetFurnitureItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetFurnitureItem: %v", err)
	}
	if refreshed.Status != models.FurnitureStatusInStock {
		t.Fatalf("item with stock should be IN_STOCK, got %s", refreshed.Status)
	}

	// Draining the last stocked variant flips the item to OUT_OF_STOCK.
	movement, err := models.AdjustStock(ctx, &models.NewStockAdjustment{
		InventoryType: models.InventoryKindFurnitureVariant,
		VariantId:     full.ID,
		QtyChange:     -5,
		Notes:         "sold the last sets",
	})
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if movement.MovementType != "Stock Out" {
		t.Errorf("negative delta should default to Stock Out, got %q", movement.MovementType)
	}

	refreshed, err = models.GetFurnitureItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetFurnitureItem after adjust: %v", err)
	}
	if refreshed.Status != models.FurnitureStatusOutOfStock {
		t.Fatalf("drained item should be OUT_OF_STOCK, got %s", refreshed.Status)
	}

	movements, err := models.ListStockMovements(ctx, 10)
	if err != nil {
		t.Fatalf("ListStockMovements: %v", err)
	}
	if len(movements) == 0 || movements[0].QtyChange != -5 {
		t.Fatalf("expected the adjustment on top of the movement log, got %+v", movements)
	}
}

func TestAdjustStockUnknownVariant(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	_, err := models.AdjustStock(ctx, &models.NewStockAdjustment{
		InventoryType: models.InventoryKindHardwareMaterial,
		VariantId:     99999,
		QtyChange:     3,
	})
	if err == nil {
		t.Fatal("expected error for unknown hardware material")
	}
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("workshop-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=workshop_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}

func TestMadeToOrderStatusIsSticky(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	if err := models.EnsureInventorySeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	categories, err := models.ListInventoryCategories(ctx, models.CategoryTypeFurniture, nil)
	if err != nil || len(categories) == 0 {
		t.Fatalf("ListInventoryCategories: %v", err)
	}
	sizes, err := models.ListBedSizes(ctx)
	if err != nil || len(sizes) == 0 {
		t.Fatalf("ListBedSizes: %v", err)
	}

	item, err := models.CreateFurnitureItem(ctx, &models.NewFurnitureItem{
		Name:       "Custom Carved Bed",
		Status:     models.FurnitureStatusMadeToOrder,
		CategoryId: categories[0].ID,
	})
	if err != nil {
		t.Fatalf("CreateFurnitureItem: %v", err)
	}

	// Stock math never moves an item out of MADE_TO_ORDER, no matter
	// which way the quantities swing.
	variant, err := models.UpsertFurnitureVariant(ctx, &models.NewFurnitureVariant{
		FurnitureItemId: item.ID,
		BedSizeId:       &sizes[0].ID,
		QtyOnHand:       4,
	})
	if err != nil {
		t.Fatalf("UpsertFurnitureVariant: %v", err)
	}

	assertStatus := func(step string) {
		t.Helper()
		refreshed, err := models.GetFurnitureItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetFurnitureItem (%s): %v", step, err)
		}
		if refreshed.Status != models.FurnitureStatusMadeToOrder {
			t.Fatalf("status after %s = %s, want MADE_TO_ORDER", step, refreshed.Status)
		}
	}
	assertStatus("upsert with stock")

	if _, err := models.AdjustStock(ctx, &models.NewStockAdjustment{
		InventoryType: models.InventoryKindFurnitureVariant,
		VariantId:     variant.ID,
		QtyChange:     -4,
	}); err != nil {
		t.Fatalf("drain: %v", err)
	}
	assertStatus("draining to zero")

	if _, err := models.AdjustStock(ctx, &models.NewStockAdjustment{
		InventoryType: models.InventoryKindFurnitureVariant,
		VariantId:     variant.ID,
		QtyChange:     10,
	}); err != nil {
		t.Fatalf("refill: %v", err)
	}
	assertStatus("refilling")
}

func TestRecomputeStatusForMissingItemIsNoop(t *testing.T) {
	startIntegrationDB(t)
	ctx := context.Background()

	// A vanished item is not an error; anything else from the lookup
	// must surface.
	if err := models.RecomputeFurnitureItemStatus(ctx, 424242); err != nil {
		t.Fatalf("recompute for a missing item: %v", err)
	}
}
