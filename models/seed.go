package models

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/utils"
)

type seedBedSize struct {
	label        string
	widthIn      int
	lengthIn     int
	widthFtX100  *int
	lengthFtX100 *int
	sortOrder    int
}

func ftX100(v int) *int {
	return &v
}

// EnsureInventorySeed upserts the fixed starter catalog: the category
// tree, bed sizes, foam thicknesses, brands and models. Every row goes
// through its upsert, so running it again is a no-op.
func EnsureInventorySeed(ctx context.Context) error {

	furnitureRoot, err := UpsertInventoryCategory(ctx, CategoryTypeFurniture, nil, "Furniture")
	if err != nil {
		return err
	}
	foamRoot, err := UpsertInventoryCategory(ctx, CategoryTypeFoam, nil, "Foam")
	if err != nil {
		return err
	}

	bedSets, err := UpsertInventoryCategory(ctx, CategoryTypeFurniture, &furnitureRoot.ID, "Bed Set")
	if err != nil {
		return err
	}
	for _, name := range []string{
		"Single Bed",
		"Double Bed",
		"Almari",
		"Showcase",
		"Side Table",
		"Dressing Table",
	} {
		if _, err := UpsertInventoryCategory(ctx, CategoryTypeFurniture, &furnitureRoot.ID, name); err != nil {
			return err
		}
	}
	for _, name := range []string{"Cushion Bed Set", "Tahli Bed Set", "Kicker + V-Board", "Other"} {
		if _, err := UpsertInventoryCategory(ctx, CategoryTypeFurniture, &bedSets.ID, name); err != nil {
			return err
		}
	}
	if _, err := UpsertInventoryCategory(ctx, CategoryTypeFoam, &foamRoot.ID, "Mattress / Foam Inventory"); err != nil {
		return err
	}

	bedSizes := []seedBedSize{
		{"Single Bed (42×78)", 42, 78, ftX100(350), ftX100(650), 10},
		{"Single Slim (39×78)", 39, 78, ftX100(325), ftX100(650), 20},
		{"Single Slim (36×72)", 36, 72, ftX100(300), ftX100(600), 30},
		{"Double / Queen 1 (60×78)", 60, 78, ftX100(500), ftX100(650), 40},
		{"Super Queen / Queen 2 (66×78)", 66, 78, ftX100(550), ftX100(650), 50},
		{"King (72×78)", 72, 78, ftX100(600), ftX100(650), 60},
		{"King XL (78×84)", 78, 84, ftX100(650), ftX100(700), 70},
		{"Custom Size (manual)", 0, 0, nil, nil, 999},
	}
	for _, size := range bedSizes {
		_, err := UpsertBedSize(ctx, size.label, size.widthIn, size.lengthIn, size.widthFtX100, size.lengthFtX100, size.sortOrder)
		if err != nil {
			return err
		}
	}

	for i, inches := range []int{4, 5, 6, 8, 10, 12} {
		if _, err := UpsertFoamThickness(ctx, inches, i+1); err != nil {
			return err
		}
	}

	brandIds := map[string]int{}
	for _, name := range []string{
		"MoltyFoam",
		"Diamond Supreme",
		"Cannon Primax",
		"Alkhair",
		"Al Shafi",
		"DuraFoam",
		"i-Foam",
		"Mehran",
		"Unifoam",
		"Other",
	} {
		brand, err := UpsertFoamBrand(ctx, name)
		if err != nil {
			return err
		}
		brandIds[name] = brand.ID
	}

	foamModels := []struct {
		brand string
		name  string
	}{
		{"MoltyFoam", "Master"},
		{"MoltyFoam", "Celeste"},
		{"MoltyFoam", "Bravo"},
		{"MoltyFoam", "MoltyOrtho"},
		{"MoltyFoam", "MoltySpring"},
		{"Diamond Supreme", "Supreme Series"},
		{"Diamond Supreme", "Mr. Foam"},
		{"Unifoam", "Shaheen Foam"},
		{"Unifoam", "Dream Foam"},
		{"Cannon Primax", "Primax"},
		{"Cannon Primax", "Primax Bachat"},
	}
	for _, model := range foamModels {
		_, err := UpsertFoamModel(ctx, &NewFoamModel{BrandId: brandIds[model.brand], Name: model.name})
		if err != nil {
			return err
		}
	}

	return nil
}

// SeedInventoryOnStartup runs the catalog seed once per boot, under a
// short redis lock when redis is up so parallel replicas don't race
// each other through the upserts. The seed itself is idempotent; the
// lock just keeps startup quiet.
func SeedInventoryOnStartup(ctx context.Context) error {

	locker := config.GetRedisLock()
	if locker != nil {
		lock, err := locker.Obtain(ctx, "workshop:inventory-seed", 30*time.Second, nil)
		if err == nil {
			defer lock.Release(ctx)
		} else if err != redislock.ErrNotObtained {
			config.LogError(config.GetLogger(), "models", "SeedInventoryOnStartup", "obtain lock", nil, err)
		}
	}

	return EnsureInventorySeed(ctx)
}

// EnsureDemoData inserts a small marker-tagged sample data set for
// fresh installs: four workers and their first week of ledger entries.
// A second run finds the marker and does nothing.
func EnsureDemoData(ctx context.Context) (int, int, error) {

	const marker = "seed_v1"

	seedEmployees := []NewEmployee{
		{FullName: "Murtaza", Category: "Supervisor / Office Staff", WorkType: "contract", Status: EmployeeStatusActive},
		{FullName: "Waseem", Category: "Polish Worker", WorkType: "daily", Status: EmployeeStatusActive},
		{FullName: "Razaq", Category: "Upholstery / Poshish Worker", WorkType: "daily", Status: EmployeeStatusActive},
		{FullName: "Yaseen", Category: "Helper / Mazdoor", WorkType: "daily", Status: EmployeeStatusActive},
	}

	db := config.GetDB()
	createdEmployees := 0
	byName := map[string]*Employee{}
	for i := range seedEmployees {
		input := seedEmployees[i]
		var employee Employee
		err := db.WithContext(ctx).Model(&Employee{}).
			Where("LOWER(TRIM(full_name)) = LOWER(?)", input.FullName).
			Take(&employee).Error
		if err != nil {
			created, err := CreateEmployee(ctx, &input)
			if err != nil {
				return createdEmployees, 0, err
			}
			employee = *created
			createdEmployees++
		}
		byName[utils.LowerTrim(employee.FullName)] = &employee
	}

	var seeded int64
	err := db.WithContext(ctx).Model(&Transaction{}).
		Where("is_deleted = ?", false).
		Where("reference = ?", marker).
		Count(&seeded).Error
	if err != nil {
		return createdEmployees, 0, err
	}
	if seeded > 0 {
		return createdEmployees, 0, nil
	}

	today := utils.FormatDate(time.Now())
	createdTransactions := 0

	_, err = CreateTransaction(ctx, &NewTransaction{
		Type:      TransactionTypeIncoming,
		Date:      today,
		AmountPKR: 250000,
		Category:  IncomingCategories[0],
		Name:      "Customer",
		BillNo:    "SEED-1",
		Notes:     "seed",
		Reference: marker,
	})
	if err != nil {
		return createdEmployees, createdTransactions, err
	}
	createdTransactions++

	payouts := []struct {
		name   string
		amount int64
		txType EmployeeTxType
	}{
		{"waseem", 9000, EmployeeTxTypeSalary},
		{"razaq", 7000, EmployeeTxTypeSalary},
		{"yaseen", 1500, EmployeeTxTypeAdvance},
	}
	for _, payout := range payouts {
		input := NewTransaction{
			Type:           TransactionTypeOutgoing,
			Date:           today,
			AmountPKR:      payout.amount,
			Category:       "Employee",
			Notes:          "seed",
			EmployeeTxType: &payout.txType,
			PaymentMethod:  PaymentMethods[0],
			Reference:      marker,
		}
		if employee := byName[payout.name]; employee != nil {
			input.EmployeeId = &employee.ID
		}
		if _, err := CreateTransaction(ctx, &input); err != nil {
			return createdEmployees, createdTransactions, err
		}
		createdTransactions++
	}

	return createdEmployees, createdTransactions, nil
}
