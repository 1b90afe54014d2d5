// seed-admin provisions the login user and the baseline inventory catalog
// without starting the HTTP server. Useful for fresh databases and CI.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
//
// ADMIN_USER / ADMIN_PASSWORD override the default admin credentials.
// Pass -demo to also insert the demo employees and marker transactions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/models"
)

func main() {
	demo := flag.Bool("demo", false, "also insert demo employees and transactions")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	if err := models.EnsureAdminUser(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to ensure admin user: %v\n", err)
		os.Exit(1)
	}
	if err := models.EnsureInventorySeed(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed inventory catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("admin user and inventory catalog ready")

	if *demo {
		employees, transactions, err := models.EnsureDemoData(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed demo data: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("demo data ready (%d employees, %d transactions created)\n", employees, transactions)
	}
}
