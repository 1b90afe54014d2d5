package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/middlewares"
	"github.com/nusratfurniture/workshop_backend/models"
	"github.com/nusratfurniture/workshop_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const defaultPort = "8080"

var tracer = otel.Tracer("workshop-backend")

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server first; app endpoints return 503 until the
	// database connection is up.
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("token", "Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")
	corsConfig.AllowCredentials = true

	r.Use(cors.New(corsConfig))
	r.Use(customErrorLogger(logger))
	r.Use(middlewares.AuthMiddleware())

	registerRoutes(r)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	startupCtx := context.Background()
	if err := models.EnsureAdminUser(startupCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "admin user"}).Error(err.Error())
	}
	if err := models.SeedInventoryOnStartup(startupCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "inventory seed"}).Error(err.Error())
	}

	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

func registerRoutes(r *gin.Engine) {
	r.POST("/api/login", loginHandler)

	api := r.Group("/api", middlewares.RequireAuth())

	api.GET("/transactions", listTransactionsHandler)
	api.POST("/transactions", createTransactionHandler)
	api.GET("/transactions/suggestions", transactionSuggestionsHandler)
	api.GET("/transactions/:id", getTransactionHandler)
	api.PUT("/transactions/:id", updateTransactionHandler)
	api.DELETE("/transactions/:id", deleteTransactionHandler)

	api.GET("/employees", listEmployeesHandler)
	api.POST("/employees", createEmployeeHandler)
	api.GET("/employees/:id", employeeProfileHandler)
	api.PUT("/employees/:id", updateEmployeeHandler)
	api.POST("/employees/sync", syncEmployeesHandler)
	api.POST("/assignments", createAssignmentHandler)
	api.PUT("/assignments/:id", updateAssignmentHandler)

	api.GET("/inventory/categories", listInventoryCategoriesHandler)
	api.GET("/inventory/bed-sizes", listBedSizesHandler)
	api.GET("/inventory/thicknesses", listThicknessesHandler)
	api.GET("/inventory/brands", listFoamBrandsHandler)
	api.GET("/inventory/foam/models", listFoamModelsHandler)
	api.POST("/inventory/foam/models", upsertFoamModelHandler)
	api.DELETE("/inventory/foam/models/:id", deleteFoamModelHandler)
	api.GET("/inventory/foam", foamCardsHandler)
	api.POST("/inventory/foam/variants", upsertFoamVariantHandler)
	api.GET("/inventory/furniture", furnitureCardsHandler)
	api.POST("/inventory/furniture", createFurnitureItemHandler)
	api.GET("/inventory/furniture/:id", furnitureItemDetailHandler)
	api.DELETE("/inventory/furniture/:id", deleteFurnitureItemHandler)
	api.POST("/inventory/furniture/variants", upsertFurnitureVariantHandler)
	api.GET("/inventory/sofas", listSofasHandler)
	api.POST("/inventory/sofas", createSofaHandler)
	api.PUT("/inventory/sofas/:id", updateSofaHandler)
	api.DELETE("/inventory/sofas/:id", deleteSofaHandler)
	api.GET("/inventory/hardware", listHardwareHandler)
	api.POST("/inventory/hardware", createHardwareHandler)
	api.PUT("/inventory/hardware/:id", updateHardwareHandler)
	api.DELETE("/inventory/hardware/:id", deleteHardwareHandler)
	api.GET("/inventory/poshish", listPoshishHandler)
	api.POST("/inventory/poshish", createPoshishHandler)
	api.PUT("/inventory/poshish/:id", updatePoshishHandler)
	api.DELETE("/inventory/poshish/:id", deletePoshishHandler)
	api.POST("/inventory/adjust", adjustStockHandler)
	api.GET("/inventory/movements", listStockMovementsHandler)
	api.GET("/inventory/low-stock", lowStockHandler)

	api.GET("/reports", reportsHandler)
	api.GET("/export/xlsx", exportExcelHandler)
	api.GET("/export/csv", exportCSVHandler)

	api.POST("/uploads/image", uploadImageHandler)

	api.POST("/admin/seed", adminSeedHandler)
	api.GET("/admin/transactions-unique.csv", exportUniqueNamesHandler)
}

// customErrorLogger logs only requests that accumulated gin errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			fields := logrus.Fields{}
			if cid, ok := utils.GetCorrelationIdFromContext(c.Request.Context()); ok {
				fields["correlation_id"] = cid
			}
			if userName, ok := utils.GetUserNameFromContext(c.Request.Context()); ok {
				fields["user"] = userName
			}
			logger.WithFields(fields).Error(c.Errors.String())
		}
	}
}

func bindingErrorResponse(err error) gin.H {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return gin.H{"error": "validation failed", "fields": utils.ProcessValidationErrors(validationErrors)}
	}
	return gin.H{"error": err.Error()}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
