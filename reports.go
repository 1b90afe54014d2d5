package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nusratfurniture/workshop_backend/models"
	"github.com/nusratfurniture/workshop_backend/utils"
)

func reportAnchor(c *gin.Context) time.Time {
	anchor, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		return utils.DateOnly(time.Now())
	}
	return anchor
}

func reportsHandler(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "reports.build")
	defer span.End()

	period := models.ReportPeriod(c.DefaultQuery("period", "daily"))
	filter := transactionFilterFromQuery(c)

	report, err := models.BuildReport(ctx, period, reportAnchor(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func exportFileName(ext string) string {
	return "transactions-" + utils.FormatDate(time.Now()) + ext
}

func exportExcelHandler(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "export.xlsx")
	defer span.End()

	filter := transactionFilterFromQuery(c)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+exportFileName(".xlsx")+`"`)
	if err := models.ExportTransactionsExcel(ctx, c.Writer, filter); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}

func exportCSVHandler(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "export.csv")
	defer span.End()

	filter := transactionFilterFromQuery(c)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+exportFileName(".csv")+`"`)
	if err := models.ExportTransactionsCSV(ctx, c.Writer, filter); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}

// exportUniqueNamesHandler is the payee-dedup helper export: every
// distinct name/category pair with its row count, for cleaning up
// misspelled payees.
func exportUniqueNamesHandler(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "export.unique-names")
	defer span.End()

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="transactions-unique.csv"`)
	if err := models.ExportUniqueNamesCSV(ctx, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}
