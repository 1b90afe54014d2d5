package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nusratfurniture/workshop_backend/models"
	"github.com/nusratfurniture/workshop_backend/utils"
)

func listEmployeesHandler(c *gin.Context) {
	status := models.EmployeeStatus(c.Query("status"))
	employees, err := models.ListEmployees(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      employees,
		"categories": models.EmployeeCategories,
		"work_types": models.EmployeeWorkTypes,
	})
}

func createEmployeeHandler(c *gin.Context) {
	var input models.NewEmployee
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	employee, err := models.CreateEmployee(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func updateEmployeeHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewEmployee
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	employee, err := models.UpdateEmployee(c.Request.Context(), id, &input)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employee)
}

// employeeProfileHandler returns the full profile page payload: the
// worker, their payout history as a running ledger, the financial
// summary and recent weekly assignments.
func employeeProfileHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	employee, err := models.GetEmployee(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	transactions, err := models.EmployeeTransactions(ctx, id, 1000)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	summary, err := models.EmployeeFinancialSummary(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	assignments, err := models.ListAssignmentsForEmployee(ctx, id, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee": employee,
		"summary":  summary,
		"summary_display": gin.H{
			"advance":         utils.FormatPKR(summary.Advance),
			"paid":            utils.FormatPKR(summary.Paid),
			"advance_balance": utils.FormatPKR(summary.AdvanceBalance),
		},
		"ledger":      models.BuildLedger(transactions),
		"assignments": assignments,
	})
}

func syncEmployeesHandler(c *gin.Context) {
	created, err := models.SyncEmployeesFromTransactions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created_employees": created})
}

func createAssignmentHandler(c *gin.Context) {
	var input models.NewWeeklyAssignment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	assignment, err := models.CreateWeeklyAssignment(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func updateAssignmentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewWeeklyAssignment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	assignment, err := models.UpdateWeeklyAssignment(c.Request.Context(), id, &input)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func adminSeedHandler(c *gin.Context) {
	ctx := c.Request.Context()
	createdEmployees, createdTransactions, err := models.EnsureDemoData(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if _, err := models.SyncEmployeesFromTransactions(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"created_employees":    createdEmployees,
		"created_transactions": createdTransactions,
	})
}

func queryInt(c *gin.Context, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
