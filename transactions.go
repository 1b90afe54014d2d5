package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nusratfurniture/workshop_backend/config"
	"github.com/nusratfurniture/workshop_backend/models"
	"github.com/nusratfurniture/workshop_backend/utils"
)

// suggestedNamesCacheKey caches the distinct-payee list between form
// loads; any transaction write invalidates it.
const suggestedNamesCacheKey = "workshop:suggested-names"

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// transactionFilterFromQuery maps list/report query params onto the
// shared filter. Bad dates are dropped, not rejected, like the rest of
// the filter fields.
func transactionFilterFromQuery(c *gin.Context) models.TransactionFilter {
	filter := models.TransactionFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Name:     c.Query("name"),
		Q:        c.Query("q"),
	}
	if from, err := utils.ParseDate(c.Query("from_date")); err == nil {
		filter.FromDate = &from
	}
	if to, err := utils.ParseDate(c.Query("to_date")); err == nil {
		filter.ToDate = &to
	}
	return filter
}

func listTransactionsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	filter := transactionFilterFromQuery(c)
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := models.ListTransactions(ctx, filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totals, err := models.TransactionTotals(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "totals": totals})
}

func createTransactionHandler(c *gin.Context) {
	var input models.NewTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	transaction, err := models.CreateTransaction(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_ = config.DeleteRedisKey(suggestedNamesCacheKey)
	c.JSON(http.StatusCreated, transaction)
}

func getTransactionHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	transaction, err := models.GetTransaction(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func updateTransactionHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	transaction, err := models.UpdateTransaction(c.Request.Context(), id, &input)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_ = config.DeleteRedisKey(suggestedNamesCacheKey)
	c.JSON(http.StatusOK, transaction)
}

func deleteTransactionHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	transaction, err := models.SoftDeleteTransaction(c.Request.Context(), id)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	_ = config.DeleteRedisKey(suggestedNamesCacheKey)
	c.JSON(http.StatusOK, transaction)
}

// transactionSuggestionsHandler feeds the form autocompletes: distinct
// payee names plus the fixed and historical category lists.
func transactionSuggestionsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var names []string
	cached, err := config.GetRedisObject(suggestedNamesCacheKey, &names)
	if err != nil || !cached {
		names, err = models.DistinctTransactionNames(ctx, 200)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		_ = config.SetRedisObject(suggestedNamesCacheKey, names, time.Minute)
	}
	historical, err := models.DistinctTransactionCategories(ctx, 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, list := range [][]string{models.IncomingCategories, models.OutgoingCategories, historical} {
		for _, category := range list {
			if !seen[category] {
				seen[category] = true
				categories = append(categories, category)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"suggested_names":     names,
		"filter_categories":   categories,
		"incoming_categories": models.IncomingCategories,
		"outgoing_categories": models.OutgoingCategories,
		"payment_methods":     models.PaymentMethods,
		"today":               utils.FormatDate(time.Now()),
	})
}
