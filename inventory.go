package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nusratfurniture/workshop_backend/models"
	"github.com/nusratfurniture/workshop_backend/utils"
)

func listInventoryCategoriesHandler(c *gin.Context) {
	categoryType := models.CategoryType(c.DefaultQuery("type", string(models.CategoryTypeFurniture)))
	if !categoryType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category type"})
		return
	}
	categories, err := models.ListInventoryCategories(c.Request.Context(), categoryType, queryInt(c, "parent_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories})
}

func listBedSizesHandler(c *gin.Context) {
	sizes, err := models.ListBedSizes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sizes})
}

func listThicknessesHandler(c *gin.Context) {
	thicknesses, err := models.ListFoamThicknesses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": thicknesses})
}

func listFoamBrandsHandler(c *gin.Context) {
	brands, err := models.ListFoamBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": brands})
}

func listFoamModelsHandler(c *gin.Context) {
	foamModels, err := models.ListFoamModels(c.Request.Context(), queryInt(c, "brand_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": foamModels})
}

func upsertFoamModelHandler(c *gin.Context) {
	var input models.NewFoamModel
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	model, err := models.UpsertFoamModel(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model)
}

func deleteFoamModelHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	model, err := models.SoftDeleteFoamModel(c.Request.Context(), id)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "foam model not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model)
}

func foamCardsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	cards, err := models.FoamVariantCards(c.Request.Context(), c.Query("q"), queryInt(c, "brand_id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cards})
}

func upsertFoamVariantHandler(c *gin.Context) {
	var input models.NewFoamVariant
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	variant, err := models.UpsertFoamVariant(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, variant)
}

func furnitureCardsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := models.ListFurnitureItems(ctx, c.Query("q"), queryInt(c, "category_id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cards, err := models.FurnitureCards(ctx, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": cards})
}

func createFurnitureItemHandler(c *gin.Context) {
	var input models.NewFurnitureItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	item, err := models.CreateFurnitureItem(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func furnitureItemDetailHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	item, err := models.GetFurnitureItem(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "furniture item not found"})
		return
	}
	variants, err := models.ListFurnitureVariants(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item, "variants": variants})
}

func deleteFurnitureItemHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := models.SoftDeleteFurnitureItem(c.Request.Context(), id)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "furniture item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func upsertFurnitureVariantHandler(c *gin.Context) {
	var input models.NewFurnitureVariant
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	variant, err := models.UpsertFurnitureVariant(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, variant)
}

func listSofasHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := models.ListSofaItems(c.Request.Context(), c.Query("q"), c.Query("sofa_type"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": models.SofaCards(items)})
}

func createSofaHandler(c *gin.Context) {
	var input models.NewSofaItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	item, err := models.CreateSofaItem(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func updateSofaHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewSofaItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	item, err := models.UpdateSofaItem(c.Request.Context(), id, &input)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "sofa not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func deleteSofaHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := models.SoftDeleteSofaItem(c.Request.Context(), id)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "sofa not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func listHardwareHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := models.ListHardwareMaterials(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": models.HardwareCards(items)})
}

func createHardwareHandler(c *gin.Context) {
	var input models.NewHardwareMaterial
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	material, err := models.CreateHardwareMaterial(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, material)
}

func updateHardwareHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewHardwareMaterial
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	material, err := models.UpdateHardwareMaterial(c.Request.Context(), id, &input)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "hardware material not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, material)
}

func deleteHardwareHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	material, err := models.SoftDeleteHardwareMaterial(c.Request.Context(), id)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "hardware material not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, material)
}

func listPoshishHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := models.ListPoshishMaterials(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": models.PoshishCards(items)})
}

func createPoshishHandler(c *gin.Context) {
	var input models.NewPoshishMaterial
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	material, err := models.CreatePoshishMaterial(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, material)
}

func updatePoshishHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewPoshishMaterial
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	material, err := models.UpdatePoshishMaterial(c.Request.Context(), id, &input)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "poshish material not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, material)
}

func deletePoshishHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	material, err := models.SoftDeletePoshishMaterial(c.Request.Context(), id)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "poshish material not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, material)
}

func adjustStockHandler(c *gin.Context) {
	var input models.NewStockAdjustment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}
	movement, err := models.AdjustStock(c.Request.Context(), &input)
	if err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "inventory item not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, movement)
}

func listStockMovementsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	movements, err := models.ListStockMovements(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": movements})
}

func lowStockHandler(c *gin.Context) {
	ctx := c.Request.Context()
	limit, _ := strconv.Atoi(c.Query("limit"))

	furniture, err := models.LowStockFurniture(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	foam, err := models.LowStockFoam(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"furniture": furniture, "foam": foam})
}
