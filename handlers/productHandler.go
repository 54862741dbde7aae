package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsoftware/billing_backend/models"
)

func CreateProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		product, err := models.CreateProduct(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "productHandler.go", "CreateProductHandler", err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		var input models.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		product, err := models.UpdateProduct(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "productHandler.go", "UpdateProductHandler", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func DisableProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		product, err := models.ToggleActiveProduct(c.Request.Context(), id, false)
		if err != nil {
			respondError(c, "productHandler.go", "DisableProductHandler", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func GetProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		product, err := models.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, "productHandler.go", "GetProductHandler", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func ListProductsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := models.GetProducts(c.Request.Context(), queryString(c, "name"))
		if err != nil {
			respondError(c, "productHandler.go", "ListProductsHandler", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
