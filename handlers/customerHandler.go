package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsoftware/billing_backend/models"
)

func CreateCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewCustomer
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		customer, err := models.CreateCustomer(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "customerHandler.go", "CreateCustomerHandler", err)
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func UpdateCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		var input models.NewCustomer
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		customer, err := models.UpdateCustomer(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "customerHandler.go", "UpdateCustomerHandler", err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func DisableCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		customer, err := models.ToggleActiveCustomer(c.Request.Context(), id, false)
		if err != nil {
			respondError(c, "customerHandler.go", "DisableCustomerHandler", err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func GetCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		customer, err := models.GetCustomer(c.Request.Context(), id)
		if err != nil {
			respondError(c, "customerHandler.go", "GetCustomerHandler", err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func ListCustomersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := models.GetCustomers(c.Request.Context(), queryString(c, "name"))
		if err != nil {
			respondError(c, "customerHandler.go", "ListCustomersHandler", err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}
