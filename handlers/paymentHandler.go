package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmsoftware/billing_backend/models"
)

func CreatePaymentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		payment, err := models.CreatePayment(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "paymentHandler.go", "CreatePaymentHandler", err)
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

func GetPaymentByBillHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		billId, ok := pathId(c, "billId")
		if !ok {
			return
		}

		payment, err := models.GetPaymentByBillId(c.Request.Context(), billId)
		if err != nil {
			respondError(c, "paymentHandler.go", "GetPaymentByBillHandler", err)
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}
