package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmsoftware/billing_backend/models"
	"github.com/mmsoftware/billing_backend/models/reports"
)

func CreateBillHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewBill
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		bill, err := models.CreateBill(c.Request.Context(), &input)
		if err != nil {
			respondError(c, "billHandler.go", "CreateBillHandler", err)
			return
		}
		c.JSON(http.StatusCreated, bill)
	}
}

func GetBillHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		bill, err := models.GetBill(c.Request.Context(), id)
		if err != nil {
			respondError(c, "billHandler.go", "GetBillHandler", err)
			return
		}
		c.JSON(http.StatusOK, bill)
	}
}

func ListBillsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page := queryInt(c, "page", 0)
		size := queryInt(c, "size", models.DefaultPageSize)
		search := queryString(c, "search")

		result, err := models.ListBills(c.Request.Context(), page, size, search)
		if err != nil {
			respondError(c, "billHandler.go", "ListBillsHandler", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func UpdateBillHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		var input models.NewBill
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		bill, err := models.UpdateBill(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, "billHandler.go", "UpdateBillHandler", err)
			return
		}
		c.JSON(http.StatusOK, bill)
	}
}

func CancelBillHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathId(c, "id")
		if !ok {
			return
		}

		bill, err := models.CancelBill(c.Request.Context(), id)
		if err != nil {
			respondError(c, "billHandler.go", "CancelBillHandler", err)
			return
		}
		c.JSON(http.StatusOK, bill)
	}
}

// ExportBillsHandler streams the bill register for a date range as xlsx.
// Dates are YYYY-MM-DD; an empty range defaults to the last 30 days.
func ExportBillsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		toDate := time.Now().UTC()
		fromDate := toDate.AddDate(0, 0, -30)

		if v := c.Query("from_date"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from_date"})
				return
			}
			fromDate = parsed
		}
		if v := c.Query("to_date"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to_date"})
				return
			}
			// inclusive end of day
			toDate = parsed.Add(24*time.Hour - time.Nanosecond)
		}

		data, err := reports.GetBillRegisterReport(c.Request.Context(), fromDate, toDate)
		if err != nil {
			respondError(c, "billHandler.go", "ExportBillsHandler", err)
			return
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bills_%s.xlsx", time.Now().UTC().Format("20060102")))
		if err := reports.ExportBillRegisterExcel(c.Writer, data); err != nil {
			respondError(c, "billHandler.go", "ExportBillsHandler", err)
		}
	}
}
