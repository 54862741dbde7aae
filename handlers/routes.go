package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the REST surface under /api.
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	bills := api.Group("/bills")
	bills.POST("", CreateBillHandler())
	bills.GET("/list", ListBillsHandler())
	bills.GET("/export", ExportBillsHandler())
	bills.GET("/details/:id", GetBillHandler())
	bills.PUT("/:id", UpdateBillHandler())
	bills.PUT("/:id/cancel", CancelBillHandler())

	payments := api.Group("/payments")
	payments.POST("", CreatePaymentHandler())
	payments.GET("/bill/:billId", GetPaymentByBillHandler())

	products := api.Group("/products")
	products.POST("", CreateProductHandler())
	products.GET("", ListProductsHandler())
	products.GET("/:id", GetProductHandler())
	products.PUT("/:id", UpdateProductHandler())
	products.PUT("/:id/disable", DisableProductHandler())

	customers := api.Group("/customers")
	customers.POST("", CreateCustomerHandler())
	customers.GET("", ListCustomersHandler())
	customers.GET("/:id", GetCustomerHandler())
	customers.PUT("/:id", UpdateCustomerHandler())
	customers.PUT("/:id/disable", DisableCustomerHandler())
}
