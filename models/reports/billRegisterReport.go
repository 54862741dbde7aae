package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mmsoftware/billing_backend/config"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type BillRegisterRow struct {
	BillNumber    string          `json:"billNumber"`
	BillDate      time.Time       `json:"billDate"`
	CustomerName  string          `json:"customerName"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	GstAmount     decimal.Decimal `json:"gstAmount"`
	Total         decimal.Decimal `json:"total"`
	CurrentStatus string          `json:"currentStatus"`
}

// GetBillRegisterReport returns every bill issued between fromDate and toDate
// inclusive, newest first. Cancelled bills are included; the register is a
// full audit of the period, not an active listing.
func GetBillRegisterReport(ctx context.Context, fromDate time.Time, toDate time.Time) ([]*BillRegisterRow, error) {

	sql := `
SELECT
    bills.bill_number,
    bills.bill_date,
    bills.customer_name,
    bills.subtotal,
    bills.discount,
    bills.gst_amount,
    bills.total,
    bills.current_status
FROM
    bills
WHERE
    bills.bill_date BETWEEN @fromDate AND @toDate
ORDER BY
    bills.bill_date DESC, bills.id DESC
`

	var results []*BillRegisterRow
	db := config.GetDB()
	err := db.WithContext(ctx).Raw(sql, map[string]interface{}{
		"fromDate": fromDate,
		"toDate":   toDate,
	}).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ExportBillRegisterExcel writes the register rows as an xlsx workbook.
func ExportBillRegisterExcel(w io.Writer, data []*BillRegisterRow) error {
	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	// Add headers
	f.SetCellValue(sheetName, "A1", "BillNumber")
	f.SetCellValue(sheetName, "B1", "BillDate")
	f.SetCellValue(sheetName, "C1", "Customer")
	f.SetCellValue(sheetName, "D1", "Subtotal")
	f.SetCellValue(sheetName, "E1", "Discount")
	f.SetCellValue(sheetName, "F1", "GST")
	f.SetCellValue(sheetName, "G1", "Total")
	f.SetCellValue(sheetName, "H1", "Status")

	// Add data
	for i, d := range data {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+row, d.BillNumber)
		f.SetCellValue(sheetName, "B"+row, d.BillDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, "C"+row, d.CustomerName)
		f.SetCellValue(sheetName, "D"+row, d.Subtotal.String())
		f.SetCellValue(sheetName, "E"+row, d.Discount.String())
		f.SetCellValue(sheetName, "F"+row, d.GstAmount.String())
		f.SetCellValue(sheetName, "G"+row, d.Total.String())
		f.SetCellValue(sheetName, "H"+row, d.CurrentStatus)
	}

	return f.Write(w)
}
