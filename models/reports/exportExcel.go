package reports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Pallab-Dutta/KhidkiVada/models"
	"github.com/xuri/excelize/v2"
)

// ExportOrdersExcel writes the orders register as an XLSX workbook to w.
// One row per order with its derived totals; amounts as plain 2-decimal
// strings so spreadsheets don't re-round them.
func ExportOrdersExcel(ctx context.Context, w http.ResponseWriter, filter models.OrderFilter) error {
	orders, err := models.ListOrders(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	_, err = f.NewSheet("Sheet1")
	if err != nil {
		return err
	}

	// Add headers
	f.SetCellValue("Sheet1", "A1", "OrderNo")
	f.SetCellValue("Sheet1", "B1", "OrderDate")
	f.SetCellValue("Sheet1", "C1", "Client")
	f.SetCellValue("Sheet1", "D1", "ClientType")
	f.SetCellValue("Sheet1", "E1", "BatchNo")
	f.SetCellValue("Sheet1", "F1", "Subtotal")
	f.SetCellValue("Sheet1", "G1", "Tax")
	f.SetCellValue("Sheet1", "H1", "GrandTotal")
	f.SetCellValue("Sheet1", "I1", "Paid")
	f.SetCellValue("Sheet1", "J1", "Due")
	f.SetCellValue("Sheet1", "K1", "Status")

	// Add data
	for i, o := range orders {
		totals := o.Totals()
		row := fmt.Sprint(i + 2)
		f.SetCellValue("Sheet1", "A"+row, o.ID)
		f.SetCellValue("Sheet1", "B"+row, o.OrderDate.Format("02-01-2006"))
		f.SetCellValue("Sheet1", "C"+row, o.ClientName)
		f.SetCellValue("Sheet1", "D"+row, string(o.ClientType))
		f.SetCellValue("Sheet1", "E"+row, o.BatchNo)
		f.SetCellValue("Sheet1", "F"+row, totals.Subtotal.StringFixed(2))
		f.SetCellValue("Sheet1", "G"+row, totals.Tax.Total().StringFixed(2))
		f.SetCellValue("Sheet1", "H"+row, totals.GrandTotal.StringFixed(2))
		f.SetCellValue("Sheet1", "I"+row, totals.Paid.StringFixed(2))
		f.SetCellValue("Sheet1", "J"+row, totals.Due.StringFixed(2))
		f.SetCellValue("Sheet1", "K"+row, string(o.CurrentStatus))
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=orders.xlsx")
	return f.Write(w)
}
