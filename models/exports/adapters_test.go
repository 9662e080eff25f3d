package exports

import (
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/depot_backend/models"
	"bitbucket.org/mmdatafocus/depot_backend/utils"
	"github.com/shopspring/decimal"
)

func labels(row Row) []string {
	out := make([]string, 0, len(row))
	for _, cell := range row {
		out = append(out, cell.Label)
	}
	return out
}

func assertLabels(t *testing.T, row Row, want []string) {
	t.Helper()
	got := labels(row)
	if len(got) != len(want) {
		t.Fatalf("got %d labels %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOrderRowsLabelsFixed(t *testing.T) {
	orders := []*models.Order{{
		ID:           1,
		OrderNumber:  "ORD-000001",
		CustomerName: "U Ba",
		OrderDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Total:        decimal.NewFromInt(90),
		Items: []models.OrderItem{
			{Name: "Rice", Qty: decimal.NewFromInt(2)},
			{Name: "Oil", Qty: decimal.NewFromInt(1)},
		},
	}}

	rows := OrderRows(orders)
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	assertLabels(t, rows[0], []string{
		"Order No", "Date", "Customer", "Items", "Total",
		"Status", "Payment", "Credit Balance", "Cheque Balance", "Notes",
	})

	if rows[0][3].Value != "Rice x 2; Oil x 1" {
		t.Errorf("items cell = %v", rows[0][3].Value)
	}
}

func TestProductRowsLabelsAndDefaults(t *testing.T) {
	products := []*models.Product{{Name: "Rice"}} // IsActive nil

	rows := ProductRows(products)
	assertLabels(t, rows[0], []string{"Name", "SKU", "Unit", "Unit Price", "Stock Qty", "Active"})
	if rows[0][5].Value != true {
		t.Errorf("nil IsActive should default to true, got %v", rows[0][5].Value)
	}
}

func TestCustomerRowsLabels(t *testing.T) {
	customers := []*models.Customer{{Name: "U Ba", IsActive: utils.NewFalse()}}

	rows := CustomerRows(customers)
	assertLabels(t, rows[0], []string{"Name", "Email", "Phone", "Address", "Outstanding Balance", "Notes", "Active"})
	if rows[0][6].Value != false {
		t.Errorf("active cell = %v", rows[0][6].Value)
	}
}

func TestSupplierRowsLabels(t *testing.T) {
	rows := SupplierRows([]*models.Supplier{{Name: "Depot Co"}})
	assertLabels(t, rows[0], []string{"Name", "Contact", "Email", "Phone", "Address", "Notes", "Active"})
}

func TestDriverAllocationRowsLabels(t *testing.T) {
	rows := DriverAllocationRows([]*models.DriverAllocation{{UserName: "Driver One", ProductName: "Rice"}})
	assertLabels(t, rows[0], []string{"Date", "Driver", "Product", "Quantity", "Notes"})
}

func TestDriverSaleRowsLabels(t *testing.T) {
	rows := DriverSaleRows([]*models.DriverSale{{UserName: "Driver One", CustomerName: "U Ba"}})
	assertLabels(t, rows[0], []string{"Date", "Driver", "Customer", "Amount", "Payment", "Notes"})
}

func TestUserRowsLabelsAndNilEmail(t *testing.T) {
	rows := UserRows([]*models.User{{Username: "staff1", Name: "Staff One", Role: models.UserRoleStaff}})
	assertLabels(t, rows[0], []string{"Username", "Name", "Email", "Phone", "Role", "Active"})
	if rows[0][2].Value != "" {
		t.Errorf("nil email should default to empty string, got %v", rows[0][2].Value)
	}
}
