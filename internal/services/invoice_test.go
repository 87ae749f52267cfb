package services

import (
	"errors"
	"testing"

	"github.com/diewo77/stockbill/internal/apperr"
	"github.com/diewo77/stockbill/internal/models"
)

func newInvoiceFixture(t *testing.T) (*InvoiceService, *StockService, models.User) {
	t.Helper()
	conn := setupServiceDB(t)
	user := seedUser(t, conn, "inv@test")
	stock := NewStockService(conn)
	return NewInvoiceService(conn, stock), stock, user
}

func TestInvoiceCreateDecrementsStock(t *testing.T) {
	svc, stock, user := newInvoiceFixture(t)

	item, err := stock.Create(user.ID, "Widget", dec(t, "100.00"), 10)
	if err != nil {
		t.Fatalf("stock create: %v", err)
	}

	inv, err := svc.Create(user.ID, ComposeInput{
		CustomerName:   "Acme",
		CustomerNumber: "98765",
		Discount:       10,
		Selections: []Selection{
			{StockPublicID: item.PublicID, Name: item.Name, Price: item.Price, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if inv.PublicID == "" || inv.ID == 0 {
		t.Fatal("expected persisted identity")
	}
	if !inv.Subtotal.Equal(dec(t, "300.00")) || !inv.Total.Equal(dec(t, "270.00")) {
		t.Errorf("subtotal/total = %s/%s, want 300.00/270.00", inv.Subtotal, inv.Total)
	}
	if len(inv.Items) != 1 || inv.Items[0].Name != "Widget" {
		t.Fatalf("unexpected items: %+v", inv.Items)
	}

	items, err := stock.List(user.ID)
	if err != nil {
		t.Fatalf("stock list: %v", err)
	}
	if items[0].Quantity != 7 {
		t.Errorf("stock quantity = %d, want 7", items[0].Quantity)
	}
}

func TestInvoiceCreateInsufficientStockLeavesNothingBehind(t *testing.T) {
	svc, stock, user := newInvoiceFixture(t)

	item, err := stock.Create(user.ID, "Scarce", dec(t, "10"), 2)
	if err != nil {
		t.Fatalf("stock create: %v", err)
	}

	_, err = svc.Create(user.ID, ComposeInput{
		CustomerName:   "Acme",
		CustomerNumber: "1",
		Selections: []Selection{
			{StockPublicID: item.PublicID, Name: item.Name, Price: item.Price, Quantity: 5},
		},
	})
	var ise *apperr.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if ise.Name != "Scarce" || ise.Requested != 5 || ise.Available != 2 {
		t.Errorf("error lacks context: %+v", ise)
	}

	// No invoice was persisted and the stock is unchanged.
	invs, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(invs) != 0 {
		t.Fatalf("expected no invoices, got %d", len(invs))
	}
	items, _ := stock.List(user.ID)
	if items[0].Quantity != 2 {
		t.Errorf("stock quantity = %d, want 2", items[0].Quantity)
	}
}

func TestInvoiceCreatePartialShortageRollsBackEarlierDecrements(t *testing.T) {
	svc, stock, user := newInvoiceFixture(t)

	plenty, err := stock.Create(user.ID, "Plenty", dec(t, "50"), 10)
	if err != nil {
		t.Fatalf("stock create: %v", err)
	}
	scarce, err := stock.Create(user.ID, "Scarce", dec(t, "25"), 1)
	if err != nil {
		t.Fatalf("stock create: %v", err)
	}

	_, err = svc.Create(user.ID, ComposeInput{
		CustomerName:   "Acme",
		CustomerNumber: "1",
		Selections: []Selection{
			{StockPublicID: plenty.PublicID, Name: plenty.Name, Price: plenty.Price, Quantity: 2},
			{StockPublicID: scarce.PublicID, Name: scarce.Name, Price: scarce.Price, Quantity: 4},
		},
	})
	var ise *apperr.InsufficientStockError
	if !errors.As(err, &ise) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	// The whole transaction rolled back: neither item lost stock and no
	// orphaned header or items remain.
	items, _ := stock.List(user.ID)
	for _, it := range items {
		switch it.PublicID {
		case plenty.PublicID:
			if it.Quantity != 10 {
				t.Errorf("Plenty quantity = %d, want 10", it.Quantity)
			}
		case scarce.PublicID:
			if it.Quantity != 1 {
				t.Errorf("Scarce quantity = %d, want 1", it.Quantity)
			}
		}
	}
	var headerCount, itemCount int64
	svc.DB.Model(&models.Invoice{}).Count(&headerCount)
	svc.DB.Model(&models.InvoiceItem{}).Count(&itemCount)
	if headerCount != 0 || itemCount != 0 {
		t.Errorf("orphaned rows: headers=%d items=%d", headerCount, itemCount)
	}
}

func TestInvoiceSnapshotIsolation(t *testing.T) {
	svc, stock, user := newInvoiceFixture(t)

	item, err := stock.Create(user.ID, "Widget", dec(t, "100"), 10)
	if err != nil {
		t.Fatalf("stock create: %v", err)
	}
	inv, err := svc.Create(user.ID, ComposeInput{
		CustomerName:   "Acme",
		CustomerNumber: "1",
		Selections: []Selection{
			{StockPublicID: item.PublicID, Name: item.Name, Price: item.Price, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	// Edit then delete the live stock record.
	newPrice := dec(t, "999")
	if _, err := stock.Update(user.ID, item.PublicID, StockPatch{Price: &newPrice}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := stock.Delete(user.ID, item.PublicID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reloaded, err := svc.Get(user.ID, inv.PublicID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reloaded.Items[0].Price.Equal(dec(t, "100")) || !reloaded.Items[0].Total.Equal(dec(t, "200")) {
		t.Errorf("line item changed after stock edits: %+v", reloaded.Items[0])
	}
	if !reloaded.Total.Equal(dec(t, "200")) {
		t.Errorf("invoice total changed after stock edits: %s", reloaded.Total)
	}
}

func TestInvoiceTenantIsolation(t *testing.T) {
	svc, stock, user := newInvoiceFixture(t)
	other := seedUser(t, svc.DB, "other@test")

	item, _ := stock.Create(user.ID, "Widget", dec(t, "10"), 5)
	inv, err := svc.Create(user.ID, ComposeInput{
		CustomerName:   "Acme",
		CustomerNumber: "1",
		Selections:     []Selection{{StockPublicID: item.PublicID, Name: item.Name, Price: item.Price, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var nf *apperr.NotFoundError
	if _, err := svc.Get(other.ID, inv.PublicID); !errors.As(err, &nf) {
		t.Fatalf("cross-owner get should be NotFound, got %v", err)
	}
	invs, err := svc.List(other.ID)
	if err != nil || len(invs) != 0 {
		t.Fatalf("cross-owner list leaked %d invoices (err=%v)", len(invs), err)
	}

	// Other users' stock is invisible to the workflow too.
	if _, err := svc.Create(other.ID, ComposeInput{
		CustomerName:   "Evil",
		CustomerNumber: "2",
		Selections:     []Selection{{StockPublicID: item.PublicID, Name: item.Name, Price: item.Price, Quantity: 1}},
	}); !errors.As(err, &nf) {
		t.Fatalf("cross-owner invoice should be NotFound, got %v", err)
	}
}

func TestInvoiceDeleteCascades(t *testing.T) {
	svc, stock, user := newInvoiceFixture(t)

	item, _ := stock.Create(user.ID, "Widget", dec(t, "10"), 5)
	inv, err := svc.Create(user.ID, ComposeInput{
		CustomerName:   "Acme",
		CustomerNumber: "1",
		Selections:     []Selection{{StockPublicID: item.PublicID, Name: item.Name, Price: item.Price, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(user.ID, inv.PublicID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var itemCount int64
	svc.DB.Model(&models.InvoiceItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("line items survived invoice deletion: %d", itemCount)
	}
	// Deletion does not restock.
	items, _ := stock.List(user.ID)
	if items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", items[0].Quantity)
	}
}

func TestInvoiceCreateRequiresOwner(t *testing.T) {
	svc, _, _ := newInvoiceFixture(t)
	_, err := svc.Create(0, ComposeInput{CustomerName: "C", CustomerNumber: "N"})
	if !errors.Is(err, apperr.ErrMissingOwner) {
		t.Fatalf("expected ErrMissingOwner, got %v", err)
	}
}
