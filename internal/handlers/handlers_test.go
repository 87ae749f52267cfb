package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/stockbill/auth"
	"github.com/diewo77/stockbill/internal/config"
	dbpkg "github.com/diewo77/stockbill/internal/db"
	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbpkg.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedTestUser(t *testing.T, conn *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", Name: "Test"}
	if err := conn.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// authedReq builds a request with the owner identity already in context,
// bypassing the cookie layer (covered by the router tests).
func authedReq(t *testing.T, method, target, body string, userID uint) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

func testConfig() config.Config {
	return config.Config{Port: "0", Env: "test", CurrencySymbol: "₹", CurrencyLocale: "en-IN"}
}

func newTestInvoiceHandler(conn *gorm.DB) *InvoiceHandler {
	stockSvc := services.NewStockService(conn)
	return NewInvoiceHandler(conn, services.NewInvoiceService(conn, stockSvc), services.NewSettingsService(conn), testConfig())
}
