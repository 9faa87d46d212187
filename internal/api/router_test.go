package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-restaurant-pos/internal/app"
	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/models"
	"go-restaurant-pos/internal/store"
	"go-restaurant-pos/internal/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Store:  config.StoreConfig{Driver: "memory"},
		Report: config.ReportConfig{TimeZone: "UTC", Location: time.UTC, WindowMonths: 6},
		Shop:   config.ShopConfig{Name: "Nine Cafe", Phone: "9876543210"},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	ms := memory.New()
	return NewRouter(app.NewWithStores(testConfig(), ms.Orders(), ms.Reports(), ms.Menu(), nil)), ms
}

type brokenArchive struct{ store.ReportArchive }

func (brokenArchive) Append(context.Context, models.Report) error {
	return fmt.Errorf("archive report: %w: read-only", store.ErrStorageFailure)
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"online"}`, w.Body.String())
}

func TestCheckoutThenHistoryThenBill(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/orders", `{"items":[{"name":"Tea","quantity":2,"price":20},{"name":"Vada","quantity":1,"price":12.5}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("52.5")))
	assert.Equal(t, "paid", order.Status)

	w = do(r, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Orders      []models.Order `json:"orders"`
		TotalOrders int            `json:"totalOrders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Equal(t, 1, history.TotalOrders)

	w = do(r, http.MethodGet, "/api/orders/"+order.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/orders/"+order.ID+"/bill", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Bill_`+order.ID+`.txt"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Total: ₹52.50")
}

func TestCheckout_BadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `items`},
		{"empty cart", `{"items":[]}`},
		{"zero quantity", `{"items":[{"name":"Tea","quantity":0,"price":20}]}`},
		{"missing name", `{"items":[{"quantity":1,"price":20}]}`},
		{"negative price", `{"items":[{"name":"Tea","quantity":1,"price":-5}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestOrders_NotFoundAndBadDate(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/orders/missing", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/orders/missing/bill", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/orders?date=yesterday", "").Code)
}

func TestImportThenReport(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `[
		{"id":"ORD1","items":[{"name":"Tea","quantity":2,"price":20}],"total":40,"timestamp":"2024-01-10T09:00:00Z"},
		{"id":"ORD2","items":[{"name":"Tea","quantity":1,"price":20},{"name":"Dosa","quantity":1,"price":60}],"total":80,"timestamp":"2024-01-10T13:00:00Z"},
		{"id":"ORD3","items":[{"name":"Biryani","quantity":1,"price":200}],"total":200,"timestamp":"2024-01-09T20:00:00Z"},
		{"id":"OLD","items":[{"name":"Tea","quantity":1,"price":10}],"total":10,"timestamp":"2023-01-01T10:00:00Z"}
	]`
	w := do(r, http.MethodPost, "/api/orders/import", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"imported":4}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/reports?date=2024-01-10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report struct {
		ID            string  `json:"id"`
		SelectedDate  string  `json:"selectedDate"`
		TotalOrders   int     `json:"totalOrders"`
		TotalSales    float64 `json:"totalSales"`
		AvgOrderValue float64 `json:"avgOrderValue"`
		DailyReports  []struct {
			DateKey    string `json:"dateKey"`
			OrderCount int    `json:"orderCount"`
			ItemSales  map[string]struct {
				Quantity int     `json:"quantity"`
				Revenue  float64 `json:"revenue"`
			} `json:"itemSales"`
		} `json:"dailyReports"`
		ArchiveError string `json:"archive_error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "2024-01-10", report.SelectedDate)
	assert.Equal(t, 3, report.TotalOrders)
	assert.InDelta(t, 320, report.TotalSales, 1e-9)
	assert.InDelta(t, 106.666666, report.AvgOrderValue, 1e-5)
	assert.Empty(t, report.ArchiveError)
	require.Len(t, report.DailyReports, 2)
	assert.Equal(t, "2024-01-10", report.DailyReports[0].DateKey)
	assert.Equal(t, 3, report.DailyReports[0].ItemSales["Tea"].Quantity)
	assert.InDelta(t, 60, report.DailyReports[0].ItemSales["Tea"].Revenue, 1e-9)

	w = do(r, http.MethodGet, "/api/reports/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var saved []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, report.ID, saved[0].ID)

	w = do(r, http.MethodGet, "/api/reports/history/"+report.ID+"/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total Sales: ₹320.00")

	w = do(r, http.MethodGet, "/api/reports/history/"+report.ID+"/export?format=xlsx", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Daily")
}

func TestImport_RejectsDuplicates(t *testing.T) {
	r, _ := newTestRouter(t)
	one := `{"id":"ORD1","items":[{"name":"Tea","quantity":1,"price":20}],"total":20,"timestamp":"2024-01-10T09:00:00Z"}`

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/orders/import", "["+one+"]").Code)
	w := do(r, http.MethodPost, "/api/orders/import", "["+one+"]")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":0`)
}

func TestReports_EmptyHistoryAndExportErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/reports/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/reports/history/nope/export", "").Code)

	w = do(r, http.MethodGet, "/api/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		ID           string            `json:"id"`
		DailyReports []json.RawMessage `json:"dailyReports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotNil(t, report.DailyReports)
	assert.Empty(t, report.DailyReports)

	w = do(r, http.MethodGet, "/api/reports/history/"+report.ID+"/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReports_ArchiveFailureStillServesReport(t *testing.T) {
	ms := memory.New()
	r := NewRouter(app.NewWithStores(testConfig(), ms.Orders(), brokenArchive{ms.Reports()}, ms.Menu(), nil))

	w := do(r, http.MethodGet, "/api/reports?date=2024-01-10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["id"])
	assert.Contains(t, body["archive_error"], "storage failure")
}

func TestMenu_CRUDAndCheckoutByMenuItem(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/menu", `{"name":"Masala Dosa","category":"Mains","price":80}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var dosa models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dosa))
	require.NotZero(t, dosa.ID)
	path := fmt.Sprintf("/api/menu/%d", dosa.ID)

	w = do(r, http.MethodPut, path, `{"name":"Masala Dosa","category":"Mains","price":90}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":90`)

	// The client price is ignored for menu lines
	body := fmt.Sprintf(`{"items":[{"menuItemId":%d,"quantity":2,"price":1},{"name":"Tea","quantity":1,"price":20}]}`, dosa.ID)
	w = do(r, http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "Masala Dosa", order.Items[0].Name)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(200)), "got %s", order.Total)

	w = do(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, path, "").Code)

	w = do(r, http.MethodPost, "/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/menu", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestMenu_BadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/menu/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/menu", `{"name":"Tea"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/menu", `not json`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/menu/9", `{"name":"Tea","price":10}`).Code)

	// A line needs either a menu item or a name
	w := do(r, http.MethodPost, "/api/orders", `{"items":[{"quantity":1,"price":20}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
