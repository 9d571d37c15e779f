package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/testutil"
)

func seedWorkOrder(t *testing.T, env *testutil.TestEnv, qty float64) *entity.WorkOrder {
	t.Helper()
	wo := &entity.WorkOrder{
		ID:          "wo-test-001",
		WOCode:      "WO-2026-0001",
		AssemblyIPN: "ASY-Z1000",
		Qty:         qty,
		Status:      entity.WOStatusOpen,
		Priority:    "normal",
		CreatedBy:   "test-user-001",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := env.DB.Create(wo).Error; err != nil {
		t.Fatalf("Failed to seed work order: %v", err)
	}
	return wo
}

func TestWorkOrderBOMReport(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	wo := seedWorkOrder(t, env, 5)
	testutil.SeedInventory(t, env.DB, "CAP-001-0001", 500)
	testutil.SeedInventory(t, env.DB, "RES-001-0001", 60)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/work-orders/"+wo.ID+"/bom", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["assembly_ipn"] != "ASY-Z1000" {
		t.Errorf("assembly_ipn = %v", data["assembly_ipn"])
	}
	if data["qty"].(float64) != 5 {
		t.Errorf("qty = %v, want 5", data["qty"])
	}
	summary := data["summary"].(map[string]interface{})
	if summary["has_shortage"] != true {
		t.Error("expected a shortage in the report")
	}
}

func TestGeneratePOCarriesExactlyShortLines(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	wo := seedWorkOrder(t, env, 5)
	testutil.SeedVendor(t, env.DB, "vend-001", "Acme Components")
	testutil.SeedInventory(t, env.DB, "CAP-001-0001", 500) // covered
	testutil.SeedInventory(t, env.DB, "RES-001-0001", 60)  // short by 100

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-orders/"+wo.ID+"/generate-po",
		map[string]interface{}{"vendor_id": "vend-001"}, testutil.DefaultTestToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != entity.POStatusDraft {
		t.Errorf("status = %v, want draft", data["status"])
	}
	lines := data["lines"].([]interface{})
	if len(lines) != 1 {
		t.Fatalf("expected only the short line, got %d lines", len(lines))
	}
	line := lines[0].(map[string]interface{})
	if line["ipn"] != "RES-001-0001" {
		t.Errorf("line ipn = %v", line["ipn"])
	}
	if line["qty_ordered"].(float64) != 100 {
		t.Errorf("qty_ordered = %v, want the shortage of 100", line["qty_ordered"])
	}
}

func TestGeneratePOGatedOnVendorAndShortage(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	wo := seedWorkOrder(t, env, 1)
	testutil.SeedVendor(t, env.DB, "vend-001", "Acme Components")
	// fully stocked at qty 1: 4 boards is irrelevant, leaves need 8 caps, 32 res
	testutil.SeedInventory(t, env.DB, "CAP-001-0001", 100)
	testutil.SeedInventory(t, env.DB, "RES-001-0001", 100)

	// missing vendor
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-orders/"+wo.ID+"/generate-po",
		map[string]interface{}{}, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without a vendor", w.Code)
	}

	// vendor present but nothing short
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/work-orders/"+wo.ID+"/generate-po",
		map[string]interface{}{"vendor_id": "vend-001"}, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 with no shortage", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != CodeActionNotAllowed {
		t.Errorf("envelope code = %v, want %d", resp["code"], CodeActionNotAllowed)
	}
}

func createSubmittedPO(t *testing.T, env *testutil.TestEnv) map[string]interface{} {
	t.Helper()
	testutil.SeedVendor(t, env.DB, "vend-001", "Acme Components")
	testutil.SeedPart(t, env.DB, "CAP-001-0001", "100nF 0402", 0.01, false)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders",
		map[string]interface{}{
			"vendor_id": "vend-001",
			"lines": []map[string]interface{}{
				{"ipn": "CAP-001-0001", "qty": 100, "unit_price": 0.012},
			},
		}, testutil.DefaultTestToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("create PO: status = %d, body = %s", w.Code, w.Body.String())
	}
	po := testutil.ParseResponse(w)["data"].(map[string]interface{})

	w = testutil.DoRequest(env.Router, http.MethodPost,
		fmt.Sprintf("/api/v1/purchase-orders/%s/submit", po["id"]), nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("submit PO: status = %d, body = %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

func TestReceiveFlowUpdatesStockAndStatus(t *testing.T) {
	env := setupAPITest(t)
	po := createSubmittedPO(t, env)
	lines := po["lines"].([]interface{})
	lineID := lines[0].(map[string]interface{})["id"].(string)

	// Partial receipt: 40 of 100.
	w := testutil.DoRequest(env.Router, http.MethodPost,
		fmt.Sprintf("/api/v1/purchase-orders/%s/receive", po["id"]),
		map[string]interface{}{
			"lines": []map[string]interface{}{{"line_id": lineID, "qty": 40}},
		}, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("receive: status = %d, body = %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != entity.POStatusPartial {
		t.Errorf("status = %v, want partial", data["status"])
	}

	var inv entity.Inventory
	if err := env.DB.Where("ipn = ?", "CAP-001-0001").First(&inv).Error; err != nil {
		t.Fatalf("inventory row missing: %v", err)
	}
	if inv.QtyOnHand != 40 {
		t.Errorf("on hand = %v, want 40", inv.QtyOnHand)
	}

	var txnCount int64
	env.DB.Model(&entity.InventoryTransaction{}).Where("ipn = ?", "CAP-001-0001").Count(&txnCount)
	if txnCount != 1 {
		t.Errorf("transaction rows = %d, want 1", txnCount)
	}

	var priceCount int64
	env.DB.Model(&entity.PriceHistory{}).Where("ipn = ?", "CAP-001-0001").Count(&priceCount)
	if priceCount != 1 {
		t.Errorf("price history rows = %d, want 1", priceCount)
	}

	// Over-receipt of the remainder clamps to pending and completes the
	// order.
	w = testutil.DoRequest(env.Router, http.MethodPost,
		fmt.Sprintf("/api/v1/purchase-orders/%s/receive", po["id"]),
		map[string]interface{}{
			"lines": []map[string]interface{}{{"line_id": lineID, "qty": 999}},
		}, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("receive remainder: status = %d, body = %s", w.Code, w.Body.String())
	}

	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != entity.POStatusReceived {
		t.Errorf("status = %v, want received", data["status"])
	}
	line := data["lines"].([]interface{})[0].(map[string]interface{})
	if line["qty_received"].(float64) != 100 {
		t.Errorf("qty_received = %v, want clamp at 100", line["qty_received"])
	}

	env.DB.Where("ipn = ?", "CAP-001-0001").First(&inv)
	if inv.QtyOnHand != 100 {
		t.Errorf("on hand = %v, want 100 after clamped receipt", inv.QtyOnHand)
	}
}

func TestReceiveRejectedForDraftOrder(t *testing.T) {
	env := setupAPITest(t)
	testutil.SeedVendor(t, env.DB, "vend-001", "Acme Components")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/purchase-orders",
		map[string]interface{}{
			"vendor_id": "vend-001",
			"lines": []map[string]interface{}{
				{"ipn": "CAP-001-0001", "qty": 10},
			},
		}, testutil.DefaultTestToken())
	if w.Code != http.StatusCreated {
		t.Fatalf("create PO: status = %d", w.Code)
	}
	po := testutil.ParseResponse(w)["data"].(map[string]interface{})
	lineID := po["lines"].([]interface{})[0].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, http.MethodPost,
		fmt.Sprintf("/api/v1/purchase-orders/%s/receive", po["id"]),
		map[string]interface{}{
			"lines": []map[string]interface{}{{"line_id": lineID, "qty": 5}},
		}, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a draft order", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != CodeActionNotAllowed {
		t.Errorf("envelope code = %v, want %d", resp["code"], CodeActionNotAllowed)
	}

	// Nothing moved.
	var count int64
	env.DB.Model(&entity.InventoryTransaction{}).Count(&count)
	if count != 0 {
		t.Errorf("transaction rows = %d, want 0 after rejected receive", count)
	}
}
