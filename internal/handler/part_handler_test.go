package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jsnapoli1/zrp-sub006/internal/repository"
	"github.com/jsnapoli1/zrp-sub006/internal/service"
	"github.com/jsnapoli1/zrp-sub006/internal/testutil"
)

func setupAPITest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, nil, zap.NewNop(), nil, time.Second)
	t.Cleanup(svcs.Pollers.StopAll)
	handlers := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	handlers.RegisterRoutes(api)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// seedAssembly builds the two-level demo product:
//
//	ASY-Z1000
//	└── PCA-MAIN x4
//	    ├── CAP-001-0001 x2
//	    └── RES-001-0001 x8
func seedAssembly(t *testing.T, env *testutil.TestEnv) {
	t.Helper()
	testutil.SeedPart(t, env.DB, "ASY-Z1000", "Z1000 top assembly", 0, true)
	testutil.SeedPart(t, env.DB, "PCA-MAIN", "Main board", 0, true)
	testutil.SeedPart(t, env.DB, "CAP-001-0001", "100nF 0402", 0.01, false)
	testutil.SeedPart(t, env.DB, "RES-001-0001", "10k 0402", 0.10, false)

	testutil.SeedBOMEdge(t, env.DB, "ASY-Z1000", "PCA-MAIN", 4, 1)
	testutil.SeedBOMEdge(t, env.DB, "PCA-MAIN", "CAP-001-0001", 2, 1)
	testutil.SeedBOMEdge(t, env.DB, "PCA-MAIN", "RES-001-0001", 8, 2)
}

func TestPartDetailReturnsPart(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	testutil.SeedInventory(t, env.DB, "CAP-001-0001", 500)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/CAP-001-0001", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 0 {
		t.Fatalf("envelope code = %v", resp["code"])
	}
	data := resp["data"].(map[string]interface{})
	part := data["part"].(map[string]interface{})
	if part["ipn"] != "CAP-001-0001" {
		t.Errorf("ipn = %v", part["ipn"])
	}
	inv := data["inventory"].(map[string]interface{})
	if inv["qty_on_hand"].(float64) != 500 {
		t.Errorf("qty_on_hand = %v, want 500", inv["qty_on_hand"])
	}
}

func TestPartDetailUnknownIPNIs404(t *testing.T) {
	env := setupAPITest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/NOPE-000-0000", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != CodeNotFound {
		t.Errorf("envelope code = %v, want %d", resp["code"], CodeNotFound)
	}
}

func TestPartDetailAssemblySections(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/ASY-Z1000", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["bom"] == nil {
		t.Fatal("assembly detail must carry a BOM section")
	}
	bomData := data["bom"].(map[string]interface{})
	if bomData["build_qty"].(float64) != 1 {
		t.Errorf("detail BOM resolves at qty 1, got %v", bomData["build_qty"])
	}

	// 4×2 caps + 4×8 resistors at catalog cost: 8×0.01 + 32×0.10 = 3.28
	cost := data["cost"].(map[string]interface{})
	if cost["bom_cost"] != "3.28" {
		t.Errorf("bom_cost = %v, want 3.28", cost["bom_cost"])
	}
}

func TestPartDetailCostFailureKeepsBOMSection(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)

	// Price history reads now fail, so the cost section cannot be built.
	if err := env.DB.Exec("DROP TABLE price_history").Error; err != nil {
		t.Fatalf("drop price_history: %v", err)
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/ASY-Z1000", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["cost"] != nil {
		t.Errorf("cost = %v, want null when the section fails", data["cost"])
	}
	if data["cost_error"] != "cost data unavailable" {
		t.Errorf("cost_error = %v", data["cost_error"])
	}

	// The failed section does not take its siblings down.
	if data["bom"] == nil {
		t.Error("BOM section must survive a failed cost section")
	}
	part := data["part"].(map[string]interface{})
	if part["ipn"] != "ASY-Z1000" {
		t.Errorf("part ipn = %v", part["ipn"])
	}
}

func TestPartDetailBOMFailureKeepsPartAndWhereUsed(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	// Close the loop: the board now lists the top assembly as a child.
	testutil.SeedBOMEdge(t, env.DB, "PCA-MAIN", "ASY-Z1000", 1, 3)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/ASY-Z1000", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["bom"] != nil {
		t.Errorf("bom = %v, want null for an unresolvable tree", data["bom"])
	}
	if data["bom_error"] != "BOM data unavailable" {
		t.Errorf("bom_error = %v", data["bom_error"])
	}

	part := data["part"].(map[string]interface{})
	if part["ipn"] != "ASY-Z1000" {
		t.Errorf("part ipn = %v", part["ipn"])
	}
	used := data["where_used"].([]interface{})
	if len(used) != 1 {
		t.Fatalf("where_used entries = %d, want 1", len(used))
	}
	if used[0].(map[string]interface{})["parent_ipn"] != "PCA-MAIN" {
		t.Errorf("where_used parent = %v", used[0])
	}
}

func TestReplaceBOMSwapsChildren(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	testutil.SeedPart(t, env.DB, "IC-001-0001", "MCU", 3.50, false)

	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/parts/PCA-MAIN/bom",
		map[string]interface{}{
			"lines": []map[string]interface{}{
				{"child_ipn": "IC-001-0001", "qty_per": 1, "ref": "U1"},
				{"child_ipn": "CAP-001-0001", "qty_per": 4},
			},
		}, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	items := testutil.ParseResponse(w)["data"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 edges after replace, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["child_ipn"] != "IC-001-0001" {
		t.Errorf("first child = %v, want IC-001-0001", first["child_ipn"])
	}

	// Resolution reflects the new edge set: the resistor is gone.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/PCA-MAIN/bom", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("resolve after replace: status = %d", w.Code)
	}
	netted := testutil.ParseResponse(w)["data"].(map[string]interface{})["netted"].([]interface{})
	for _, raw := range netted {
		if raw.(map[string]interface{})["ipn"] == "RES-001-0001" {
			t.Error("replaced child still present in resolution")
		}
	}
}

func TestReplaceBOMRejectsSelfReference(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)

	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/parts/PCA-MAIN/bom",
		map[string]interface{}{
			"lines": []map[string]interface{}{
				{"child_ipn": "PCA-MAIN", "qty_per": 1},
			},
		}, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for self-reference", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != CodeInvalidRequest {
		t.Errorf("envelope code = %v, want %d", resp["code"], CodeInvalidRequest)
	}
}

func TestAdjustInventoryRequiresRole(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	body := map[string]interface{}{"ipn": "CAP-001-0001", "qty": 25, "reference": "cycle count"}

	viewer := testutil.GenerateTestToken("test-user-002", "Viewer", "viewer@test.com", []string{"viewer"})
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/adjust", body, viewer)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 without the inventory role", w.Code)
	}

	stockKeeper := testutil.GenerateTestToken("test-user-003", "Stores", "stores@test.com", []string{"inventory"})
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory/adjust", body, stockKeeper)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	inv := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if inv["qty_on_hand"].(float64) != 25 {
		t.Errorf("qty_on_hand = %v, want 25", inv["qty_on_hand"])
	}
}

func TestResolveBOMMultipliesThroughLevels(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)
	testutil.SeedInventory(t, env.DB, "CAP-001-0001", 500)
	testutil.SeedInventory(t, env.DB, "RES-001-0001", 60)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/ASY-Z1000/bom?qty=5", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	netted := data["netted"].([]interface{})

	byIPN := map[string]map[string]interface{}{}
	for _, raw := range netted {
		line := raw.(map[string]interface{})
		byIPN[line["ipn"].(string)] = line
	}

	// 5 builds × 4 boards × 2 caps = 40 required, 500 on hand.
	caps := byIPN["CAP-001-0001"]
	if caps["qty_required"].(float64) != 40 {
		t.Errorf("cap required = %v, want 40", caps["qty_required"])
	}
	if caps["status"] != "ok" {
		t.Errorf("cap status = %v, want ok", caps["status"])
	}

	// 5 × 4 × 8 = 160 required, 60 on hand: short by 100.
	res := byIPN["RES-001-0001"]
	if res["qty_required"].(float64) != 160 {
		t.Errorf("res required = %v, want 160", res["qty_required"])
	}
	if res["shortage"].(float64) != 100 {
		t.Errorf("res shortage = %v, want 100", res["shortage"])
	}
	if res["status"] != "low" {
		t.Errorf("res status = %v, want low", res["status"])
	}

	summary := data["summary"].(map[string]interface{})
	if summary["has_shortage"] != true {
		t.Error("summary must flag the shortage")
	}
}

func TestResolveBOMRejectsBadQty(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/ASY-Z1000/bom?qty=-2", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != CodeInvalidRequest {
		t.Errorf("envelope code = %v, want %d", resp["code"], CodeInvalidRequest)
	}
}

func TestWhereUsedListsConsumers(t *testing.T) {
	env := setupAPITest(t)
	seedAssembly(t, env)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts/CAP-001-0001/where-used", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	entries := testutil.ParseResponse(w)["data"].([]interface{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 consumer, got %d", len(entries))
	}
	entry := entries[0].(map[string]interface{})
	if entry["parent_ipn"] != "PCA-MAIN" {
		t.Errorf("parent_ipn = %v, want PCA-MAIN", entry["parent_ipn"])
	}
}

func TestRequestWithoutTokenIsRejected(t *testing.T) {
	env := setupAPITest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
