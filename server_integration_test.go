package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewBuffer(b)
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)
	email := fmt.Sprintf("user%d@example.com", time.Now().UnixNano())

	// 1. Register
	resp := performRequest(r, http.MethodPost, "/api/users/register",
		jsonBody(t, map[string]string{"firstname": "User", "lastname": "One", "email": email, "password": "pass123"}), "")
	if resp.Code != 200 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// Registering the same email again conflicts
	resp = performRequest(r, http.MethodPost, "/api/users/register",
		jsonBody(t, map[string]string{"firstname": "User", "lastname": "One", "email": email, "password": "pass123"}), "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status=%d, want 409 (body %s)", resp.Code, resp.Body.String())
	}

	// 2. Login
	resp = performRequest(r, http.MethodPost, "/api/users/login",
		jsonBody(t, map[string]string{"email": email, "password": "pass123"}), "")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}

	// 3. Create income and expense
	resp = performRequest(r, http.MethodPost, "/api/income",
		jsonBody(t, map[string]any{"title": "Salary", "description": "monthly salary", "amount": 1000}), token)
	if resp.Code != 201 {
		t.Fatalf("create income failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	incomeID := created["id"]

	resp = performRequest(r, http.MethodPost, "/api/expenses",
		jsonBody(t, map[string]any{"title": "Rent", "description": "office rent", "amount": 400}), token)
	if resp.Code != 201 {
		t.Fatalf("create expense failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 4. Create petty cash
	resp = performRequest(r, http.MethodPost, "/api/petty",
		jsonBody(t, map[string]any{"description": "stamps", "category": "postage", "paidTo": "Post Office", "amount": 12.5}), token)
	if resp.Code != 201 {
		t.Fatalf("create petty failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 5. Paginated lists
	for _, path := range []string{"/api/income?page=1", "/api/expenses?page=1", "/api/petty?page=1"} {
		resp = performRequest(r, http.MethodGet, path, nil, token)
		if resp.Code != 200 {
			t.Fatalf("list %s failed status=%d body=%s", path, resp.Code, resp.Body.String())
		}
		var page map[string]any
		_ = json.Unmarshal(resp.Body.Bytes(), &page)
		docs, ok := page["docs"].([]any)
		if !ok {
			t.Fatalf("list %s: missing docs array: %s", path, resp.Body.String())
		}
		if len(docs) > 10 {
			t.Fatalf("list %s: page larger than page size: %d", path, len(docs))
		}
	}

	// 6. A page far beyond the data is empty, not an error
	resp = performRequest(r, http.MethodGet, "/api/income?page=9999", nil, token)
	if resp.Code != 200 {
		t.Fatalf("far page failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var farPage struct {
		Docs []any `json:"docs"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &farPage)
	if len(farPage.Docs) != 0 {
		t.Fatalf("far page should be empty, got %d docs", len(farPage.Docs))
	}

	// 7. Totals and profit/loss are consistent
	totalOf := func(path, field string) float64 {
		resp := performRequest(r, http.MethodGet, path, nil, token)
		if resp.Code != 200 {
			t.Fatalf("total %s failed status=%d body=%s", path, resp.Code, resp.Body.String())
		}
		var out map[string]float64
		_ = json.Unmarshal(resp.Body.Bytes(), &out)
		return out[field]
	}
	totalIncome := totalOf("/api/income/total", "totalIncome")
	totalExpenses := totalOf("/api/expenses/total", "totalExpenses")
	_ = totalOf("/api/petty/total", "totalPettyCash")

	resp = performRequest(r, http.MethodGet, "/api/reports/profit-loss", nil, token)
	if resp.Code != 200 {
		t.Fatalf("profit-loss failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var pl struct {
		Revenue  float64 `json:"revenue"`
		Expenses float64 `json:"expenses"`
		Net      float64 `json:"net"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &pl)
	if pl.Revenue != totalIncome || pl.Expenses != totalExpenses {
		t.Fatalf("profit-loss totals drifted: %+v vs income=%v expenses=%v", pl, totalIncome, totalExpenses)
	}
	if pl.Net != pl.Revenue-pl.Expenses {
		t.Fatalf("net %v != revenue %v - expenses %v", pl.Net, pl.Revenue, pl.Expenses)
	}

	// 8. Balance sheet
	resp = performRequest(r, http.MethodGet, "/api/reports/balance-sheet", nil, token)
	if resp.Code != 200 {
		t.Fatalf("balance-sheet failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 9. Validation: non-positive amount is rejected before persistence
	resp = performRequest(r, http.MethodPost, "/api/expenses",
		jsonBody(t, map[string]any{"title": "Bad", "description": "negative", "amount": -50}), token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("negative amount: status=%d, want 400", resp.Code)
	}
	if totalOf("/api/expenses/total", "totalExpenses") != totalExpenses {
		t.Fatal("rejected create must not change the expense total")
	}

	// 9b. Malformed date strings are rejected, not silently replaced
	resp = performRequest(r, http.MethodPost, "/api/income",
		jsonBody(t, map[string]any{"title": "Bonus", "description": "one-off", "amount": 100, "date": "yesterday"}), token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("malformed date: status=%d, want 400 (body %s)", resp.Code, resp.Body.String())
	}

	// 10. Delete then fetch -> 404
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/income/%v", incomeID), nil, token)
	if resp.Code != 200 {
		t.Fatalf("delete income failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/api/income/%v", incomeID), nil, token)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("deleted income fetch: status=%d, want 404", resp.Code)
	}

	// 11. Unauthorized access is rejected
	resp = performRequest(r, http.MethodGet, "/api/income", nil, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated list, got %d", resp.Code)
	}
}

// registerAndLogin creates a fresh user and returns its auth token.
func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/api/users/register",
		jsonBody(t, map[string]string{"firstname": "Test", "lastname": "User", "email": email, "password": "pass123"}), "")
	if resp.Code != 200 {
		t.Fatalf("register %s failed status=%d body=%s", email, resp.Code, resp.Body.String())
	}
	return login(t, r, email, "pass123")
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/api/users/login",
		jsonBody(t, map[string]string{"email": email, "password": password}), "")
	if resp.Code != 200 {
		t.Fatalf("login %s failed status=%d body=%s", email, resp.Code, resp.Body.String())
	}
	var out map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &out)
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatalf("empty token for %s: %+v", email, out)
	}
	return token
}

// Update and delete require owner-or-admin; everyone else gets 403.
func TestMutationAuthorization(t *testing.T) {
	r := setupTestServer(t)
	suffix := time.Now().UnixNano()
	ownerToken := registerAndLogin(t, r, fmt.Sprintf("owner%d@example.com", suffix))
	otherToken := registerAndLogin(t, r, fmt.Sprintf("other%d@example.com", suffix))

	resp := performRequest(r, http.MethodPost, "/api/income",
		jsonBody(t, map[string]any{"title": "Consulting", "description": "project fee", "amount": 250}), ownerToken)
	if resp.Code != 201 {
		t.Fatalf("create income failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	path := fmt.Sprintf("/api/income/%v", created["id"])

	update := map[string]any{"title": "Consulting", "description": "revised fee", "amount": 300}

	// A different non-admin user may neither update nor delete it.
	resp = performRequest(r, http.MethodPut, path, jsonBody(t, update), otherToken)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("foreign update: status=%d, want 403 (body %s)", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodDelete, path, nil, otherToken)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: status=%d, want 403 (body %s)", resp.Code, resp.Body.String())
	}

	// The owner can update their own record.
	resp = performRequest(r, http.MethodPut, path, jsonBody(t, update), ownerToken)
	if resp.Code != 200 {
		t.Fatalf("owner update: status=%d (body %s)", resp.Code, resp.Body.String())
	}

	// Admins can modify anyone's record.
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	adminToken := login(t, r, "admin@example.com", adminPassword)
	resp = performRequest(r, http.MethodPut, path, jsonBody(t, update), adminToken)
	if resp.Code != 200 {
		t.Fatalf("admin update: status=%d (body %s)", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodDelete, path, nil, adminToken)
	if resp.Code != 200 {
		t.Fatalf("admin delete: status=%d (body %s)", resp.Code, resp.Body.String())
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	initDB()
}
