package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestReadinessGate_BeforeDatabaseConnects(t *testing.T) {
	r := gin.New()
	r.Use(readinessGate())
	r.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })

	// no database handle yet: app endpoints are not ready
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 before DB connect, got %d", w.Code)
	}

	// liveness stays reachable throughout
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for /healthz, got %d", w.Code)
	}
}

func TestListOrders_MissingIdentityIs401(t *testing.T) {
	r := gin.New()
	r.GET("/orders", listOrdersHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}
}

func TestItemCatalogHandler(t *testing.T) {
	r := gin.New()
	r.GET("/items", itemCatalogHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Items []string `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Items) != 6 {
		t.Fatalf("expected 6 catalog items, got %d (%v)", len(body.Items), body.Items)
	}
	if body.Items[0] != "250g" || body.Items[5] != "30kg" {
		t.Fatalf("unexpected catalog order: %v", body.Items)
	}
}

func TestPaymentInput_AcceptsNumbersAndFormattedStrings(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain number", `1764.5`, "1764.5"},
		{"quoted number", `"1764"`, "1764"},
		{"formatted rupees", `"₹1,764.00"`, "1764"},
		{"rs prefix", `"Rs 3528"`, "3528"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := paymentInput{Amount: json.RawMessage(tc.raw)}
			payment, err := in.toNewPayment()
			if err != nil {
				t.Fatalf("toNewPayment(%s) error: %v", tc.raw, err)
			}
			if got := payment.Amount.String(); got != tc.expected {
				t.Fatalf("toNewPayment(%s) expected %s, got %s", tc.raw, tc.expected, got)
			}
		})
	}

	if _, err := (paymentInput{Amount: json.RawMessage(`"abc"`)}).toNewPayment(); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}
