package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"panda_pos/api"
	"panda_pos/internal/catalog"
	"panda_pos/internal/sales"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.InitRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestSaleHappyPath_FullFlow drives the full POST product/payment-method ->
// POST sale -> report queries flow over HTTP.
func TestSaleHappyPath_FullFlow(t *testing.T) {
	router := newTestRouter()

	var productID, paymentMethodID, saleID string

	t.Run("POST_CreateCatalog", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/products", map[string]interface{}{
			"name":  "Coffee",
			"stock": 10,
			"price": "5.00",
		})
		assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 Created for product creation")

		var product catalog.Product
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.NotEmpty(t, product.ID, "Expected product ID to be generated")
		assert.Equal(t, 10, product.Stock)
		productID = product.ID

		w = doJSON(router, http.MethodPost, "/payment-methods", map[string]interface{}{
			"label": "Cash",
		})
		assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 Created for payment method creation")

		var pm catalog.PaymentMethod
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pm))
		assert.NotEmpty(t, pm.ID, "Expected payment method ID to be generated")
		paymentMethodID = pm.ID
	})

	if productID == "" || paymentMethodID == "" {
		t.Fatal("catalog records were not successfully created")
	}

	t.Run("POST_CreateSale", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", map[string]interface{}{
			"product_id":        productID,
			"payment_method_id": paymentMethodID,
			"quantity":          3,
			"unit_price":        "5.00",
		})
		assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 Created for successful sale")

		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, "15", payload["total"], "Expected computed total of 15 in response")
		saleID, _ = payload["id"].(string)
		assert.NotEmpty(t, saleID, "Expected sale ID to be generated")

		// The product's stock went from 10 to 7.
		w = doJSON(router, http.MethodGet, "/products/"+productID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var product catalog.Product
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, 7, product.Stock, "Expected stock decremented to 7")
	})

	t.Run("POST_CreateSale_InsufficientStock", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", map[string]interface{}{
			"product_id":        productID,
			"payment_method_id": paymentMethodID,
			"quantity":          100,
			"unit_price":        "5.00",
		})
		assert.Equal(t, http.StatusConflict, w.Code, "Expected HTTP 409 Conflict when stock is insufficient")

		w = doJSON(router, http.MethodGet, "/products/"+productID, nil)
		var product catalog.Product
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, 7, product.Stock, "Expected stock unchanged after rejection")
	})

	t.Run("POST_CreateSale_UnknownReferences", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", map[string]interface{}{
			"product_id":        "missing",
			"payment_method_id": paymentMethodID,
			"quantity":          1,
			"unit_price":        "5.00",
		})
		assert.Equal(t, http.StatusNotFound, w.Code, "Expected HTTP 404 for unknown product")

		w = doJSON(router, http.MethodPost, "/sales", map[string]interface{}{
			"product_id":        productID,
			"payment_method_id": "missing",
			"quantity":          1,
			"unit_price":        "5.00",
		})
		assert.Equal(t, http.StatusNotFound, w.Code, "Expected HTTP 404 for unknown payment method")
	})

	t.Run("POST_CreateSale_MissingUnitPrice", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/sales", map[string]interface{}{
			"product_id":        productID,
			"payment_method_id": paymentMethodID,
			"quantity":          1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "Expected HTTP 400 when unit price is missing")
	})

	t.Run("GET_Reports", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/reports/sales/product/"+productID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var list []sales.Sale
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1, "Expected 1 sale for the product")

		w = doJSON(router, http.MethodGet, "/reports/sales/payment-method/"+paymentMethodID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1, "Expected 1 sale for the payment method")

		w = doJSON(router, http.MethodGet, "/reports/sales/today", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1, "Expected today's sales to contain the committed sale")

		today := sales.Today().String()
		w = doJSON(router, http.MethodGet, fmt.Sprintf("/reports/sales/total/product/%s?from=%s&to=%s", productID, today, today), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var totalResp map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &totalResp))
		total, err := decimal.NewFromString(totalResp["total"])
		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromFloat(15.00)), "Expected total of 15 for the range")

		w = doJSON(router, http.MethodGet, "/reports/sales/quantity/product/"+productID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var qtyResp map[string]int
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &qtyResp))
		assert.Equal(t, 3, qtyResp["quantity"], "Expected 3 units sold in total")
	})

	t.Run("GET_Reports_InvertedRange", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/reports/sales/range?from=2026-02-01&to=2026-01-01", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Expected HTTP 400 when from is after to")

		w = doJSON(router, http.MethodGet, fmt.Sprintf("/reports/sales/total/product/%s?from=2026-02-01&to=2026-01-01", productID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Expected HTTP 400 for total query with inverted range")
	})

	t.Run("PUT_UpdateSale_LeavesStockAlone", func(t *testing.T) {
		w := doJSON(router, http.MethodPut, "/sales/"+saleID, map[string]interface{}{
			"product_id":        productID,
			"payment_method_id": paymentMethodID,
			"quantity":          9,
			"unit_price":        "6.00",
			"date":              sales.Today().String(),
		})
		assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK for sale update")

		var payload map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
		assert.Equal(t, "54", payload["total"], "Expected total recomputed from updated fields")

		w = doJSON(router, http.MethodGet, "/products/"+productID, nil)
		var product catalog.Product
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, 7, product.Stock, "Expected stock not re-adjusted by the edit")
	})

	t.Run("DELETE_Sale_DoesNotRestoreStock", func(t *testing.T) {
		w := doJSON(router, http.MethodDelete, "/sales/"+saleID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code, "Expected HTTP 204 No Content for sale deletion")

		w = doJSON(router, http.MethodGet, "/sales/"+saleID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "Expected HTTP 404 after deletion")

		w = doJSON(router, http.MethodGet, "/products/"+productID, nil)
		var product catalog.Product
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, 7, product.Stock, "Expected stock not restored by the deletion")
	})
}

func TestUserFlow(t *testing.T) {
	router := newTestRouter()

	w := doJSON(router, http.MethodPost, "/users", map[string]interface{}{
		"name":     "Ana García",
		"email":    "ana@example.com",
		"username": "ana",
		"password": "s3cret",
	})
	assert.Equal(t, http.StatusCreated, w.Code, "Expected HTTP 201 Created for user creation")

	var payload map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.NotContains(t, w.Body.String(), "s3cret", "Expected password never to appear in responses")

	w = doJSON(router, http.MethodPost, "/users", map[string]interface{}{
		"name":     "Other",
		"email":    "ana@example.com",
		"username": "other",
		"password": "pw",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "Expected HTTP 409 Conflict for duplicate email")

	w = doJSON(router, http.MethodPost, "/login", map[string]interface{}{
		"username": "ana",
		"password": "s3cret",
	})
	assert.Equal(t, http.StatusOK, w.Code, "Expected HTTP 200 OK for valid login")

	w = doJSON(router, http.MethodPost, "/login", map[string]interface{}{
		"username": "ana",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "Expected HTTP 401 Unauthorized for wrong password")
}
