package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodexpress/controllers"
	"foodexpress/models"
	"foodexpress/repository"
	"foodexpress/routes"
	"foodexpress/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full router over in-memory repositories.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := repository.NewMemoryUserRepository()
	catalogRepo := repository.NewMemoryCatalogRepository()
	orderRepo := repository.NewMemoryOrderRepository()

	identity := services.NewIdentityService(users, logger)
	catalog := services.NewCatalogService(catalogRepo, nil, logger)
	seeder := services.NewSeedService(catalogRepo, nil, logger)
	orders := services.NewOrderService(orderRepo, users, nil, nil, logger)
	queries := services.NewQueryService(orderRepo, users, catalogRepo)

	router := mux.NewRouter()
	routes.RegisterRoutes(router,
		controllers.NewUserController(identity, logger),
		controllers.NewRestaurantController(catalog, seeder, logger),
		controllers.NewOrderController(orders, queries, logger),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp.StatusCode, payload
}

func getList(t *testing.T, server *httptest.Server, path string) (int, []map[string]interface{}) {
	t.Helper()

	resp, err := server.Client().Get(server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var list []map[string]interface{}
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	}
	return resp.StatusCode, list
}

func registerUser(t *testing.T, server *httptest.Server, username, email string) string {
	t.Helper()
	code, body := doJSON(t, server, http.MethodPost, "/api/register", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret",
		Phone:    "555-0100",
		Address:  "1 Main St",
	})
	require.Equal(t, http.StatusCreated, code)
	return body["userId"].(string)
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t)
	code, body := doJSON(t, server, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "FoodExpress API is running", body["message"])
}

func TestRegisterAndLoginFlow(t *testing.T) {
	server := newTestServer(t)

	userID := registerUser(t, server, "alice", "alice@x.com")
	assert.NotEmpty(t, userID)

	code, body := doJSON(t, server, http.MethodPost, "/api/login", models.LoginRequest{
		Email: "alice@x.com", Password: "secret",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, userID, body["userId"])
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")

	code, body = doJSON(t, server, http.MethodPost, "/api/login", models.LoginRequest{
		Email: "alice@x.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	server := newTestServer(t)
	registerUser(t, server, "alice", "alice@x.com")

	code, _ := doJSON(t, server, http.MethodPost, "/api/register", models.RegisterRequest{
		Username: "bob", Email: "alice@x.com", Password: "secret",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMalformedJSONIsRejected(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/api/register", "/api/login", "/api/orders"} {
		resp, err := server.Client().Post(server.URL+path, "application/json", bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestSeedAndBrowseCatalog(t *testing.T) {
	server := newTestServer(t)

	code, body := doJSON(t, server, http.MethodGet, "/api/seed", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Demo data seeded successfully", body["message"])

	code, restaurants := getList(t, server, "/api/restaurants")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, restaurants, 5)

	id := restaurants[0]["id"].(string)
	code, detail := doJSON(t, server, http.MethodGet, "/api/restaurants/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, restaurants[0]["name"], detail["name"])

	code, menu := getList(t, server, "/api/restaurants/"+id+"/menu")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, menu)

	code, _ = doJSON(t, server, http.MethodGet, "/api/restaurants/not-a-hex-id", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, server, http.MethodGet, "/api/restaurants/aaaaaaaaaaaaaaaaaaaaaaaa", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOrderFlowOverHTTP(t *testing.T) {
	server := newTestServer(t)

	userID := registerUser(t, server, "alice", "alice@x.com")

	code, _ := doJSON(t, server, http.MethodGet, "/api/seed", nil)
	require.Equal(t, http.StatusOK, code)
	code, restaurants := getList(t, server, "/api/restaurants")
	require.Equal(t, http.StatusOK, code)
	restaurantID := restaurants[0]["id"].(string)
	code, menu := getList(t, server, "/api/restaurants/"+restaurantID+"/menu")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, menu)

	price := menu[0]["price"].(float64)
	code, body := doJSON(t, server, http.MethodPost, "/api/orders", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
		"items": []map[string]interface{}{
			{"menu_item_id": menu[0]["id"], "name": menu[0]["name"], "price": price, "quantity": 3},
		},
		"total_amount":     1.00,
		"delivery_address": "1 Main St",
		"phone":            "555-0100",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Order placed successfully", body["message"])

	order := body["order"].(map[string]interface{})
	orderID := order["id"].(string)
	assert.Equal(t, "Pending", order["status"])
	assert.InDelta(t, 3*price, order["total_amount"].(float64), 1e-9)

	// Single order fetch carries the restaurant join.
	code, detail := doJSON(t, server, http.MethodGet, "/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, detail["restaurant"])
	assert.Equal(t, restaurants[0]["name"], detail["restaurant"].(map[string]interface{})["name"])

	// The user's history contains exactly this order.
	code, history := getList(t, server, "/api/orders/user/"+userID)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, history, 1)
	assert.Equal(t, orderID, history[0]["id"])

	// Dashboard view joins the user summary.
	code, dashboard := getList(t, server, "/api/orders")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, dashboard, 1)
	require.NotNil(t, dashboard[0]["user"])
	assert.Equal(t, "alice", dashboard[0]["user"].(map[string]interface{})["username"])
}

func TestUpdateOrderStatusOverHTTP(t *testing.T) {
	server := newTestServer(t)
	userID := registerUser(t, server, "alice", "alice@x.com")

	code, body := doJSON(t, server, http.MethodPost, "/api/orders", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": "aaaaaaaaaaaaaaaaaaaaaaaa",
		"items": []map[string]interface{}{
			{"menu_item_id": "bbbbbbbbbbbbbbbbbbbbbbbb", "name": "Beef Taco", "price": 7.50, "quantity": 2},
		},
		"delivery_address": "1 Main St",
		"phone":            "555-0100",
	})
	require.Equal(t, http.StatusCreated, code)
	orderID := body["order"].(map[string]interface{})["id"].(string)

	statusPath := fmt.Sprintf("/api/orders/%s/status", orderID)

	// Skipping Preparing is rejected.
	code, _ = doJSON(t, server, http.MethodPut, statusPath, models.UpdateStatusRequest{Status: models.StatusOnTheWay})
	assert.Equal(t, http.StatusBadRequest, code)

	code, updated := doJSON(t, server, http.MethodPut, statusPath, models.UpdateStatusRequest{Status: models.StatusPreparing})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order status updated", updated["message"])
	assert.Equal(t, "Preparing", updated["order"].(map[string]interface{})["status"])

	// Unknown status value.
	code, _ = doJSON(t, server, http.MethodPut, statusPath, map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusBadRequest, code)

	// Unknown order.
	code, _ = doJSON(t, server, http.MethodPut, "/api/orders/cccccccccccccccccccccccc/status", models.UpdateStatusRequest{Status: models.StatusPreparing})
	assert.Equal(t, http.StatusNotFound, code)

	// Malformed id.
	code, _ = doJSON(t, server, http.MethodPut, "/api/orders/zzz/status", models.UpdateStatusRequest{Status: models.StatusPreparing})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetOrderNotFoundOverHTTP(t *testing.T) {
	server := newTestServer(t)

	code, _ := doJSON(t, server, http.MethodGet, "/api/orders/cccccccccccccccccccccccc", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, server, http.MethodGet, "/api/orders/not-hex", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCreateOrderValidationOverHTTP(t *testing.T) {
	server := newTestServer(t)
	userID := registerUser(t, server, "alice", "alice@x.com")

	code, body := doJSON(t, server, http.MethodPost, "/api/orders", map[string]interface{}{
		"user_id":          userID,
		"restaurant_id":    "aaaaaaaaaaaaaaaaaaaaaaaa",
		"items":            []map[string]interface{}{},
		"delivery_address": "1 Main St",
		"phone":            "555-0100",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["message"])
}
