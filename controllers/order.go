// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodexpress/models"
	"foodexpress/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderController handles order placement, status updates and order queries
type OrderController struct {
	orders  *services.OrderService
	queries *services.QueryService
	logger  *logrus.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.OrderService, queries *services.QueryService, logger *logrus.Logger) *OrderController {
	return &OrderController{orders: orders, queries: queries, logger: logger}
}

// CreateOrder handles POST /api/orders
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": invalidInputMessage})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.orders.PlaceOrder(ctx, req)
	if err != nil {
		respondWithError(w, oc.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrders handles GET /api/orders, the delivery dashboard view.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.queries.ListAllOrders(ctx)
	if err != nil {
		respondWithError(w, oc.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

// GetUserOrders handles GET /api/orders/user/{userId}
func (oc *OrderController) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.queries.ListUserOrders(ctx, userID)
	if err != nil {
		respondWithError(w, oc.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

// GetOrderByID handles GET /api/orders/{id}
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.queries.GetOrder(ctx, id)
	if err != nil {
		respondWithError(w, oc.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /api/orders/{id}/status
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid order ID"})
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": invalidInputMessage})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.orders.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		respondWithError(w, oc.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated",
		"order":   order,
	})
}
