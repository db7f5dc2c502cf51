// routes/routes.go
package routes

import (
	"foodexpress/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, restaurantController *controllers.RestaurantController, orderController *controllers.OrderController) {
	// Health check
	router.HandleFunc("/", controllers.HealthCheck).Methods("GET")

	// Auth routes
	router.HandleFunc("/api/register", userController.Register).Methods("POST")
	router.HandleFunc("/api/login", userController.Login).Methods("POST")

	// Restaurant routes
	router.HandleFunc("/api/restaurants", restaurantController.GetRestaurants).Methods("GET")
	router.HandleFunc("/api/restaurants/{id}", restaurantController.GetRestaurantByID).Methods("GET")
	router.HandleFunc("/api/restaurants/{id}/menu", restaurantController.GetMenu).Methods("GET")

	// Order routes; the /user/ route must come before /{id}
	router.HandleFunc("/api/orders", orderController.GetOrders).Methods("GET")
	router.HandleFunc("/api/orders", orderController.CreateOrder).Methods("POST")
	router.HandleFunc("/api/orders/user/{userId}", orderController.GetUserOrders).Methods("GET")
	router.HandleFunc("/api/orders/{id}", orderController.GetOrderByID).Methods("GET")
	router.HandleFunc("/api/orders/{id}/status", orderController.UpdateOrderStatus).Methods("PUT")

	// Demo data
	router.HandleFunc("/api/seed", restaurantController.Seed).Methods("GET")
}
