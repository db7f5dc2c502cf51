package controllers

import (
	"context"
	"net/http"
	"time"

	"foodexpress/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantController handles catalog read requests and demo-data seeding
type RestaurantController struct {
	catalog *services.CatalogService
	seeder  *services.SeedService
	logger  *logrus.Logger
}

// NewRestaurantController creates a new RestaurantController
func NewRestaurantController(catalog *services.CatalogService, seeder *services.SeedService, logger *logrus.Logger) *RestaurantController {
	return &RestaurantController{catalog: catalog, seeder: seeder, logger: logger}
}

// GetRestaurants handles GET /api/restaurants
func (rc *RestaurantController) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	restaurants, err := rc.catalog.ListRestaurants(ctx)
	if err != nil {
		respondWithError(w, rc.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, restaurants)
}

// GetRestaurantByID handles GET /api/restaurants/{id}
func (rc *RestaurantController) GetRestaurantByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid restaurant ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	restaurant, err := rc.catalog.GetRestaurant(ctx, id)
	if err != nil {
		respondWithError(w, rc.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, restaurant)
}

// GetMenu handles GET /api/restaurants/{id}/menu. An unknown restaurant yields an
// empty list, not a 404.
func (rc *RestaurantController) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid restaurant ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := rc.catalog.ListMenu(ctx, id)
	if err != nil {
		respondWithError(w, rc.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// Seed handles GET /api/seed
func (rc *RestaurantController) Seed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := rc.seeder.Seed(ctx); err != nil {
		respondWithError(w, rc.logger, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Demo data seeded successfully"})
}
