package services

import (
	"context"
	"errors"

	"foodexpress/apperr"
	"foodexpress/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryService composes orders with restaurant and account summaries for the read
// side. It introduces no invariants and mutates nothing.
type QueryService struct {
	orders  OrderRepository
	users   UserRepository
	catalog CatalogRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(orders OrderRepository, users UserRepository, catalog CatalogRepository) *QueryService {
	return &QueryService{orders: orders, users: users, catalog: catalog}
}

// GetOrder returns an order with its restaurant attached.
func (s *QueryService) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.OrderDetail{Order: *order}
	restaurant, err := s.catalog.GetRestaurant(ctx, order.RestaurantID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	detail.Restaurant = restaurant
	return detail, nil
}

// ListUserOrders returns a user's orders, newest first, each with its restaurant.
func (s *QueryService) ListUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.OrderDetail, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attach(ctx, orders, false)
}

// ListAllOrders returns every order, newest first, with restaurant and user summary
// attached (the delivery dashboard view).
func (s *QueryService) ListAllOrders(ctx context.Context) ([]models.OrderDetail, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attach(ctx, orders, true)
}

// attach joins orders with their restaurants, and optionally user summaries, using
// one batched lookup per collection. Dangling references leave the field nil.
func (s *QueryService) attach(ctx context.Context, orders []models.Order, withUsers bool) ([]models.OrderDetail, error) {
	restaurantIDs := distinctIDs(orders, func(o models.Order) primitive.ObjectID { return o.RestaurantID })
	restaurants, err := s.catalog.FindRestaurants(ctx, restaurantIDs)
	if err != nil {
		return nil, err
	}

	var users map[primitive.ObjectID]models.UserSummary
	if withUsers {
		userIDs := distinctIDs(orders, func(o models.Order) primitive.ObjectID { return o.UserID })
		users, err = s.users.FindSummaries(ctx, userIDs)
		if err != nil {
			return nil, err
		}
	}

	details := make([]models.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail := models.OrderDetail{Order: order}
		if restaurant, ok := restaurants[order.RestaurantID]; ok {
			found := restaurant
			detail.Restaurant = &found
		}
		if withUsers {
			if user, ok := users[order.UserID]; ok {
				found := user
				detail.User = &found
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

func distinctIDs(orders []models.Order, pick func(models.Order) primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(orders))
	ids := make([]primitive.ObjectID, 0, len(orders))
	for _, order := range orders {
		id := pick(order)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
