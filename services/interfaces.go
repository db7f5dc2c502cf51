package services

import (
	"context"

	"foodexpress/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is the storage contract for accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error)
}

// CatalogRepository is the storage contract for restaurants and menu items
type CatalogRepository interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	FindRestaurants(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Restaurant, error)
	ListMenu(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error)
	ReplaceCatalog(ctx context.Context, restaurants []models.Restaurant, items []models.MenuItem) error
}

// OrderRepository is the storage contract for orders
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.OrderStatus, expectedVersion int64) (*models.Order, error)
}

// CatalogCache caches catalog reads. Optional; a nil cache disables caching.
type CatalogCache interface {
	GetRestaurants(ctx context.Context) ([]models.Restaurant, bool, error)
	SetRestaurants(ctx context.Context, restaurants []models.Restaurant) error
	GetRestaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, bool, error)
	SetRestaurant(ctx context.Context, restaurant *models.Restaurant) error
	GetMenu(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, bool, error)
	SetMenu(ctx context.Context, restaurantID primitive.ObjectID, items []models.MenuItem) error
	Flush(ctx context.Context) error
}

// OrderEventPublisher emits order lifecycle events. Optional; nil disables publishing.
type OrderEventPublisher interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
	OrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error
}

// OrderMailer sends order notification email. Optional; nil disables mail.
type OrderMailer interface {
	SendOrderConfirmation(toEmail string, order *models.Order) error
	SendStatusUpdate(toEmail string, order *models.Order) error
}
