package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"foodexpress/apperr"
	"foodexpress/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Map-backed repositories implementing the same contracts as the Mongo ones.
// They back the test suite and local runs without a database.

// MemoryUserRepository is an in-memory user store
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[primitive.ObjectID]models.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return fmt.Errorf("username or email already taken: %w", apperr.ErrConflict)
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	found := user
	return &found, nil
}

func (r *MemoryUserRepository) FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			summaries[id] = models.UserSummary{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				Phone:    user.Phone,
				Address:  user.Address,
			}
		}
	}
	return summaries, nil
}

// MemoryCatalogRepository is an in-memory catalog store
type MemoryCatalogRepository struct {
	mu          sync.RWMutex
	restaurants map[primitive.ObjectID]models.Restaurant
	menuItems   []models.MenuItem
}

// NewMemoryCatalogRepository creates an empty MemoryCatalogRepository
func NewMemoryCatalogRepository() *MemoryCatalogRepository {
	return &MemoryCatalogRepository{restaurants: make(map[primitive.ObjectID]models.Restaurant)}
}

func (r *MemoryCatalogRepository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurants := make([]models.Restaurant, 0, len(r.restaurants))
	for _, restaurant := range r.restaurants {
		restaurants = append(restaurants, restaurant)
	}
	sort.Slice(restaurants, func(i, j int) bool {
		return restaurants[i].Name < restaurants[j].Name
	})
	return restaurants, nil
}

func (r *MemoryCatalogRepository) GetRestaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, fmt.Errorf("restaurant %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	found := restaurant
	return &found, nil
}

func (r *MemoryCatalogRepository) FindRestaurants(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[primitive.ObjectID]models.Restaurant, len(ids))
	for _, id := range ids {
		if restaurant, ok := r.restaurants[id]; ok {
			found[id] = restaurant
		}
	}
	return found, nil
}

func (r *MemoryCatalogRepository) ListMenu(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []models.MenuItem{}
	for _, item := range r.menuItems {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *MemoryCatalogRepository) ReplaceCatalog(ctx context.Context, restaurants []models.Restaurant, items []models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.restaurants = make(map[primitive.ObjectID]models.Restaurant, len(restaurants))
	for _, restaurant := range restaurants {
		r.restaurants[restaurant.ID] = restaurant
	}
	r.menuItems = append([]models.MenuItem{}, items...)
	return nil
}

// MemoryOrderRepository is an in-memory order store
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
}

// NewMemoryOrderRepository creates an empty MemoryOrderRepository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[primitive.ObjectID]models.Order)}
}

func (r *MemoryOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = primitive.NewObjectID()
	r.orders[order.ID] = *order
	return nil
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	found := order
	return &found, nil
}

func (r *MemoryOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []models.Order{}
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	sortOrdersNewestFirst(orders)
	return orders, nil
}

func (r *MemoryOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.OrderStatus, expectedVersion int64) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	if order.Version != expectedVersion {
		return nil, fmt.Errorf("order %s was updated concurrently: %w", id.Hex(), apperr.ErrConflict)
	}
	order.Status = next
	order.Version++
	r.orders[id] = order
	updated := order
	return &updated, nil
}

func sortOrdersNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
