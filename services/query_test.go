package services_test

import (
	"context"
	"testing"
	"time"

	"foodexpress/apperr"
	"foodexpress/models"
	"foodexpress/repository"
	"foodexpress/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type queryFixture struct {
	svc        *services.QueryService
	orders     *repository.MemoryOrderRepository
	users      *repository.MemoryUserRepository
	catalog    *repository.MemoryCatalogRepository
	alice      models.User
	bob        models.User
	restaurant models.Restaurant
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()
	ctx := context.Background()

	users := repository.NewMemoryUserRepository()
	orders := repository.NewMemoryOrderRepository()
	catalog := repository.NewMemoryCatalogRepository()

	alice := models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(ctx, &alice))
	bob := models.User{Username: "bob", Email: "bob@x.com", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Create(ctx, &bob))

	restaurant := models.Restaurant{ID: primitive.NewObjectID(), Name: "Pizza Palace", IsOpen: true}
	require.NoError(t, catalog.ReplaceCatalog(ctx, []models.Restaurant{restaurant}, nil))

	return &queryFixture{
		svc:        services.NewQueryService(orders, users, catalog),
		orders:     orders,
		users:      users,
		catalog:    catalog,
		alice:      alice,
		bob:        bob,
		restaurant: restaurant,
	}
}

func (f *queryFixture) placeOrder(t *testing.T, userID, restaurantID primitive.ObjectID, createdAt time.Time) models.Order {
	t.Helper()
	order := models.Order{
		UserID:       userID,
		RestaurantID: restaurantID,
		Items: []models.OrderItem{
			{MenuItemID: primitive.NewObjectID(), Name: "Margherita Pizza", Price: 12.99, Quantity: 1},
		},
		TotalAmount:     12.99,
		DeliveryAddress: "1 Main St",
		Phone:           "555-0100",
		Status:          models.StatusPending,
		Version:         1,
		CreatedAt:       createdAt,
	}
	require.NoError(t, f.orders.Insert(context.Background(), &order))
	return order
}

func TestGetOrderAttachesRestaurant(t *testing.T) {
	fixture := newQueryFixture(t)
	order := fixture.placeOrder(t, fixture.alice.ID, fixture.restaurant.ID, time.Now().UTC())

	detail, err := fixture.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Restaurant)
	assert.Equal(t, "Pizza Palace", detail.Restaurant.Name)
	assert.Equal(t, order.ID, detail.Order.ID)
}

func TestGetOrderDanglingRestaurant(t *testing.T) {
	fixture := newQueryFixture(t)
	order := fixture.placeOrder(t, fixture.alice.ID, primitive.NewObjectID(), time.Now().UTC())

	detail, err := fixture.svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Restaurant)
}

func TestGetOrderNotFound(t *testing.T) {
	fixture := newQueryFixture(t)
	_, err := fixture.svc.GetOrder(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListUserOrdersFiltersAndSorts(t *testing.T) {
	fixture := newQueryFixture(t)
	base := time.Now().UTC()

	oldest := fixture.placeOrder(t, fixture.alice.ID, fixture.restaurant.ID, base.Add(-2*time.Hour))
	newest := fixture.placeOrder(t, fixture.alice.ID, fixture.restaurant.ID, base)
	middle := fixture.placeOrder(t, fixture.alice.ID, fixture.restaurant.ID, base.Add(-time.Hour))
	fixture.placeOrder(t, fixture.bob.ID, fixture.restaurant.ID, base)

	details, err := fixture.svc.ListUserOrders(context.Background(), fixture.alice.ID)
	require.NoError(t, err)
	require.Len(t, details, 3)

	assert.Equal(t, newest.ID, details[0].Order.ID)
	assert.Equal(t, middle.ID, details[1].Order.ID)
	assert.Equal(t, oldest.ID, details[2].Order.ID)
	for _, detail := range details {
		assert.Equal(t, fixture.alice.ID, detail.Order.UserID)
		require.NotNil(t, detail.Restaurant)
	}
}

func TestListAllOrdersDashboardView(t *testing.T) {
	fixture := newQueryFixture(t)
	base := time.Now().UTC()

	fixture.placeOrder(t, fixture.alice.ID, fixture.restaurant.ID, base.Add(-time.Minute))
	fixture.placeOrder(t, fixture.bob.ID, fixture.restaurant.ID, base)
	dangling := fixture.placeOrder(t, primitive.NewObjectID(), fixture.restaurant.ID, base.Add(-2*time.Minute))

	details, err := fixture.svc.ListAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 3)

	// Newest first, user summaries attached, credentials never exposed.
	assert.Equal(t, fixture.bob.ID, details[0].Order.UserID)
	require.NotNil(t, details[0].User)
	assert.Equal(t, "bob", details[0].User.Username)
	require.NotNil(t, details[1].User)
	assert.Equal(t, "alice", details[1].User.Username)

	// A dangling user reference yields a nil join, not an error.
	assert.Equal(t, dangling.ID, details[2].Order.ID)
	assert.Nil(t, details[2].User)
	require.NotNil(t, details[2].Restaurant)
}
