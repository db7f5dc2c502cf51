package repository

import (
	"context"
	"errors"
	"fmt"

	"foodexpress/apperr"
	"foodexpress/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepository reads restaurants and menu items. The order domain never
// writes through it; ReplaceCatalog exists solely for the seeding collaborator.
type MongoCatalogRepository struct {
	client      *mongo.Client
	restaurants *mongo.Collection
	menuItems   *mongo.Collection
	logger      *logrus.Logger
}

// NewMongoCatalogRepository creates a new MongoCatalogRepository
func NewMongoCatalogRepository(client *mongo.Client, logger *logrus.Logger) *MongoCatalogRepository {
	db := client.Database(databaseName)
	return &MongoCatalogRepository{
		client:      client,
		restaurants: db.Collection("restaurants"),
		menuItems:   db.Collection("menu_items"),
		logger:      logger,
	}
}

// ListRestaurants returns every restaurant in the catalog.
func (r *MongoCatalogRepository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	cursor, err := r.restaurants.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}
	return restaurants, nil
}

// GetRestaurant returns a single restaurant by id.
func (r *MongoCatalogRepository) GetRestaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("restaurant %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &restaurant, nil
}

// FindRestaurants returns the restaurants matching the given ids, keyed by id.
func (r *MongoCatalogRepository) FindRestaurants(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Restaurant, error) {
	found := make(map[primitive.ObjectID]models.Restaurant, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	cursor, err := r.restaurants.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var restaurant models.Restaurant
		if err := cursor.Decode(&restaurant); err != nil {
			return nil, fmt.Errorf("decode restaurant: %w", err)
		}
		found[restaurant.ID] = restaurant
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("restaurants cursor: %w", err)
	}
	return found, nil
}

// ListMenu returns the menu items of a restaurant. An unknown restaurant yields an
// empty slice, not a not-found error.
func (r *MongoCatalogRepository) ListMenu(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error) {
	cursor, err := r.menuItems.Find(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return items, nil
}

// ReplaceCatalog swaps the whole catalog for the given data set. It runs inside a
// transaction when the server supports one (replica set); on a standalone server it
// falls back to sequential delete+insert, accepting the partial-state window.
func (r *MongoCatalogRepository) ReplaceCatalog(ctx context.Context, restaurants []models.Restaurant, items []models.MenuItem) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, r.replaceAll(sc, restaurants, items)
	})
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != 20 { // 20 = IllegalOperation: no replica set
		return fmt.Errorf("replace catalog: %w", err)
	}

	r.logger.Warn("Transactions unsupported by this MongoDB deployment; reseeding catalog non-atomically")
	if err := r.replaceAll(ctx, restaurants, items); err != nil {
		return fmt.Errorf("replace catalog (non-atomic): %w", err)
	}
	return nil
}

func (r *MongoCatalogRepository) replaceAll(ctx context.Context, restaurants []models.Restaurant, items []models.MenuItem) error {
	if _, err := r.restaurants.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if _, err := r.menuItems.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}

	restaurantDocs := make([]interface{}, len(restaurants))
	for i, restaurant := range restaurants {
		restaurantDocs[i] = restaurant
	}
	if _, err := r.restaurants.InsertMany(ctx, restaurantDocs); err != nil {
		return err
	}

	itemDocs := make([]interface{}, len(items))
	for i, item := range items {
		itemDocs[i] = item
	}
	if _, err := r.menuItems.InsertMany(ctx, itemDocs); err != nil {
		return err
	}
	return nil
}
