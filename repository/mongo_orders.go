package repository

import (
	"context"
	"errors"
	"fmt"

	"foodexpress/apperr"
	"foodexpress/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepository persists orders in the orders collection
type MongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates a new MongoOrderRepository
func NewMongoOrderRepository(client *mongo.Client) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: client.Database(databaseName).Collection("orders"),
	}
}

// Insert stores a new order and fills in its generated id.
func (r *MongoOrderRepository) Insert(ctx context.Context, order *models.Order) error {
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID returns a single order by id.
func (r *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("order %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// FindByUser returns a user's orders, newest first.
func (r *MongoOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// FindAll returns every order, newest first.
func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	sort := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, sort)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the order's status if its version still matches expectedVersion,
// bumping the version so a concurrent update loses with apperr.ErrConflict instead of
// silently overwriting the transition.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.OrderStatus, expectedVersion int64) (*models.Order, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": id, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"status": next},
		"$inc": bson.M{"version": 1},
	}

	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, after).Decode(&order)
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	// No match: either the order is gone or another update won the race.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, fmt.Errorf("order %s was updated concurrently: %w", id.Hex(), apperr.ErrConflict)
}
