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

const databaseName = "foodexpress"

// MongoUserRepository persists accounts in the users collection
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(client *mongo.Client) *MongoUserRepository {
	return &MongoUserRepository{
		collection: client.Database(databaseName).Collection("users"),
	}
}

// EnsureIndexes creates the unique indexes backing the username/email constraints.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	return nil
}

// Create inserts a new user. Returns apperr.ErrConflict when the username or email
// is already taken.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	// Pre-check keeps the common case cheap; the unique index backstops races.
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{{"email": user.Email}, {"username": user.Username}},
	})
	if err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("username or email already taken: %w", apperr.ErrConflict)
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username or email already taken: %w", apperr.ErrConflict)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByEmail looks a user up by exact email match.
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID looks a user up by id.
func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", id.Hex(), apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindSummaries returns credential-free summaries for the given user ids, keyed by id.
// Missing ids are simply absent from the result.
func (r *MongoUserRepository) FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	summaries := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	projection := options.Find().SetProjection(bson.M{
		"_id": 1, "username": 1, "email": 1, "phone": 1, "address": 1,
	})
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, projection)
	if err != nil {
		return nil, fmt.Errorf("find user summaries: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var summary models.UserSummary
		if err := cursor.Decode(&summary); err != nil {
			return nil, fmt.Errorf("decode user summary: %w", err)
		}
		summaries[summary.ID] = summary
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("user summaries cursor: %w", err)
	}
	return summaries, nil
}
