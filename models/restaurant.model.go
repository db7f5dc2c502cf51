package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant represents a restaurant in the catalog
type Restaurant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	Rating       float64            `bson:"rating" json:"rating"`
	DeliveryTime string             `bson:"delivery_time" json:"delivery_time"`
	Category     string             `bson:"category" json:"category"`
	IsOpen       bool               `bson:"is_open" json:"is_open"`
}

// MenuItem represents a dish offered by exactly one restaurant
type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id" json:"restaurant_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Category     string             `bson:"category" json:"category"`
	IsAvailable  bool               `bson:"is_available" json:"is_available"`
}
