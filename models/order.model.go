package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusOnTheWay  OrderStatus = "On the Way"
	StatusDelivered OrderStatus = "Delivered"
	StatusCancelled OrderStatus = "Cancelled"
)

// statusFlow is the allowed forward transition table. Cancelled is reachable from any
// non-terminal state; Delivered and Cancelled absorb.
var statusFlow = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusOnTheWay, StatusCancelled},
	StatusOnTheWay:  {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	_, ok := statusFlow[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return len(statusFlow[s]) == 0 && s.Valid()
}

// CanTransitionTo reports whether s -> next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a snapshot of a menu item captured at order time. Later catalog edits
// or deletions never alter it; MenuItemID is a back-reference only.
type OrderItem struct {
	MenuItemID primitive.ObjectID `bson:"menu_item_id" json:"menu_item_id"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Image      string             `bson:"image" json:"image"`
}

// Order represents a placed order
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	RestaurantID    primitive.ObjectID `bson:"restaurant_id" json:"restaurant_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"total_amount" json:"total_amount"`
	DeliveryAddress string             `bson:"delivery_address" json:"delivery_address"`
	Phone           string             `bson:"phone" json:"phone"`
	Status          OrderStatus        `bson:"status" json:"status"`
	Version         int64              `bson:"version" json:"-"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// OrderDetail is an order joined with its restaurant, and for the dashboard view the
// ordering user's summary. Join fields stay nil when the reference dangles.
type OrderDetail struct {
	Order
	Restaurant *Restaurant  `json:"restaurant,omitempty"`
	User       *UserSummary `json:"user,omitempty"`
}

// PlaceOrderRequest is the payload for POST /api/orders. TotalAmount is accepted for
// wire compatibility with older clients but the server recomputes it from Items.
type PlaceOrderRequest struct {
	UserID          primitive.ObjectID `json:"user_id"`
	RestaurantID    primitive.ObjectID `json:"restaurant_id"`
	Items           []OrderItem        `json:"items"`
	TotalAmount     float64            `json:"total_amount"`
	DeliveryAddress string             `json:"delivery_address"`
	Phone           string             `json:"phone"`
}

// UpdateStatusRequest is the payload for PUT /api/orders/{id}/status
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}
