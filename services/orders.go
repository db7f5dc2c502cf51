// services/orders.go
package services

import (
	"context"
	"fmt"
	"time"

	"foodexpress/apperr"
	"foodexpress/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService is the order ledger: it creates orders from line-item snapshots and
// governs the status lifecycle. Reads for presentation live in QueryService.
type OrderService struct {
	orders OrderRepository
	users  UserRepository
	events OrderEventPublisher
	mailer OrderMailer
	logger *logrus.Logger
}

// NewOrderService creates a new OrderService. events and mailer may be nil.
func NewOrderService(orders OrderRepository, users UserRepository, events OrderEventPublisher, mailer OrderMailer, logger *logrus.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		events: events,
		mailer: mailer,
		logger: logger,
	}
}

// PlaceOrder validates the line items, computes the total server-side, and persists
// the order with status Pending. The client-sent total is ignored. Existence of
// user_id/restaurant_id is deliberately not checked; a dangling reference shows up
// as a missing join in read views, never as a placement failure.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	if err := validatePlaceOrder(&req); err != nil {
		return nil, err
	}

	total := 0.0
	for _, item := range req.Items {
		total += item.Price * float64(item.Quantity)
	}

	order := &models.Order{
		UserID:          req.UserID,
		RestaurantID:    req.RestaurantID,
		Items:           req.Items,
		TotalAmount:     total,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Status:          models.StatusPending,
		Version:         1,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     order.ID.Hex(),
		"user_id":      order.UserID.Hex(),
		"total_amount": order.TotalAmount,
		"items_count":  len(order.Items),
	}).Info("Order placed")

	if s.events != nil {
		if err := s.events.OrderPlaced(ctx, order); err != nil {
			s.logger.WithError(err).Error("Failed to publish order placed event")
		}
	}
	s.notify(order, func(email string) error {
		return s.mailer.SendOrderConfirmation(email, order)
	})

	return order, nil
}

// UpdateStatus advances an order through the lifecycle. Illegal transitions and
// unknown status values fail validation; a concurrent update of the same order
// loses with apperr.ErrConflict.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, apperr.Validation("status", fmt.Sprintf("unknown status %q", next))
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		if order.Status.Terminal() {
			return nil, apperr.Validation("status", fmt.Sprintf("order is %s; no further transitions allowed", order.Status))
		}
		return nil, apperr.Validation("status", fmt.Sprintf("cannot transition from %s to %s", order.Status, next))
	}

	previous := order.Status
	updated, err := s.orders.UpdateStatus(ctx, id, next, order.Version)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": updated.ID.Hex(),
		"from":     string(previous),
		"to":       string(updated.Status),
	}).Info("Order status updated")

	if s.events != nil {
		if err := s.events.OrderStatusChanged(ctx, updated, previous); err != nil {
			s.logger.WithError(err).Error("Failed to publish status changed event")
		}
	}
	s.notify(updated, func(email string) error {
		return s.mailer.SendStatusUpdate(email, updated)
	})

	return updated, nil
}

// notify emails the ordering user in the background, best-effort. A dangling user
// reference or mail failure is logged and otherwise ignored.
func (s *OrderService) notify(order *models.Order, send func(email string) error) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.users.FindByID(ctx, order.UserID)
		if err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID.Hex()).Warn("Skipping order mail, user lookup failed")
			return
		}
		if err := send(user.Email); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID.Hex()).Error("Failed to send order mail")
		}
	}()
}

func validatePlaceOrder(req *models.PlaceOrderRequest) error {
	if req.UserID.IsZero() {
		return apperr.Validation("user_id", "user id is required")
	}
	if req.RestaurantID.IsZero() {
		return apperr.Validation("restaurant_id", "restaurant id is required")
	}
	if len(req.Items) == 0 {
		return apperr.Validation("items", "at least one line item is required")
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return apperr.Validation("items", fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if item.Price < 0 {
			return apperr.Validation("items", fmt.Sprintf("item %d: price must not be negative", i))
		}
	}
	if req.DeliveryAddress == "" {
		return apperr.Validation("delivery_address", "delivery address is required")
	}
	if req.Phone == "" {
		return apperr.Validation("phone", "phone is required")
	}
	return nil
}
