// utils/email.go
package utils

import (
	"fmt"
	"os"

	"foodexpress/models"

	"github.com/keighl/postmark"
	"github.com/sirupsen/logrus"
)

// EmailService sends order notification email using Postmark
type EmailService struct {
	client *postmark.Client
	sender string
	logger *logrus.Logger
}

// NewEmailService initializes the EmailService. Returns nil when no Postmark token
// is configured; notification mail is optional.
func NewEmailService(logger *logrus.Logger) *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		logger.Info("POSTMARK_API_TOKEN not set; order notification mail disabled")
		return nil
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
		logger: logger,
	}
}

// SendOrderConfirmation mails the user after their order is placed.
func (es *EmailService) SendOrderConfirmation(toEmail string, order *models.Order) error {
	subject := "Order Confirmation - FoodExpress"
	content := fmt.Sprintf(
		"Dear customer,\n\nYour order (ID: %s) has been placed successfully.\n\nTotal Amount: $%.2f\nDelivery Address: %s\n\nThank you for ordering with FoodExpress!\n",
		order.ID.Hex(), order.TotalAmount, order.DeliveryAddress,
	)
	return es.send(toEmail, subject, content)
}

// SendStatusUpdate mails the user when their order changes status.
func (es *EmailService) SendStatusUpdate(toEmail string, order *models.Order) error {
	subject := "Order Status Updated - FoodExpress"
	content := fmt.Sprintf(
		"Dear customer,\n\nYour order (ID: %s) is now '%s'.\n\nThank you for ordering with FoodExpress!\n",
		order.ID.Hex(), order.Status,
	)
	return es.send(toEmail, subject, content)
}

func (es *EmailService) send(toEmail, subject, textContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		TextBody: textContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	es.logger.WithField("subject", subject).Info("Email sent")
	return nil
}
