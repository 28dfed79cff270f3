package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/model"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/app/repository"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/notification/email"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/notification/whatsapp"
)

var (
	ErrNoRecipient        = errors.New("customer has no recipient for the preferred channel")
	ErrChannelUnavailable = errors.New("notification channel not configured")
)

const notifySendTimeout = 15 * time.Second

var statusMessages = map[model.OrderStatus]string{
	model.OrderStatusConfirmed: "Your order #%d has been confirmed. We are getting it ready!",
	model.OrderStatusShipped:   "Good news! Order #%d is on its way.",
	model.OrderStatusDelivered: "Order #%d was delivered. Thank you for shopping with us!",
	model.OrderStatusCancelled: "Order #%d has been cancelled. Contact us if this is unexpected.",
}

// NotificationService sends order status messages over the channel each
// customer chose at checkout and records every attempt, failed or not.
type NotificationService interface {
	NotifyStatusChange(order *model.Order, status model.OrderStatus) error
	GetHistory(orderID uint) ([]model.NotificationRecord, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	emailSender      email.Sender
	whatsappClient   *whatsapp.Client
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	emailSender email.Sender,
	whatsappClient *whatsapp.Client,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		emailSender:      emailSender,
		whatsappClient:   whatsappClient,
	}
}

func (s *notificationService) NotifyStatusChange(order *model.Order, status model.OrderStatus) error {
	body, ok := statusMessages[status]
	if !ok {
		// Pending has no customer-facing message
		return nil
	}
	message := fmt.Sprintf(body, order.ID)

	channel, recipient, err := s.resolveChannel(&order.Customer)

	record := &model.NotificationRecord{
		OrderID:      order.ID,
		Channel:      channel,
		Recipient:    recipient,
		TargetStatus: status,
		Status:       model.NotificationSent,
	}

	if err == nil {
		err = s.send(channel, recipient, order, message)
	}
	if err != nil {
		record.Status = model.NotificationFailed
		record.ErrorMessage = err.Error()
	}

	if createErr := s.notificationRepo.Create(record); createErr != nil {
		logger.Error("Failed to persist notification record", createErr, map[string]interface{}{
			"order_id": order.ID,
		})
	}

	if err != nil {
		logger.Error("Notification dispatch failed", err, map[string]interface{}{
			"order_id": order.ID,
			"channel":  channel,
			"status":   status,
		})
		return err
	}

	logger.Info("Notification sent", map[string]interface{}{
		"order_id": order.ID,
		"channel":  channel,
		"status":   status,
	})
	return nil
}

func (s *notificationService) GetHistory(orderID uint) ([]model.NotificationRecord, error) {
	return s.notificationRepo.FindByOrderID(orderID)
}

func (s *notificationService) resolveChannel(customer *model.Customer) (model.NotificationChannel, string, error) {
	switch customer.ContactPreference {
	case model.ContactWhatsApp:
		if customer.Phone == "" {
			return model.ChannelWhatsApp, "", ErrNoRecipient
		}
		if s.whatsappClient == nil {
			return model.ChannelWhatsApp, customer.Phone, ErrChannelUnavailable
		}
		return model.ChannelWhatsApp, customer.Phone, nil
	default:
		if customer.Email == "" {
			return model.ChannelEmail, "", ErrNoRecipient
		}
		if s.emailSender == nil {
			return model.ChannelEmail, customer.Email, ErrChannelUnavailable
		}
		return model.ChannelEmail, customer.Email, nil
	}
}

func (s *notificationService) send(channel model.NotificationChannel, recipient string, order *model.Order, message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), notifySendTimeout)
	defer cancel()

	switch channel {
	case model.ChannelWhatsApp:
		_, err := s.whatsappClient.SendText(ctx, recipient, message)
		return err
	default:
		return s.emailSender.Send(ctx, &email.Message{
			To:      recipient,
			Subject: fmt.Sprintf("Order #%d update", order.ID),
			Content: message,
		})
	}
}
