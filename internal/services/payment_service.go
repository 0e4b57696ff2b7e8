package services

import (
	"context"
	"errors"

	"jamride/internal/config"
	"jamride/internal/models"
	"jamride/internal/repositories/interfaces"
	"jamride/pkg/logger"
	"jamride/pkg/payment"
)

var ErrRequestNotAccepted = errors.New("join request has not been accepted")

type PaymentService interface {
	// CreateCheckout opens a hosted payment page for a passenger's share
	// of a ride. Only allowed once the driver has accepted the passenger's
	// join request.
	CreateCheckout(ctx context.Context, payer models.Identity, threadID string) (*payment.CheckoutResponse, error)
}

type paymentService struct {
	chatRepo interfaces.ChatRepository
	provider payment.CheckoutProvider
	config   *config.StripeConfig
	logger   *logger.Logger
}

func NewPaymentService(chatRepo interfaces.ChatRepository, provider payment.CheckoutProvider, cfg *config.StripeConfig, log *logger.Logger) PaymentService {
	return &paymentService{
		chatRepo: chatRepo,
		provider: provider,
		config:   cfg,
		logger:   log,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, payer models.Identity, threadID string) (*payment.CheckoutResponse, error) {
	thread, err := s.chatRepo.GetThread(ctx, payer.ID, threadID)
	if err != nil {
		return nil, err
	}
	if thread.Ride.Status != models.RequestStatusAccepted {
		return nil, ErrRequestNotAccepted
	}

	response, err := s.provider.CreateCheckoutSession(ctx, &payment.CheckoutRequest{
		PriceID:    s.config.PriceID,
		Quantity:   1,
		SuccessURL: s.config.SuccessURL,
		CancelURL:  s.config.CancelURL,
		Metadata: map[string]string{
			"ride_id":   thread.Ride.ID,
			"thread_id": thread.ID,
			"user_id":   payer.ID,
		},
	})
	if err != nil {
		s.logger.WithError(err).WithThreadID(threadID).Error("Checkout session creation failed")
		return nil, err
	}

	s.logger.WithThreadID(threadID).WithUserID(payer.ID).
		WithField("session_id", response.SessionID).Info("Checkout session created")
	return response, nil
}
