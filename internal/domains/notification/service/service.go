package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"seaview/config"
	"seaview/infras/kafka"
	"seaview/infras/otel"
	bookingModel "seaview/internal/domains/booking/model"
	"seaview/internal/domains/notification/model"
	"seaview/shared/constant"
)

// Notifier delivers booking notifications to the guest and the operator.
// Delivery is best effort: callers run it off the request path and a failed
// send never fails the booking itself.
type Notifier interface {
	BookingCreated(ctx context.Context, booking bookingModel.Booking) error
	StatusChanged(ctx context.Context, booking bookingModel.Booking, previousStatus string) error
}

type serviceImpl struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	events kafka.Client
	otel   otel.Otel
}

func New(cfg *config.Config, events kafka.Client, ot otel.Otel) Notifier {
	var dialer *gomail.Dialer
	if cfg.Mail.Enable {
		dialer = gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)
	}

	return &serviceImpl{
		cfg:    cfg,
		dialer: dialer,
		events: events,
		otel:   ot,
	}
}

func (s *serviceImpl) BookingCreated(ctx context.Context, booking bookingModel.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookingCreated")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.publishEvent(ctx, model.Event{
		Type:      model.EventBookingCreated,
		BookingID: booking.ID,
		Status:    booking.Status,
		CheckIn:   booking.CheckIn.Format(time.DateOnly),
		CheckOut:  booking.CheckOut.Format(time.DateOnly),
	})

	if s.dialer == nil {
		log.Debug().Msg("mail disabled, skipping booking notifications")

		return nil
	}

	if err := s.send(booking.Email,
		fmt.Sprintf("Booking request received for %s", s.cfg.Property.Name),
		guestRequestBody(booking, s.cfg.Property.Name)); err != nil {
		return err
	}

	if s.cfg.Mail.OperatorEmail != "" {
		return s.send(s.cfg.Mail.OperatorEmail,
			fmt.Sprintf("New booking request %s", booking.ID),
			operatorAlertBody(booking))
	}

	return nil
}

func (s *serviceImpl) StatusChanged(ctx context.Context, booking bookingModel.Booking, previousStatus string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StatusChanged")
	defer scope.End()
	defer scope.TraceIfError(err)

	s.publishEvent(ctx, model.Event{
		Type:           model.EventStatusChanged,
		BookingID:      booking.ID,
		Status:         booking.Status,
		PreviousStatus: &previousStatus,
		CheckIn:        booking.CheckIn.Format(time.DateOnly),
		CheckOut:       booking.CheckOut.Format(time.DateOnly),
	})

	if s.dialer == nil {
		log.Debug().Msg("mail disabled, skipping status notification")

		return nil
	}

	return s.send(booking.Email,
		fmt.Sprintf("Your booking is now %s", booking.Status),
		statusChangeBody(booking, previousStatus))
}

func (s *serviceImpl) publishEvent(ctx context.Context, event model.Event) {
	if !s.cfg.Kafka.Enable || s.events == nil {
		return
	}

	event.OccurredAt = time.Now().UTC().Format(time.RFC3339)

	err := s.events.SendMessages(ctx, s.cfg.Kafka.Topic, kafka.Message{
		Key:   event.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.cfg.Mail.From)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	err := s.dialer.DialAndSend(message)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send notification mail")

		return fmt.Errorf("failed to send notification mail: %w", err)
	}

	return nil
}

func guestRequestBody(booking bookingModel.Booking, propertyName string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nWe received your booking request for %s, %s to %s (%d guests).\n"+
			"Total: %.2f. We will confirm it shortly.\n",
		booking.FirstName,
		propertyName,
		booking.CheckIn.Format(time.DateOnly),
		booking.CheckOut.Format(time.DateOnly),
		booking.Guests,
		booking.TotalPrice,
	)
}

func operatorAlertBody(booking bookingModel.Booking) string {
	return fmt.Sprintf(
		"New booking request %s\nGuest: %s (%s, %s)\nStay: %s to %s, %d guests\nTotal: %.2f\n",
		booking.ID,
		booking.GuestName(),
		booking.Email,
		booking.Phone,
		booking.CheckIn.Format(time.DateOnly),
		booking.CheckOut.Format(time.DateOnly),
		booking.Guests,
		booking.TotalPrice,
	)
}

func statusChangeBody(booking bookingModel.Booking, previousStatus string) string {
	return fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s to %s changed from %s to %s.\n",
		booking.FirstName,
		booking.CheckIn.Format(time.DateOnly),
		booking.CheckOut.Format(time.DateOnly),
		previousStatus,
		booking.Status,
	)
}
