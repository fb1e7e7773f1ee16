package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sportzone/backend/internal/domain/entities"
	"github.com/sportzone/backend/internal/domain/providers"
)

// TextSender delivers a plain text message to a phone number
type TextSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

const notificationSendTimeout = 10 * time.Second

// NotificationService sends booking confirmations for stored bookings
type NotificationService struct {
	bus    providers.EventBus
	sender TextSender
}

// NewNotificationService creates a new notification service
func NewNotificationService(bus providers.EventBus, sender TextSender) *NotificationService {
	return &NotificationService{bus: bus, sender: sender}
}

// Run consumes booking events until ctx is done or the bus closes
func (n *NotificationService) Run(ctx context.Context) error {
	events, err := n.bus.Subscribe(ctx, providers.EventChannelBookingsConfirmed)
	if err != nil {
		return fmt.Errorf("failed to subscribe to booking events: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			n.handle(ctx, event)
		}
	}
}

func (n *NotificationService) handle(ctx context.Context, event *entities.BookingEvent) {
	if event == nil || event.Type != entities.BookingEventConfirmed {
		return
	}

	to := NormalizePhone(event.Phone)
	if to == "" {
		log.Debug().Str("booking_id", event.BookingID).Msg("no phone number for booking confirmation")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, notificationSendTimeout)
	defer cancel()

	messageID, err := n.sender.SendText(sendCtx, to, ConfirmationMessage(event))
	if err != nil {
		log.Warn().Err(err).Str("booking_id", event.BookingID).Msg("failed to send booking confirmation")
		return
	}
	log.Info().Str("booking_id", event.BookingID).Str("message_id", messageID).Msg("booking confirmation sent")
}

// ConfirmationMessage renders the WhatsApp confirmation text
func ConfirmationMessage(event *entities.BookingEvent) string {
	var b strings.Builder
	name := event.CustomerName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s, your SportZone booking is confirmed.\n\n", name)
	fmt.Fprintf(&b, "%s\n", event.ServiceName)
	if event.ServiceType == entities.ServiceTypeFacility {
		when := longDate(event.BookingDate)
		if event.BookingTime != "" {
			when += " at " + event.BookingTime
		}
		fmt.Fprintf(&b, "%s\n", when)
	}
	fmt.Fprintf(&b, "Amount paid: %s\n", entities.FormatNaira(event.Amount))
	fmt.Fprintf(&b, "Payment reference: %s\n\n", event.PaymentReference)
	b.WriteString("Please arrive 15 minutes early with a valid ID. SportZone, 123 Sports Avenue, Victoria Island, Lagos.")
	return b.String()
}

// NormalizePhone converts Nigerian numbers to the international digits the
// WhatsApp API expects, e.g. 0803 123 4567 -> 2348031234567
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case d == "":
		return ""
	case strings.HasPrefix(d, "234"):
		return d
	case strings.HasPrefix(d, "0") && len(d) == 11:
		return "234" + d[1:]
	case len(d) == 10:
		return "234" + d
	}
	return d
}
