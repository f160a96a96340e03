// Package contact relays contact form submissions as outbound email.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nirbhaysingh/portfolio/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultFrom is the sender identity used when none is configured.
	DefaultFrom = "Contact Form <onboarding@resend.dev>"
	// DefaultSubjectPrefix labels every relayed subject line.
	DefaultSubjectPrefix = "Contact Form: "
)

var tracer = otel.Tracer("github.com/nirbhaysingh/portfolio/internal/contact")

// ErrNotConfigured reports that sending was attempted without the settings
// the provider needs, such as an API key or a recipient.
var ErrNotConfigured = errors.New("contact email is not configured")

// Message is one contact form submission.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Email is the outbound email handed to a provider.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Receipt is the provider acknowledgment of an accepted email.
type Receipt struct {
	ID string `json:"id"`
}

// Provider delivers one email.
type Provider interface {
	SendEmail(ctx context.Context, email Email) (Receipt, error)
}

// DeliveryKind classifies a failed delivery.
type DeliveryKind string

const (
	// DeliveryRejected means the provider answered with an error object.
	DeliveryRejected DeliveryKind = "rejected"
	// DeliveryTimeout means no answer arrived before the deadline.
	DeliveryTimeout DeliveryKind = "timeout"
	// DeliveryUnreachable means the provider could not be contacted.
	DeliveryUnreachable DeliveryKind = "unreachable"
)

// DeliveryError is a failed send.
type DeliveryError struct {
	Kind       DeliveryKind
	StatusCode int
	Name       string
	Message    string
	Err        error
}

func (e *DeliveryError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("email delivery %s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("email delivery %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("email delivery %s", e.Kind)
	}
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Config holds the fixed envelope of relayed messages.
type Config struct {
	From          string
	To            []string
	SubjectPrefix string
	Timeout       time.Duration
}

// Relay turns messages into single outbound emails.
type Relay struct {
	provider Provider
	cfg      Config
}

// NewRelay builds a relay. Missing settings are reported when sending, not
// here, so the site still starts without mail configured.
func NewRelay(provider Provider, cfg Config) *Relay {
	if strings.TrimSpace(cfg.From) == "" {
		cfg.From = DefaultFrom
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = DefaultSubjectPrefix
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.EmailSend
	}
	return &Relay{provider: provider, cfg: cfg}
}

// Send delivers msg with exactly one provider call. Input is expected to be
// validated by the caller.
func (r *Relay) Send(ctx context.Context, msg Message) (Receipt, error) {
	ctx, span := tracer.Start(ctx, "contact.Relay.Send")
	defer span.End()

	if r == nil || r.provider == nil || len(r.cfg.To) == 0 {
		span.SetStatus(codes.Error, "not configured")
		return Receipt{}, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	receipt, err := r.provider.SendEmail(ctx, r.compose(msg))
	if err != nil {
		err = classify(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "send email")
		return Receipt{}, err
	}
	span.SetAttributes(attribute.String("contact.receipt_id", receipt.ID))
	return receipt, nil
}

func (r *Relay) compose(msg Message) Email {
	return Email{
		From:    r.cfg.From,
		To:      append([]string(nil), r.cfg.To...),
		ReplyTo: msg.Email,
		Subject: r.cfg.SubjectPrefix + msg.Subject,
		Text:    Body(msg),
	}
}

// Body formats the plaintext email body for msg.
func Body(msg Message) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\nMessage: %s", msg.Name, msg.Email, msg.Subject, msg.Body)
}

// classify reports a hit deadline as a timeout unless the provider already
// answered with a rejection. Errors outside the provider contract count as
// unreachable.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, ErrNotConfigured) {
		return err
	}
	var delivery *DeliveryError
	isDelivery := errors.As(err, &delivery)
	if isDelivery && delivery.Kind == DeliveryRejected {
		return delivery
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		if isDelivery && delivery.Kind == DeliveryTimeout {
			return delivery
		}
		return &DeliveryError{Kind: DeliveryTimeout, Err: err}
	}
	if isDelivery {
		return delivery
	}
	return &DeliveryError{Kind: DeliveryUnreachable, Err: err}
}
