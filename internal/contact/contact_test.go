package contact

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubProvider struct {
	calls   int
	got     Email
	receipt Receipt
	err     error
	block   bool
}

func (p *stubProvider) SendEmail(ctx context.Context, email Email) (Receipt, error) {
	p.calls++
	p.got = email
	if p.block {
		<-ctx.Done()
		return Receipt{}, ctx.Err()
	}
	return p.receipt, p.err
}

var sample = Message{Name: "Ada", Email: "ada@example.com", Subject: "Hello", Body: "Nice site"}

func TestRelaySendComposesOneEmail(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{receipt: Receipt{ID: "msg-1"}}
	relay := NewRelay(provider, Config{To: []string{"owner@example.com"}})

	receipt, err := relay.Send(context.Background(), sample)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if receipt.ID != "msg-1" {
		t.Fatalf("receipt = %+v", receipt)
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
	got := provider.got
	if got.From != DefaultFrom {
		t.Fatalf("from = %q, want %q", got.From, DefaultFrom)
	}
	if got.Subject != "Contact Form: Hello" {
		t.Fatalf("subject = %q", got.Subject)
	}
	if got.ReplyTo != "ada@example.com" || len(got.To) != 1 || got.To[0] != "owner@example.com" {
		t.Fatalf("envelope = %+v", got)
	}
	want := "Name: Ada\nEmail: ada@example.com\nSubject: Hello\nMessage: Nice site"
	if got.Text != want {
		t.Fatalf("text = %q, want %q", got.Text, want)
	}
}

func TestRelaySendWithoutRecipientIsNotConfigured(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{}
	_, err := NewRelay(provider, Config{}).Send(context.Background(), sample)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider called %d times", provider.calls)
	}
}

func TestRelaySendPassesNotConfiguredThrough(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{err: ErrNotConfigured}
	_, err := NewRelay(provider, Config{To: []string{"x@example.com"}}).Send(context.Background(), sample)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestRelaySendClassifiesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider *stubProvider
		want     DeliveryKind
	}{
		{
			name:     "provider rejection",
			provider: &stubProvider{err: &DeliveryError{Kind: DeliveryRejected, StatusCode: 422, Message: "bad"}},
			want:     DeliveryRejected,
		},
		{
			name:     "deadline",
			provider: &stubProvider{block: true},
			want:     DeliveryTimeout,
		},
		{
			name:     "untyped error",
			provider: &stubProvider{err: errors.New("connection reset")},
			want:     DeliveryUnreachable,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			relay := NewRelay(tc.provider, Config{To: []string{"x@example.com"}, Timeout: 20 * time.Millisecond})
			_, err := relay.Send(context.Background(), sample)
			var delivery *DeliveryError
			if !errors.As(err, &delivery) {
				t.Fatalf("err = %v, want DeliveryError", err)
			}
			if delivery.Kind != tc.want {
				t.Fatalf("kind = %q, want %q", delivery.Kind, tc.want)
			}
			if tc.provider.calls != 1 {
				t.Fatalf("provider calls = %d, want 1", tc.provider.calls)
			}
		})
	}
}
