package contact

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	domain "github.com/nirbhaysingh/portfolio/internal/contact"
	"github.com/nirbhaysingh/portfolio/internal/platform/telemetry/metrics"
	module "github.com/nirbhaysingh/portfolio/internal/services/site/module"
	"github.com/nirbhaysingh/portfolio/internal/services/site/platform/httpx"
)

const maxRequestBody = 64 << 10

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

type sendData struct {
	ID string `json:"id"`
}

type sendResponse struct {
	Success bool     `json:"success"`
	Data    sendData `json:"data"`
}

type providerError struct {
	StatusCode int    `json:"statusCode,omitempty"`
	Name       string `json:"name,omitempty"`
	Message    string `json:"message,omitempty"`
}

type errorResponse struct {
	Error     string         `json:"error"`
	Fields    fieldErrors    `json:"fields,omitempty"`
	Provider  *providerError `json:"provider,omitempty"`
	Retryable bool           `json:"retryable"`
}

func (h handlers) handleSend(w http.ResponseWriter, r *http.Request) {
	if !h.deps.ContactLimiter.Allow(httpx.ClientIP(r, h.deps.TrustedProxies)) {
		h.record(metrics.OutcomeRateLimited)
		retry := h.deps.ContactLimiter.RetryAfter()
		w.Header().Set("Retry-After", strconv.Itoa(max(int(retry.Seconds()), 1)))
		_ = httpx.WriteJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:     "too many messages, please wait a moment",
			Retryable: true,
		})
		return
	}

	var req sendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		h.record(metrics.OutcomeInvalid)
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	req = req.normalized()
	if fields := validateRequest(req); fields != nil {
		h.record(metrics.OutcomeInvalid)
		_ = httpx.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: fields.first(), Fields: fields})
		return
	}

	if h.deps.Contact == nil {
		h.writeSendError(w, r, domain.ErrNotConfigured)
		return
	}
	receipt, err := h.deps.Contact.Send(httpx.RequestContext(r), req.message())
	if err != nil {
		h.writeSendError(w, r, err)
		return
	}
	h.record(metrics.OutcomeSent)
	_ = httpx.WriteJSON(w, http.StatusOK, sendResponse{Success: true, Data: sendData{ID: receipt.ID}})
}

func (h handlers) writeSendError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("contact send failed request_id=%s err=%v", httpx.RequestIDOf(r), err)

	if errors.Is(err, domain.ErrNotConfigured) {
		h.record(metrics.OutcomeNotConfigured)
		_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "the contact form is not available right now"})
		return
	}

	var delivery *domain.DeliveryError
	if !errors.As(err, &delivery) {
		h.record(metrics.OutcomeUnreachable)
		_ = httpx.WriteJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to send email", Retryable: true})
		return
	}
	switch delivery.Kind {
	case domain.DeliveryRejected:
		h.record(metrics.OutcomeRejected)
		_ = httpx.WriteJSON(w, http.StatusBadGateway, errorResponse{
			Error: "the email provider rejected the message",
			Provider: &providerError{
				StatusCode: delivery.StatusCode,
				Name:       delivery.Name,
				Message:    delivery.Message,
			},
			Retryable: delivery.StatusCode == http.StatusTooManyRequests || delivery.StatusCode >= http.StatusInternalServerError,
		})
	case domain.DeliveryTimeout:
		h.record(metrics.OutcomeTimeout)
		_ = httpx.WriteJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "the email provider did not answer in time", Retryable: true})
	default:
		h.record(metrics.OutcomeUnreachable)
		_ = httpx.WriteJSON(w, http.StatusBadGateway, errorResponse{Error: "the email provider could not be reached", Retryable: true})
	}
}

func (h handlers) record(outcome string) {
	if h.deps.RecordContact != nil {
		h.deps.RecordContact(outcome)
	}
}
