package contact

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	domain "github.com/nirbhaysingh/portfolio/internal/contact"
)

type sendRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (r sendRequest) normalized() sendRequest {
	return sendRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

func (r sendRequest) message() domain.Message {
	return domain.Message{Name: r.Name, Email: r.Email, Subject: r.Subject, Body: r.Message}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors maps json field names to visitor-facing messages.
type fieldErrors map[string]string

// first returns the message of the earliest failing field in form order.
func (f fieldErrors) first() string {
	for _, field := range []string{"name", "email", "subject", "message"} {
		if msg, ok := f[field]; ok {
			return msg
		}
	}
	return "invalid request"
}

func validateRequest(req sendRequest) fieldErrors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fieldErrors{"request": "invalid request"}
	}
	out := make(fieldErrors, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "email":
			out[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}
