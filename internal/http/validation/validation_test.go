package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sampleInput struct {
	Email  string `json:"email" validate:"required,email"`
	Title  string `json:"title,omitempty" validate:"required,max=10"`
	Amount int64  `form:"amount" validate:"gt=0"`
	Plain  string `validate:"required"`
}

func TestFromBindError(t *testing.T) {
	v := validator.New()

	err := v.Struct(sampleInput{Email: "not-an-email", Title: "way too long for ten", Amount: -5})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := FromBindError(err, &sampleInput{})

	want := map[string]string{
		"email":  "Enter a valid email address.",
		"title":  "Must be at most 10 characters.",
		"amount": "Must be greater than 0.",
		"plain":  "This field is required.",
	}
	for key, msg := range want {
		if fields[key] != msg {
			t.Errorf("fields[%q] = %q, want %q", key, fields[key], msg)
		}
	}
	if len(fields) != len(want) {
		t.Errorf("fields = %v, want %d entries", fields, len(want))
	}
}

func TestFromBindErrorNonValidation(t *testing.T) {
	fields := FromBindError(errors.New("unexpected EOF"), &sampleInput{})
	if fields["_"] != "Request body is invalid." {
		t.Errorf("fields = %v, want generic body error under _", fields)
	}
}
