package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestFieldRequestString(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"value":"Acme"}`, "Acme"},
		{`{"value":280}`, "280"},
		{`{"value":12.5}`, "12.5"},
		{`{"value":null}`, ""},
		{`{}`, ""},
		{`{"value":[1]}`, ""},
	}
	for _, tt := range tests {
		var r FieldRequest
		if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
			t.Fatalf("%s: %v", tt.body, err)
		}
		if got := r.String(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		req       any
		wantField string
	}{
		{"empty credentials pass", &CredentialsRequest{}, ""},
		{"long password", &CredentialsRequest{Email: "a@b.c", Password: strings.Repeat("x", 73)}, "password"},
		{"long email", &CredentialsRequest{Email: strings.Repeat("a", 255)}, "email"},
		{"no mode", &AuthPromptRequest{}, ""},
		{"register mode", &AuthPromptRequest{Mode: "register"}, ""},
		{"unknown mode", &AuthPromptRequest{Mode: "signup"}, "mode"},
		{"long feature", &FeatureRequest{Value: strings.Repeat("f", 501)}, "value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.wantField {
				t.Fatalf("err = %v, want field %q", err, tt.wantField)
			}
		})
	}
}
