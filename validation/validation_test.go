package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/skillsenselab/shellkit/errors"
)

func TestValidatorPassesCleanInput(t *testing.T) {
	v := New().
		Required("provider", "github").
		MinLength("client_id", "shell-web-client", 3).
		OneOf("scope", "read", []string{"read", "write"})

	if v.HasErrors() {
		t.Fatalf("Errors() = %v, want none", v.Errors())
	}
	if got := v.Validate(); got != nil {
		t.Errorf("Validate() = %v, want nil", got)
	}
}

func TestValidatorCollectsEveryFailure(t *testing.T) {
	v := New().
		Required("provider", "  ").
		MaxLength("client_id", strings.Repeat("x", 300), 255).
		Range("timeout_seconds", 0, 1, 120)

	if len(v.Errors()) != 3 {
		t.Fatalf("Errors() = %v, want 3 entries", v.Errors())
	}

	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("Validate() = nil with failures recorded")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("Code = %q, want %q", appErr.Code, errors.ErrCodeInvalidInput)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Errorf("Details[\"fields\"] = %v, want the 3 field errors", appErr.Details["fields"])
	}
	if !strings.Contains(appErr.Message, "provider") {
		t.Errorf("message %q does not name the failing field", appErr.Message)
	}
}

func TestRequiredUUID(t *testing.T) {
	cases := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid", uuid.NewString(), true},
		{"blank", "   ", false},
		{"malformed", "not-a-session-id", false},
		{"nil uuid", uuid.Nil.String(), false},
	}
	for _, tc := range cases {
		v := New().RequiredUUID("session_id", tc.value)
		if got := !v.HasErrors(); got != tc.valid {
			t.Errorf("%s: RequiredUUID(%q) valid = %v, want %v", tc.name, tc.value, got, tc.valid)
		}
	}
}

func TestOptionalUUIDSkipsEmpty(t *testing.T) {
	if v := New().OptionalUUID("parent_id", ""); v.HasErrors() {
		t.Error("empty optional UUID must pass")
	}
	if v := New().OptionalUUID("parent_id", "garbage"); !v.HasErrors() {
		t.Error("malformed optional UUID must fail")
	}
}

func TestPatternAndOneOf(t *testing.T) {
	v := New().Pattern("topic", "presence", `^[a-z.]+$`)
	if v.HasErrors() {
		t.Errorf("Pattern rejected a matching topic: %v", v.Errors())
	}

	v = New().Pattern("topic", "Presence!", `^[a-z.]+$`)
	if !v.HasErrors() {
		t.Error("Pattern accepted a non-matching topic")
	}

	v = New().OneOf("mode", "multicast", []string{"unicast", "broadcast"})
	if !v.HasErrors() {
		t.Error("OneOf accepted a value outside the allowed set")
	}
	if msg := v.Errors()[0].Message; !strings.Contains(msg, "unicast") {
		t.Errorf("message %q does not list the allowed values", msg)
	}
}

func TestNumericBounds(t *testing.T) {
	v := New().
		Min("burst", 0, 1).
		Max("port", 70000, 65535).
		Range("sample_rate", 5, 0, 10)

	if len(v.Errors()) != 2 {
		t.Errorf("Errors() = %v, want failures for burst and port only", v.Errors())
	}
}

func TestCustomCondition(t *testing.T) {
	refresh := false
	v := New().Custom(refresh, "refresh", "must be enabled when a provider is configured")
	if !v.HasErrors() {
		t.Fatal("Custom(false) recorded no error")
	}
	if got := v.Errors()[0].Field; got != "refresh" {
		t.Errorf("Field = %q, want %q", got, "refresh")
	}
}

func TestRequiredHelper(t *testing.T) {
	if err := Required("provider", "github"); err != nil {
		t.Errorf("Required() = %v, want nil", err)
	}
	err := Required("provider", "")
	if err == nil {
		t.Fatal("Required(\"\") = nil")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("Required() error = %v, want a validation AppError", err)
	}
}

func TestValidateUUIDHelper(t *testing.T) {
	want := uuid.New()
	got, err := ValidateUUID("session_id", want.String())
	if err != nil {
		t.Fatalf("ValidateUUID() error = %v", err)
	}
	if got != want {
		t.Errorf("ValidateUUID() = %v, want %v", got, want)
	}

	if _, err := ValidateUUID("session_id", ""); err == nil {
		t.Error("ValidateUUID(\"\") = nil error")
	}
	if _, err := ValidateUUID("session_id", "nope"); err == nil {
		t.Error("ValidateUUID(malformed) = nil error")
	}
}

type registerServiceRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Endpoint string `json:"endpoint" validate:"required,url"`
	OwnerID  string `json:"owner_id" validate:"omitempty,uuid"`
	Mode     string `json:"mode" validate:"oneof=eager lazy singleton"`
}

func TestStructValidatePasses(t *testing.T) {
	req := registerServiceRequest{
		Name:     "session",
		Endpoint: "https://identity.internal/token",
		OwnerID:  uuid.NewString(),
		Mode:     "lazy",
	}
	if err := Validate(req); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestStructValidateReportsJSONFieldNames(t *testing.T) {
	req := registerServiceRequest{
		Name:     "",
		Endpoint: "not a url",
		OwnerID:  "nope",
		Mode:     "eventual",
	}
	err := Validate(req)
	if err == nil {
		t.Fatal("Validate() = nil for an invalid request")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("Validate() error type = %T, want *errors.AppError", err)
	}
	for _, field := range []string{"name", "endpoint", "owner_id", "mode"} {
		if !strings.Contains(appErr.Message, field) {
			t.Errorf("message %q missing field %q", appErr.Message, field)
		}
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Errorf("Details[\"fields\"] = %v, want 4 entries", appErr.Details["fields"])
	}
}

func TestStructValidateMessages(t *testing.T) {
	type req struct {
		Email string `json:"email" validate:"required,email"`
	}
	err := Validate(req{Email: "not-an-email"})
	if err == nil {
		t.Fatal("Validate() = nil for a bad email")
	}
	if !strings.Contains(err.Error(), "valid email") {
		t.Errorf("error %q does not explain the email failure", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"ClientID":  "client_i_d",
		"OwnerName": "owner_name",
		"name":      "name",
	}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
