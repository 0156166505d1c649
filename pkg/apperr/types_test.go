package apperr

import (
	"errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", NewValidationError("IMSI", "required"), "IMSI: required"},
		{"backend", NewBackendError("orc8r", 502, nil), "orc8r responded 502"},
		{"backend with cause", NewBackendError("orc8r", 0, cause), "orc8r responded 0: connection refused"},
		{"valkey without key", NewValkeyError("PING", "", cause), "valkey PING failed: connection refused"},
		{"valkey with key", NewValkeyError("HGET", "tenant:orgs", nil), "valkey HGET tenant:orgs failed"},
		{"forbidden", NewForbiddenError("acme", "net2"), `organization "acme" may not access network "net2"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorChains(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"validation is invalid request", NewValidationError("APNs", "too many"), ErrInvalidRequest},
		{"forbidden is network forbidden", NewForbiddenError("acme", "net2"), ErrNetworkForbidden},
		{"backend unwraps cause", NewBackendError("orc8r", 500, ErrOrchestratorAPI), ErrOrchestratorAPI},
		{"valkey unwraps joined cause", NewValkeyError("PING", "", errors.Join(ErrValkeyConnection, errors.New("dial"))), ErrValkeyConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
		})
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := errors.Join(errors.New("row 3"), NewValidationError("AuthKey", "must be 32 hex characters"))

	var vErr *ValidationError
	if !errors.As(wrapped, &vErr) {
		t.Fatalf("errors.As() failed for %v", wrapped)
	}
	if vErr.Field != "AuthKey" {
		t.Errorf("Field = %q, want AuthKey", vErr.Field)
	}

	var bErr *BackendError
	if errors.As(wrapped, &bErr) {
		t.Error("errors.As() should not match BackendError")
	}
}
