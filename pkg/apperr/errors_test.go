package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		// 加入者関連
		{"ErrSubscriberNotFound", ErrSubscriberNotFound, "subscriber not found"},
		{"ErrSubscriberExists", ErrSubscriberExists, "subscriber already exists"},
		{"ErrNetworkNotFound", ErrNetworkNotFound, "network not found"},
		{"ErrNetworkExists", ErrNetworkExists, "network already exists"},
		// テナント関連
		{"ErrOrganizationNotFound", ErrOrganizationNotFound, "organization not found"},
		{"ErrNetworkForbidden", ErrNetworkForbidden, "network not allowed for organization"},
		// インフラ関連
		{"ErrValkeyConnection", ErrValkeyConnection, "valkey connection error"},
		{"ErrValkeyCommand", ErrValkeyCommand, "valkey command error"},
		{"ErrOrchestratorAPI", ErrOrchestratorAPI, "orchestrator API error"},
		// バックエンド関連
		{"ErrBackendCommunication", ErrBackendCommunication, "backend communication error"},
		{"ErrInvalidRequest", ErrInvalidRequest, "invalid request"},
		// バリデーション関連
		{"ErrInvalidIMSI", ErrInvalidIMSI, "invalid IMSI format"},
		{"ErrInvalidHex", ErrInvalidHex, "invalid hex string"},
		{"ErrInvalidState", ErrInvalidState, "invalid subscriber state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	allErrors := []error{
		ErrSubscriberNotFound, ErrSubscriberExists, ErrNetworkNotFound, ErrNetworkExists,
		ErrOrganizationNotFound, ErrNetworkForbidden,
		ErrValkeyConnection, ErrValkeyCommand, ErrOrchestratorAPI,
		ErrBackendCommunication, ErrInvalidRequest,
		ErrInvalidIMSI, ErrInvalidHex, ErrInvalidState,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("errors.Is(%v, %v) = true, want false", err1, err2)
			}
		}
	}
}

func TestSentinelErrorsCanBeWrapped(t *testing.T) {
	wrapped := fmt.Errorf("network lte-1: %w", ErrNetworkNotFound)
	if !errors.Is(wrapped, ErrNetworkNotFound) {
		t.Error("wrapped error should match with errors.Is")
	}
	if errors.Is(wrapped, ErrSubscriberNotFound) {
		t.Error("wrapped error should not match an unrelated sentinel")
	}
}
