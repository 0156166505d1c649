package model

import (
	"encoding/json"
	"testing"
)

func TestNewSubscriber(t *testing.T) {
	key := []byte{0x46, 0x5b, 0x5c, 0xe8, 0xb1, 0x99, 0xb4, 0x9f, 0xaa, 0x5f, 0x0a, 0x2e, 0xe2, 0x38, 0xa6, 0xbc}
	sub := NewSubscriber("001010000000001", StateActive, key, nil, "", nil)

	if sub.ID != "IMSI001010000000001" {
		t.Errorf("ID = %q, want %q", sub.ID, "IMSI001010000000001")
	}
	if sub.LTE.State != StateActive {
		t.Errorf("State = %q, want %q", sub.LTE.State, StateActive)
	}
	if sub.LTE.SubProfile != DefaultSubProfile {
		t.Errorf("SubProfile = %q, want %q", sub.LTE.SubProfile, DefaultSubProfile)
	}
	if sub.ActiveAPNs == nil {
		t.Error("ActiveAPNs should be an empty slice, not nil")
	}
	if sub.IMSI() != "001010000000001" {
		t.Errorf("IMSI() = %q, want %q", sub.IMSI(), "001010000000001")
	}
}

func TestSubscriberID(t *testing.T) {
	tests := []struct {
		name string
		imsi string
		want string
	}{
		{"digits only", "001010000000001", "IMSI001010000000001"},
		{"already prefixed", "IMSI001010000000001", "IMSI001010000000001"},
		{"surrounding spaces", " 001010000000001 ", "IMSI001010000000001"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubscriberID(tt.imsi); got != tt.want {
				t.Errorf("SubscriberID(%q) = %q, want %q", tt.imsi, got, tt.want)
			}
		})
	}
}

func TestValidSubscriberID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"IMSI001010000000001", true},
		{"IMSI0010100000", true},
		{"IMSI001010000", false},
		{"IMSI0010100000000012", false},
		{"001010000000001", false},
		{"IMSI00101000000000a", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := ValidSubscriberID(tt.id); got != tt.want {
				t.Errorf("ValidSubscriberID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestSubscriberState_Valid(t *testing.T) {
	if !StateActive.Valid() || !StateInactive.Valid() {
		t.Error("ACTIVE and INACTIVE should be valid")
	}
	if SubscriberState("active").Valid() {
		t.Error("lower-case state should be invalid")
	}
	if SubscriberState("").Valid() {
		t.Error("empty state should be invalid")
	}
}

func TestSubscriberJSON(t *testing.T) {
	sub := NewSubscriber("001010000000001", StateInactive, []byte{0x00, 0x11, 0x22}, nil, "gold", []string{"internet", "ims"})

	data, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	lte, ok := raw["lte"].(map[string]any)
	if !ok {
		t.Fatalf("lte field missing: %s", data)
	}
	// []byteはbase64で表現される
	if lte["auth_key"] != "ABEi" {
		t.Errorf("auth_key = %v, want %q", lte["auth_key"], "ABEi")
	}
	if _, exists := lte["auth_opc"]; exists {
		t.Error("auth_opc should be omitted when empty")
	}
	if lte["state"] != "INACTIVE" {
		t.Errorf("state = %v, want INACTIVE", lte["state"])
	}
}

func TestSubscriber_StateWithoutLTE(t *testing.T) {
	sub := &Subscriber{ID: "IMSI001010000000001"}
	if sub.State() != "" {
		t.Errorf("State() = %q, want empty", sub.State())
	}
}
