package tenant

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewStore(client, "superuser")
}

func TestStore_SeedAndGet(t *testing.T) {
	mr, s := newTestStore(t)
	ctx := context.Background()

	err := s.Seed(ctx, map[string]string{
		"acme": "net2; net1",
		"beta": "net3",
	})
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	org, err := s.Get(ctx, "acme")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !slices.Equal(org.Networks, []string{"net1", "net2"}) {
		t.Errorf("Networks = %v, want [net1 net2]", org.Networks)
	}
	if ok, _ := mr.SIsMember("org:beta", "net3"); !ok {
		t.Error("org:beta should contain net3")
	}

	if _, err := s.Get(ctx, "unknown"); !errors.Is(err, apperr.ErrOrganizationNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrOrganizationNotFound", err)
	}
	if _, err := s.Get(ctx, ""); !errors.Is(err, apperr.ErrOrganizationNotFound) {
		t.Errorf("Get(\"\") error = %v, want ErrOrganizationNotFound", err)
	}
}

func TestStore_Authorize(t *testing.T) {
	_, s := newTestStore(t)
	ctx := context.Background()
	if err := s.AddNetworks(ctx, "acme", "net1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		org       string
		network   string
		forbidden bool
	}{
		{"allowed", "acme", "net1", false},
		{"other network", "acme", "net2", true},
		{"unknown organization", "ghost", "net1", true},
		{"superuser", "superuser", "net9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, err := s.Authorize(ctx, tt.org, tt.network)
			if tt.forbidden {
				var fErr *apperr.ForbiddenError
				if !errors.As(err, &fErr) {
					t.Fatalf("Authorize() error = %v, want ForbiddenError", err)
				}
				if !errors.Is(err, apperr.ErrNetworkForbidden) {
					t.Error("error should wrap ErrNetworkForbidden")
				}
				return
			}
			if err != nil {
				t.Fatalf("Authorize() error = %v", err)
			}
			if org.Name != tt.org {
				t.Errorf("org = %q, want %q", org.Name, tt.org)
			}
		})
	}
}

func TestStore_ConnectionError(t *testing.T) {
	mr, s := newTestStore(t)
	mr.Close()

	_, err := s.Authorize(context.Background(), "acme", "net1")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, apperr.ErrNetworkForbidden) {
		t.Error("backend failure must not be reported as forbidden")
	}
}
