package services_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/directory"
	"github.com/pandeptwidyaop/launchpad/internal/services"
)

func TestAppService_List(t *testing.T) {
	svc := services.NewAppService(staticLister{"Safari", "Mail", "Notes"}, zap.NewNop())

	apps, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"Safari", "Mail", "Notes"}
	if len(apps) != len(want) {
		t.Fatalf("expected %d apps, got %d", len(want), len(apps))
	}
	for i := range want {
		if apps[i] != want[i] {
			t.Errorf("apps[%d] = %q, want %q", i, apps[i], want[i])
		}
	}
}

func TestAppService_ListError(t *testing.T) {
	svc := services.NewAppService(failingLister{err: directory.ErrUnavailable}, zap.NewNop())

	apps, err := svc.List(context.Background())
	if !errors.Is(err, directory.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if apps != nil {
		t.Errorf("expected nil apps, got %v", apps)
	}
}

func TestAppService_Contains(t *testing.T) {
	svc := services.NewAppService(staticLister{"Safari", "Mail"}, zap.NewNop())

	tests := []struct {
		name string
		want bool
	}{
		{"Mail", true},
		{"mail", false},
		{"Mai", false},
		{"Notes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Contains(context.Background(), tt.name)
			if err != nil {
				t.Fatalf("Contains() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
