package http

import (
	"context"
	"errors"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestComposeHealth(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	boom := pingFunc(func(context.Context) error { return errors.New("store down") })

	if err := ComposeHealth(ok, ok).Ping(context.Background()); err != nil {
		t.Fatalf("all healthy: %v", err)
	}

	err := ComposeHealth(ok, boom).Ping(context.Background())
	if err == nil || err.Error() != "store down" {
		t.Fatalf("first failure must surface, got %v", err)
	}

	if err := ComposeHealth(ok, nil).Ping(context.Background()); err != nil {
		t.Fatalf("nil entries must be ignored: %v", err)
	}

	if err := ComposeHealth().Ping(context.Background()); err != nil {
		t.Fatalf("empty composition: %v", err)
	}
}
