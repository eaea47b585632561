package main

import (
	"context"
	"testing"
)

func TestConnectRedisDisabledWithoutURL(t *testing.T) {
	client, err := connectRedis(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil client when redis is not configured")
	}
}
