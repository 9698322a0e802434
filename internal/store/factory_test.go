package store

import (
	"context"
	"testing"
)

func TestNewStoreFromConfig_Memory(t *testing.T) {
	s, err := NewStoreFromConfig(context.Background(), DriverMemory, "")
	if err != nil {
		t.Fatalf("expected memory driver to initialize, got %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("expected *MemoryStore, got %T", s)
	}
}

func TestNewStoreFromConfig_UnknownDriver(t *testing.T) {
	if _, err := NewStoreFromConfig(context.Background(), "mongodb", ""); err == nil {
		t.Error("expected error for unknown driver")
	}
}
