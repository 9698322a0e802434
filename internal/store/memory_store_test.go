package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_InsertAssignsSequentialIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := Book{Title: "Dune", Author: "Herbert"}
	second := Book{Title: "Doon", Author: "Parody"}
	if err := s.Insert(ctx, &first); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := s.Insert(ctx, &second); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestMemoryStore_FindByID_NotFound(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.FindByID(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_FindAll_OrderedByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.InsertMany(ctx, []Book{
		{Title: "Dune", Author: "Herbert"},
		{Title: "Doon", Author: "Parody"},
		{Title: "Emma", Author: "Austen"},
	})

	books, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}
	for i := 1; i < len(books); i++ {
		if books[i-1].ID >= books[i].ID {
			t.Errorf("books not ordered by id: %+v", books)
		}
	}
}

func TestMemoryStore_Search_Filters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.InsertMany(ctx, []Book{
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Doon", Author: "Ellis Weiner"},
		{Title: "Dune Messiah", Author: "Frank Herbert"},
	})

	tests := []struct {
		name   string
		title  string
		author string
		want   int
	}{
		{"title contains", "Doo", "", 1},
		{"title case-insensitive", "dune", "", 2},
		{"author contains", "", "herbert", 2},
		{"both filters ANDed", "messiah", "frank", 1},
		{"no filters match all", "", "", 3},
		{"no match", "zzz", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := s.Search(ctx, tt.title, tt.author)
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(books) != tt.want {
				t.Errorf("expected %d books, got %d", tt.want, len(books))
			}
		})
	}
}

func TestMemoryStore_FindByIDs_SkipsMissing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	book := Book{Title: "Dune", Author: "Herbert"}
	s.Insert(ctx, &book)

	books, err := s.FindByIDs(ctx, []int64{book.ID, 99})
	if err != nil {
		t.Fatalf("find by ids failed: %v", err)
	}
	if len(books) != 1 || books[0].ID != book.ID {
		t.Errorf("expected only the existing book, got %+v", books)
	}
}

func TestMemoryStore_Update_ConflictWhenMissing(t *testing.T) {
	s := NewMemoryStore()

	err := s.Update(context.Background(), &Book{ID: 42, Title: "Ghost", Author: "Nobody"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestMemoryStore_UpdateAndDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	book := Book{Title: "Dune", Author: "Herbert"}
	s.Insert(ctx, &book)

	book.Title = "Dune Messiah"
	if err := s.Update(ctx, &book); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := s.FindByID(ctx, book.ID)
	if got.Title != "Dune Messiah" {
		t.Errorf("expected updated title, got '%s'", got.Title)
	}

	if err := s.Delete(ctx, &book); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	exists, _ := s.Exists(ctx, book.ID)
	if exists {
		t.Error("expected book to be gone after delete")
	}
}
