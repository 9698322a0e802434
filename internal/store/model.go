package store

import "github.com/uptrace/bun"

// Book is a single catalog entry. The ID is assigned by the store on insert
// and never changes afterwards.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b" json:"-"`

	ID     int64  `json:"id" bun:"id,pk,autoincrement"`
	Title  string `json:"title" bun:"title,notnull" validate:"required"`
	Author string `json:"author" bun:"author,notnull" validate:"required"`
	Genre  string `json:"genre,omitempty" bun:"genre"`
	Year   int    `json:"year,omitempty" bun:"year" validate:"omitempty,gte=0"`
}
