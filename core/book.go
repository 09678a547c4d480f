package core

import "context"

type Book struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author *Author `json:"author"`
	Genre  *Genre  `json:"genre"`
	Price  float64 `json:"price"`
}

// BookInput references the author and genre by id. Both are required.
type BookInput struct {
	Title    string
	AuthorID int64
	GenreID  int64
	Price    float64
}

// BookSearch is a conjunction of optional predicates; empty fields do not
// constrain the result. Title matches the book title, Author and Genre match
// the related entity's name, all case-insensitive substring matches.
type BookSearch struct {
	Title  string
	Author string
	Genre  string
}

type BookStore interface {
	CreateBook(ctx context.Context, input BookInput) (*Book, error)

	GetBookByID(ctx context.Context, id int64) (*Book, error)

	GetBooks(ctx context.Context, page, size int) (*Page[Book], error)

	UpdateBook(ctx context.Context, id int64, input BookInput) (*Book, error)

	DeleteBook(ctx context.Context, id int64) error

	SearchBooks(ctx context.Context, search BookSearch, page, size int) (*Page[Book], error)
}
