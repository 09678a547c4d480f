package core

import "context"

type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AuthorStore interface {
	CreateAuthor(ctx context.Context, name string) (*Author, error)

	GetAuthorByID(ctx context.Context, id int64) (*Author, error)

	GetAuthors(ctx context.Context, page, size int) (*Page[Author], error)

	UpdateAuthor(ctx context.Context, id int64, name string) (*Author, error)

	DeleteAuthor(ctx context.Context, id int64) error
}
