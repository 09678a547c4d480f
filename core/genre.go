package core

import "context"

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GenreStore interface {
	CreateGenre(ctx context.Context, name string) (*Genre, error)

	GetGenreByID(ctx context.Context, id int64) (*Genre, error)

	GetGenres(ctx context.Context, page, size int) (*Page[Genre], error)

	UpdateGenre(ctx context.Context, id int64, name string) (*Genre, error)

	DeleteGenre(ctx context.Context, id int64) error
}
