package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLiteGenreStore struct {
	db *sql.DB
}

func NewSQLiteGenreStore(db *sql.DB) *SQLiteGenreStore {
	return &SQLiteGenreStore{db: db}
}

func (s *SQLiteGenreStore) CreateGenre(ctx context.Context, name string) (*Genre, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("creating genre: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("genre id: %w", err)
	}
	return &Genre{ID: id, Name: name}, nil
}

func (s *SQLiteGenreStore) GetGenreByID(ctx context.Context, id int64) (*Genre, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM genres WHERE id = ? LIMIT 1", id)

	genre := new(Genre)
	if err := row.Scan(&genre.ID, &genre.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "Genre", ID: id}
		}
		return nil, fmt.Errorf("scanning genre: %w", err)
	}
	return genre, nil
}

func (s *SQLiteGenreStore) GetGenres(ctx context.Context, page, size int) (*Page[Genre], error) {
	if size <= 0 {
		size = DefaultPageSize
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM genres").Scan(&total); err != nil {
		return nil, fmt.Errorf("counting genres: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM genres ORDER BY id LIMIT @limit OFFSET @offset",
		sql.Named("limit", size), sql.Named("offset", page*size))
	if err != nil {
		return nil, fmt.Errorf("querying genres: %w", err)
	}
	defer rows.Close()

	genres := []Genre{}
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scanning genre: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating genres: %w", err)
	}

	return NewPage(genres, page, size, total)
}

func (s *SQLiteGenreStore) UpdateGenre(ctx context.Context, id int64, name string) (*Genre, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE genres SET name = @name WHERE id = @id",
		sql.Named("name", name), sql.Named("id", id))
	if err != nil {
		return nil, fmt.Errorf("updating genre: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating genre: %w", err)
	}
	if n == 0 {
		return nil, &NotFoundError{Entity: "Genre", ID: id}
	}
	return &Genre{ID: id, Name: name}, nil
}

func (s *SQLiteGenreStore) DeleteGenre(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM genres WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting genre: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting genre: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Genre", ID: id}
	}
	return nil
}
