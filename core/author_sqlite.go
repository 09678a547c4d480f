package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLiteAuthorStore struct {
	db *sql.DB
}

func NewSQLiteAuthorStore(db *sql.DB) *SQLiteAuthorStore {
	return &SQLiteAuthorStore{db: db}
}

func (s *SQLiteAuthorStore) CreateAuthor(ctx context.Context, name string) (*Author, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO authors (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("creating author: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("author id: %w", err)
	}
	return &Author{ID: id, Name: name}, nil
}

func (s *SQLiteAuthorStore) GetAuthorByID(ctx context.Context, id int64) (*Author, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM authors WHERE id = ? LIMIT 1", id)

	author := new(Author)
	if err := row.Scan(&author.ID, &author.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "Author", ID: id}
		}
		return nil, fmt.Errorf("scanning author: %w", err)
	}
	return author, nil
}

func (s *SQLiteAuthorStore) GetAuthors(ctx context.Context, page, size int) (*Page[Author], error) {
	if size <= 0 {
		size = DefaultPageSize
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&total); err != nil {
		return nil, fmt.Errorf("counting authors: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM authors ORDER BY id LIMIT @limit OFFSET @offset",
		sql.Named("limit", size), sql.Named("offset", page*size))
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	authors := []Author{}
	for rows.Next() {
		var author Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating authors: %w", err)
	}

	return NewPage(authors, page, size, total)
}

func (s *SQLiteAuthorStore) UpdateAuthor(ctx context.Context, id int64, name string) (*Author, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE authors SET name = @name WHERE id = @id",
		sql.Named("name", name), sql.Named("id", id))
	if err != nil {
		return nil, fmt.Errorf("updating author: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("updating author: %w", err)
	}
	if n == 0 {
		return nil, &NotFoundError{Entity: "Author", ID: id}
	}
	return &Author{ID: id, Name: name}, nil
}

func (s *SQLiteAuthorStore) DeleteAuthor(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM authors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Author", ID: id}
	}
	return nil
}
