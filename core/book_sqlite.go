package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type SQLiteBookStore struct {
	db      *sql.DB
	authors AuthorStore
	genres  GenreStore
}

func NewSQLiteBookStore(db *sql.DB, authors AuthorStore, genres GenreStore) *SQLiteBookStore {
	return &SQLiteBookStore{
		db:      db,
		authors: authors,
		genres:  genres,
	}
}

const selectBook = `
SELECT b.id, b.title, b.price, a.id, a.name, g.id, g.name
FROM books b
LEFT JOIN authors a ON a.id = b.author_id
LEFT JOIN genres g ON g.id = b.genre_id`

func scanBook(row interface{ Scan(...any) error }) (*Book, error) {
	book := new(Book)
	var (
		authorID   sql.NullInt64
		authorName sql.NullString
		genreID    sql.NullInt64
		genreName  sql.NullString
	)
	if err := row.Scan(&book.ID, &book.Title, &book.Price, &authorID, &authorName, &genreID, &genreName); err != nil {
		return nil, err
	}
	if authorID.Valid {
		book.Author = &Author{ID: authorID.Int64, Name: authorName.String}
	}
	if genreID.Valid {
		book.Genre = &Genre{ID: genreID.Int64, Name: genreName.String}
	}
	return book, nil
}

// checkReferences validates the author and genre referenced by input. Missing
// ids and dangling references fail before any write happens.
func (s *SQLiteBookStore) checkReferences(ctx context.Context, input BookInput) error {
	if input.AuthorID == 0 {
		return &MissingIdentifierError{Entity: "Author"}
	}
	if input.GenreID == 0 {
		return &MissingIdentifierError{Entity: "Genre"}
	}
	if _, err := s.authors.GetAuthorByID(ctx, input.AuthorID); err != nil {
		return err
	}
	if _, err := s.genres.GetGenreByID(ctx, input.GenreID); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteBookStore) CreateBook(ctx context.Context, input BookInput) (*Book, error) {
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO books (title, author_id, genre_id, price) VALUES (@title, @author_id, @genre_id, @price)",
		sql.Named("title", input.Title), sql.Named("author_id", input.AuthorID),
		sql.Named("genre_id", input.GenreID), sql.Named("price", input.Price))
	if err != nil {
		return nil, fmt.Errorf("creating book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("book id: %w", err)
	}

	return s.GetBookByID(ctx, id)
}

func (s *SQLiteBookStore) GetBookByID(ctx context.Context, id int64) (*Book, error) {
	row := s.db.QueryRowContext(ctx, selectBook+" WHERE b.id = ? LIMIT 1", id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "Book", ID: id}
		}
		return nil, fmt.Errorf("scanning book: %w", err)
	}
	return book, nil
}

func (s *SQLiteBookStore) GetBooks(ctx context.Context, page, size int) (*Page[Book], error) {
	return s.SearchBooks(ctx, BookSearch{}, page, size)
}

func (s *SQLiteBookStore) UpdateBook(ctx context.Context, id int64, input BookInput) (*Book, error) {
	if _, err := s.GetBookByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE books SET title = @title, author_id = @author_id, genre_id = @genre_id, price = @price WHERE id = @id",
		sql.Named("title", input.Title), sql.Named("author_id", input.AuthorID),
		sql.Named("genre_id", input.GenreID), sql.Named("price", input.Price), sql.Named("id", id))
	if err != nil {
		return nil, fmt.Errorf("updating book: %w", err)
	}

	return s.GetBookByID(ctx, id)
}

func (s *SQLiteBookStore) DeleteBook(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM books WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Entity: "Book", ID: id}
	}
	return nil
}

func (s *SQLiteBookStore) SearchBooks(ctx context.Context, search BookSearch, page, size int) (*Page[Book], error) {
	if size <= 0 {
		size = DefaultPageSize
	}

	predicates := make([]string, 0, 3)
	values := make([]interface{}, 0, 3)

	if search.Title != "" {
		predicates = append(predicates, "lower(b.title) LIKE @title")
		values = append(values, sql.Named("title", "%"+strings.ToLower(search.Title)+"%"))
	}
	if search.Author != "" {
		predicates = append(predicates, "lower(a.name) LIKE @author")
		values = append(values, sql.Named("author", "%"+strings.ToLower(search.Author)+"%"))
	}
	if search.Genre != "" {
		predicates = append(predicates, "lower(g.name) LIKE @genre")
		values = append(values, sql.Named("genre", "%"+strings.ToLower(search.Genre)+"%"))
	}

	where := ""
	if len(predicates) > 0 {
		where = " WHERE " + strings.Join(predicates, " AND ")
	}

	countQuery := `
SELECT COUNT(*)
FROM books b
LEFT JOIN authors a ON a.id = b.author_id
LEFT JOIN genres g ON g.id = b.genre_id` + where

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, values...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting books: %w", err)
	}

	query := selectBook + where + " ORDER BY b.id LIMIT @limit OFFSET @offset"
	values = append(values, sql.Named("limit", size), sql.Named("offset", page*size))

	rows, err := s.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return NewPage(books, page, size, total)
}
