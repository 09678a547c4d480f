package bookstore

import (
	"fmt"
	"net/http"

	"github.com/kmarval/bookstore-inventory/core"
)

type BookHandler struct {
	store core.BookStore
}

func NewBookHandler(store core.BookStore) *BookHandler {
	return &BookHandler{store: store}
}

type BookPayload struct {
	Title    string  `json:"title" validate:"required"`
	AuthorID int64   `json:"author_id"`
	GenreID  int64   `json:"genre_id"`
	Price    float64 `json:"price" validate:"required"`
}

func (p BookPayload) input() core.BookInput {
	return core.BookInput{
		Title:    p.Title,
		AuthorID: p.AuthorID,
		GenreID:  p.GenreID,
		Price:    p.Price,
	}
}

func (h *BookHandler) CreateBookHandler(w http.ResponseWriter, r *http.Request) error {
	var payload BookPayload
	if err := decodeJson(r.Body, &payload); err != nil {
		return err
	}
	defer r.Body.Close()

	if err := validateBody(payload); err != nil {
		return err
	}

	book, err := h.store.CreateBook(r.Context(), payload.input())
	if err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Book with id %d created successfully", book.ID)
	return writeJson(w, NewDataMessage(msg, []core.Book{*book}))
}

func (h *BookHandler) GetBookHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	book, err := h.store.GetBookByID(r.Context(), id)
	if err != nil {
		return storeError(err)
	}

	return writeJson(w, NewDataMessage("", []core.Book{*book}))
}

func (h *BookHandler) GetBooksHandler(w http.ResponseWriter, r *http.Request) error {
	page, size, err := pageParams(r)
	if err != nil {
		return err
	}

	books, err := h.store.GetBooks(r.Context(), page, size)
	if err != nil {
		return storeError(err)
	}

	return writeJson(w, NewPagedMessage("", books))
}

func (h *BookHandler) UpdateBookHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	var payload BookPayload
	if err := decodeJson(r.Body, &payload); err != nil {
		return err
	}
	defer r.Body.Close()

	if err := validateBody(payload); err != nil {
		return err
	}

	book, err := h.store.UpdateBook(r.Context(), id, payload.input())
	if err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Book with id %d updated successfully", book.ID)
	return writeJson(w, NewDataMessage(msg, []core.Book{*book}))
}

func (h *BookHandler) DeleteBookHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.store.DeleteBook(r.Context(), id); err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Book with id %d deleted successfully", id)
	return writeJson(w, NewApiMessage(msg))
}

func (h *BookHandler) SearchBooksHandler(w http.ResponseWriter, r *http.Request) error {
	page, size, err := pageParams(r)
	if err != nil {
		return err
	}

	q := r.URL.Query()
	search := core.BookSearch{
		Title:  q.Get("title"),
		Author: q.Get("author"),
		Genre:  q.Get("genre"),
	}

	books, err := h.store.SearchBooks(r.Context(), search, page, size)
	if err != nil {
		return storeError(err)
	}

	response := NewSearchMessage("Search executed successfully", books, search)
	return writeJson(w, response)
}
