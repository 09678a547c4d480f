package bookstore

import (
	"fmt"
	"net/http"

	"github.com/kmarval/bookstore-inventory/core"
)

type AuthorHandler struct {
	store core.AuthorStore
}

func NewAuthorHandler(store core.AuthorStore) *AuthorHandler {
	return &AuthorHandler{store: store}
}

type AuthorPayload struct {
	Name string `json:"name" validate:"required"`
}

func (h *AuthorHandler) CreateAuthorHandler(w http.ResponseWriter, r *http.Request) error {
	var payload AuthorPayload
	if err := decodeJson(r.Body, &payload); err != nil {
		return err
	}
	defer r.Body.Close()

	if err := validateBody(payload); err != nil {
		return err
	}

	author, err := h.store.CreateAuthor(r.Context(), payload.Name)
	if err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Author with id %d created successfully", author.ID)
	return writeJson(w, NewDataMessage(msg, []core.Author{*author}))
}

func (h *AuthorHandler) GetAuthorHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	author, err := h.store.GetAuthorByID(r.Context(), id)
	if err != nil {
		return storeError(err)
	}

	return writeJson(w, NewDataMessage("", []core.Author{*author}))
}

func (h *AuthorHandler) GetAuthorsHandler(w http.ResponseWriter, r *http.Request) error {
	page, size, err := pageParams(r)
	if err != nil {
		return err
	}

	authors, err := h.store.GetAuthors(r.Context(), page, size)
	if err != nil {
		return storeError(err)
	}

	return writeJson(w, NewPagedMessage("", authors))
}

func (h *AuthorHandler) UpdateAuthorHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	var payload AuthorPayload
	if err := decodeJson(r.Body, &payload); err != nil {
		return err
	}
	defer r.Body.Close()

	if err := validateBody(payload); err != nil {
		return err
	}

	author, err := h.store.UpdateAuthor(r.Context(), id, payload.Name)
	if err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Author with id %d updated successfully", author.ID)
	return writeJson(w, NewDataMessage(msg, []core.Author{*author}))
}

func (h *AuthorHandler) DeleteAuthorHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.store.DeleteAuthor(r.Context(), id); err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Author with id %d deleted successfully", id)
	return writeJson(w, NewApiMessage(msg))
}
