package bookstore

import (
	"fmt"
	"net/http"

	"github.com/kmarval/bookstore-inventory/core"
)

type GenreHandler struct {
	store core.GenreStore
}

func NewGenreHandler(store core.GenreStore) *GenreHandler {
	return &GenreHandler{store: store}
}

type GenrePayload struct {
	Name string `json:"name" validate:"required"`
}

func (h *GenreHandler) CreateGenreHandler(w http.ResponseWriter, r *http.Request) error {
	var payload GenrePayload
	if err := decodeJson(r.Body, &payload); err != nil {
		return err
	}
	defer r.Body.Close()

	if err := validateBody(payload); err != nil {
		return err
	}

	genre, err := h.store.CreateGenre(r.Context(), payload.Name)
	if err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Genre with id %d created successfully", genre.ID)
	return writeJson(w, NewDataMessage(msg, []core.Genre{*genre}))
}

func (h *GenreHandler) GetGenreHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	genre, err := h.store.GetGenreByID(r.Context(), id)
	if err != nil {
		return storeError(err)
	}

	return writeJson(w, NewDataMessage("", []core.Genre{*genre}))
}

func (h *GenreHandler) GetGenresHandler(w http.ResponseWriter, r *http.Request) error {
	page, size, err := pageParams(r)
	if err != nil {
		return err
	}

	genres, err := h.store.GetGenres(r.Context(), page, size)
	if err != nil {
		return storeError(err)
	}

	return writeJson(w, NewPagedMessage("", genres))
}

func (h *GenreHandler) UpdateGenreHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	var payload GenrePayload
	if err := decodeJson(r.Body, &payload); err != nil {
		return err
	}
	defer r.Body.Close()

	if err := validateBody(payload); err != nil {
		return err
	}

	genre, err := h.store.UpdateGenre(r.Context(), id, payload.Name)
	if err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Genre with id %d updated successfully", genre.ID)
	return writeJson(w, NewDataMessage(msg, []core.Genre{*genre}))
}

func (h *GenreHandler) DeleteGenreHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.store.DeleteGenre(r.Context(), id); err != nil {
		return storeError(err)
	}

	msg := fmt.Sprintf("Genre with id %d deleted successfully", id)
	return writeJson(w, NewApiMessage(msg))
}
