package bookstore

import (
	"net/http"

	"github.com/kmarval/bookstore-inventory/core"
)

// ApiMessage is the envelope of every successful response.
type ApiMessage struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

func NewApiMessage(message string) ApiMessage {
	return ApiMessage{
		Status:  http.StatusOK,
		Message: message,
	}
}

// DataMessage carries entities. Single entities are wrapped in a
// one-element list so the data field always has the same shape.
type DataMessage struct {
	ApiMessage
	Data any `json:"data"`
}

func NewDataMessage(message string, data any) DataMessage {
	return DataMessage{
		ApiMessage: NewApiMessage(message),
		Data:       data,
	}
}

// PagedMessage carries one page of entities plus pagination metadata.
type PagedMessage struct {
	DataMessage
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

func NewPagedMessage[T any](message string, page *core.Page[T]) PagedMessage {
	return PagedMessage{
		DataMessage:   NewDataMessage(message, page.Items),
		Page:          page.Number,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}

// SearchMessage echoes the search predicates next to the page.
type SearchMessage struct {
	PagedMessage
	SearchTitle  string `json:"search_title"`
	SearchAuthor string `json:"search_author"`
	SearchGenre  string `json:"search_genre"`
}

func NewSearchMessage[T any](message string, page *core.Page[T], search core.BookSearch) SearchMessage {
	return SearchMessage{
		PagedMessage: NewPagedMessage(message, page),
		SearchTitle:  search.Title,
		SearchAuthor: search.Author,
		SearchGenre:  search.Genre,
	}
}
