package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type InventoryFixture struct {
	*BaseFixture
	authorStore AuthorStore
	genreStore  GenreStore
	bookStore   BookStore
}

func NewInventoryFixture(t *testing.T) *InventoryFixture {
	base := NewBaseFixture(t)

	authorStore := NewSQLiteAuthorStore(base.db)
	genreStore := NewSQLiteGenreStore(base.db)
	bookStore := NewSQLiteBookStore(base.db, authorStore, genreStore)

	return &InventoryFixture{
		BaseFixture: base,
		authorStore: authorStore,
		genreStore:  genreStore,
		bookStore:   bookStore,
	}
}

func TestBookCreate(t *testing.T) {
	t.Run("create with joined author and genre", func(t *testing.T) {
		f := NewInventoryFixture(t)
		defer f.tearDown()
		author, genre := seedInventory(f)

		book, err := f.bookStore.CreateBook(f.ctx, BookInput{
			Title:    "Guards! Guards!",
			AuthorID: author.ID,
			GenreID:  genre.ID,
			Price:    9.99,
		})
		require.Nil(t, err)
		require.NotNil(t, book)
		assert.Equal(t, "Guards! Guards!", book.Title)
		require.NotNil(t, book.Author)
		assert.Equal(t, author.Name, book.Author.Name)
		require.NotNil(t, book.Genre)
		assert.Equal(t, genre.Name, book.Genre.Name)
	})

	t.Run("missing author identifier", func(t *testing.T) {
		f := NewInventoryFixture(t)
		defer f.tearDown()
		_, genre := seedInventory(f)

		_, err := f.bookStore.CreateBook(f.ctx, BookInput{
			Title:   "Orphan",
			GenreID: genre.ID,
			Price:   1,
		})
		var missingID *MissingIdentifierError
		require.ErrorAs(t, err, &missingID)
		assert.Equal(t, "Author", missingID.Entity)
	})

	t.Run("dangling genre reference", func(t *testing.T) {
		f := NewInventoryFixture(t)
		defer f.tearDown()
		author, _ := seedInventory(f)

		_, err := f.bookStore.CreateBook(f.ctx, BookInput{
			Title:    "Dangling",
			AuthorID: author.ID,
			GenreID:  999,
			Price:    1,
		})
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Genre", notFound.Entity)
		assert.Equal(t, int64(999), notFound.ID)
	})
}

func TestBookGetUpdateDelete(t *testing.T) {
	f := NewInventoryFixture(t)
	defer f.tearDown()
	author, genre := seedInventory(f)

	book, err := f.bookStore.CreateBook(f.ctx, BookInput{
		Title: "Mort", AuthorID: author.ID, GenreID: genre.ID, Price: 7.5,
	})
	require.Nil(t, err)

	got, err := f.bookStore.GetBookByID(f.ctx, book.ID)
	require.Nil(t, err)
	assert.Equal(t, book.Title, got.Title)

	updated, err := f.bookStore.UpdateBook(f.ctx, book.ID, BookInput{
		Title: "Mort (revised)", AuthorID: author.ID, GenreID: genre.ID, Price: 8,
	})
	require.Nil(t, err)
	assert.Equal(t, "Mort (revised)", updated.Title)
	assert.Equal(t, 8.0, updated.Price)

	var notFound *NotFoundError
	_, err = f.bookStore.UpdateBook(f.ctx, 999, BookInput{
		Title: "Nope", AuthorID: author.ID, GenreID: genre.ID, Price: 1,
	})
	require.ErrorAs(t, err, &notFound)

	err = f.bookStore.DeleteBook(f.ctx, book.ID)
	require.Nil(t, err)

	_, err = f.bookStore.GetBookByID(f.ctx, book.ID)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Book", notFound.Entity)

	err = f.bookStore.DeleteBook(f.ctx, book.ID)
	require.ErrorAs(t, err, &notFound)
}

func TestBookPagination(t *testing.T) {
	f := NewInventoryFixture(t)
	defer f.tearDown()
	author, genre := seedInventory(f)

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		_, err := f.bookStore.CreateBook(f.ctx, BookInput{
			Title: title, AuthorID: author.ID, GenreID: genre.ID, Price: 1,
		})
		require.Nil(t, err)
	}

	page, err := f.bookStore.GetBooks(f.ctx, 0, 2)
	require.Nil(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	last, err := f.bookStore.GetBooks(f.ctx, 2, 2)
	require.Nil(t, err)
	assert.Len(t, last.Items, 1)

	_, err = f.bookStore.GetBooks(f.ctx, 3, 2)
	var outOfBounds *PageOutOfBoundsError
	require.ErrorAs(t, err, &outOfBounds)
	assert.Equal(t, 3, outOfBounds.Requested)
	assert.Equal(t, 3, outOfBounds.TotalPages)
	assert.Equal(t, "Requested page 3 exceeds total pages (3). Indexing is 0-based.", outOfBounds.Error())
}

func TestBookSearch(t *testing.T) {
	f := NewInventoryFixture(t)
	defer f.tearDown()

	pratchett, err := f.authorStore.CreateAuthor(f.ctx, "Terry Pratchett")
	require.Nil(t, err)
	gaiman, err := f.authorStore.CreateAuthor(f.ctx, "Neil Gaiman")
	require.Nil(t, err)
	fantasy, err := f.genreStore.CreateGenre(f.ctx, "Fantasy")
	require.Nil(t, err)
	horror, err := f.genreStore.CreateGenre(f.ctx, "Horror")
	require.Nil(t, err)

	seed := []BookInput{
		{Title: "Good Omens", AuthorID: pratchett.ID, GenreID: fantasy.ID, Price: 10},
		{Title: "Small Gods", AuthorID: pratchett.ID, GenreID: fantasy.ID, Price: 8},
		{Title: "Coraline", AuthorID: gaiman.ID, GenreID: horror.ID, Price: 6},
	}
	for _, input := range seed {
		_, err := f.bookStore.CreateBook(f.ctx, input)
		require.Nil(t, err)
	}

	t.Run("no predicates returns everything", func(t *testing.T) {
		page, err := f.bookStore.SearchBooks(f.ctx, BookSearch{}, 0, 10)
		require.Nil(t, err)
		assert.Equal(t, int64(3), page.TotalElements)
	})

	t.Run("title match is case-insensitive substring", func(t *testing.T) {
		page, err := f.bookStore.SearchBooks(f.ctx, BookSearch{Title: "gods"}, 0, 10)
		require.Nil(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Small Gods", page.Items[0].Title)
	})

	t.Run("author name match", func(t *testing.T) {
		page, err := f.bookStore.SearchBooks(f.ctx, BookSearch{Author: "pratchett"}, 0, 10)
		require.Nil(t, err)
		assert.Equal(t, int64(2), page.TotalElements)
	})

	t.Run("predicates are conjunctive", func(t *testing.T) {
		page, err := f.bookStore.SearchBooks(f.ctx, BookSearch{Author: "gaiman", Genre: "fantasy"}, 0, 10)
		require.Nil(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(0), page.TotalElements)
	})

	t.Run("all three predicates", func(t *testing.T) {
		page, err := f.bookStore.SearchBooks(f.ctx,
			BookSearch{Title: "omens", Author: "pratchett", Genre: "fantasy"}, 0, 10)
		require.Nil(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Good Omens", page.Items[0].Title)
	})
}
