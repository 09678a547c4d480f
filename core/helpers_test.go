package core

import (
	"context"
	"testing"
)

type seedUser struct {
	username string
	password string
	roles    []string
}

func seedUsers(ctx context.Context, t *testing.T, userStore UserStore, users ...seedUser) {
	for _, u := range users {
		if err := userStore.CreateUser(ctx, u.username, u.password, u.roles...); err != nil {
			t.Fatal(err)
		}
	}
}

func seedInventory(f *InventoryFixture) (*Author, *Genre) {
	author, err := f.authorStore.CreateAuthor(f.ctx, "Terry Pratchett")
	if err != nil {
		f.t.Fatal(err)
	}
	genre, err := f.genreStore.CreateGenre(f.ctx, "Fantasy")
	if err != nil {
		f.t.Fatal(err)
	}
	return author, genre
}
