package core

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
)

// BaseFixture opens a private in-memory database, named after the test so
// parallel fixtures never share state, and migrates it to the latest schema.
type BaseFixture struct {
	ctx      context.Context
	db       *sql.DB
	t        *testing.T
	tearDown func()
}

func NewBaseFixture(t *testing.T) *BaseFixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatal(err)
	}

	goose.SetBaseFS(os.DirFS("../migrations"))
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatal(err)
	}
	if err := goose.Up(db, "."); err != nil {
		t.Fatal(err)
	}

	return &BaseFixture{
		ctx: ctx,
		db:  db,
		t:   t,
		tearDown: func() {
			cancel()
			db.Close()
		},
	}
}
