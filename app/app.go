package bookstore

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/kmarval/bookstore-inventory/core"
	"github.com/kmarval/bookstore-inventory/pkg/router"
)

type App struct {
	config  *Config
	db      *core.SQLiteDB
	context context.Context
	server  *http.Server
	logger  *slog.Logger
	router  *router.Router

	exit chan struct{}

	userStore   core.UserStore
	authorStore core.AuthorStore
	genreStore  core.GenreStore
	bookStore   core.BookStore

	authenticator *core.Authenticator

	authHandler   *AuthHandler
	bookHandler   *BookHandler
	authorHandler *AuthorHandler
	genreHandler  *GenreHandler

	cleanupFuncs []func(context.Context)
}

func New(ctx context.Context, config *Config) *App {
	var err error
	app := &App{
		exit: make(chan struct{}),
	}
	if ctx == nil {
		ctx, _ = signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	}
	app.context = ctx

	if config == nil {
		config, err = LoadConfig()
		if err != nil {
			failed(1, "failed to load config: %v\n", err)
		}
	}
	if err := config.Validate(); err != nil {
		failed(1, FormatValidationErrors(err))
	}
	app.config = config

	app.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				source, _ := a.Value.Any().(*slog.Source)
				if source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}))

	sqliteOptions := &core.SQLiteDBOption{
		Mode:        "rwc",
		Cache:       "shared",
		JournalMode: "WAL",
		ForeignKeys: true,
	}
	app.db, err = core.NewSQLiteDB(app.config.SQLite.File, app.config.SQLite.Migrations, sqliteOptions)
	if err != nil {
		failed(1, "failed to open database: %v\n", err)
	}
	app.AddCleanupFunc(func(ctx context.Context) {
		app.db.Close()
	})
	if err := app.db.Migrate(); err != nil {
		failed(1, "failed to migrate database: %v\n", err)
	}

	app.userStore = core.NewSQLiteUserStore(app.db.DB)
	app.authorStore = core.NewSQLiteAuthorStore(app.db.DB)
	app.genreStore = core.NewSQLiteGenreStore(app.db.DB)
	app.bookStore = core.NewSQLiteBookStore(app.db.DB, app.authorStore, app.genreStore)

	ttl := app.config.Auth.TokenTTL
	if ttl <= 0 {
		ttl = core.DefaultTokenTTL
	}
	app.authenticator = core.NewAuthenticator(app.userStore, app.config.Auth.Secret, core.WithTokenTTL(ttl))

	if err := BootstrapAdmin(app.context, app.userStore, app.config, app.logger); err != nil {
		failed(1, "failed to bootstrap admin: %v\n", err)
	}

	app.authHandler = NewAuthHandler(app.authenticator)
	app.bookHandler = NewBookHandler(app.bookStore)
	app.authorHandler = NewAuthorHandler(app.authorStore)
	app.genreHandler = NewGenreHandler(app.genreStore)

	app.router = NewRouter(app.logger, app.config, app.userStore, app.authenticator,
		app.authHandler, app.bookHandler, app.authorHandler, app.genreHandler)

	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", app.config.Hostname, app.config.Port),
		Handler: app.router.Router,
		BaseContext: func(listener net.Listener) context.Context {
			return app.context
		},
	}
	if app.config.TLS.Crt != "" && app.config.TLS.Key != "" {
		app.server.TLSConfig = &defaultTLSConfig
	}

	return app
}

// NewRouter assembles the full route table. The bearer gate runs before every
// /api route; unauthenticated requests only terminate at the RequireAuth /
// RequireRole gates, so token failures never reach business logic.
func NewRouter(
	logger *slog.Logger,
	config *Config,
	users core.UserStore,
	auth *core.Authenticator,
	authHandler *AuthHandler,
	bookHandler *BookHandler,
	authorHandler *AuthorHandler,
	genreHandler *GenreHandler,
) *router.Router {
	r := router.New(router.WithLogger(logger))

	r.Router.Use(RequestLogger(logger))
	r.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/auth", func(r *router.Router) {
		r.Post("/login", authHandler.LoginHandler)
	})

	r.Route("/api", func(r *router.Router) {
		r.Use(core.BearerMiddleware(users, config.Auth.Secret))
		r.Use(core.RequireAuth())

		r.Route("/books", func(r *router.Router) {
			r.Get("/", bookHandler.GetBooksHandler)
			r.Get("/search", bookHandler.SearchBooksHandler)
			r.Get("/{id}", bookHandler.GetBookHandler)

			admin := r.With(core.RequireRole(core.RoleAdmin))
			admin.Post("/", bookHandler.CreateBookHandler)
			admin.Put("/{id}", bookHandler.UpdateBookHandler)
			admin.Delete("/{id}", bookHandler.DeleteBookHandler)
		})

		r.Route("/authors", func(r *router.Router) {
			r.Get("/", authorHandler.GetAuthorsHandler)
			r.Get("/{id}", authorHandler.GetAuthorHandler)

			admin := r.With(core.RequireRole(core.RoleAdmin))
			admin.Post("/", authorHandler.CreateAuthorHandler)
			admin.Put("/{id}", authorHandler.UpdateAuthorHandler)
			admin.Delete("/{id}", authorHandler.DeleteAuthorHandler)
		})

		r.Route("/genres", func(r *router.Router) {
			r.Get("/", genreHandler.GetGenresHandler)
			r.Get("/{id}", genreHandler.GetGenreHandler)

			admin := r.With(core.RequireRole(core.RoleAdmin))
			admin.Post("/", genreHandler.CreateGenreHandler)
			admin.Put("/{id}", genreHandler.UpdateGenreHandler)
			admin.Delete("/{id}", genreHandler.DeleteGenreHandler)
		})
	})

	return r
}

func (app *App) Start() {
	// listen for shutdown signal
	go func() {
		<-app.context.Done()
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		var wg sync.WaitGroup

		for _, f := range app.cleanupFuncs {
			wg.Add(1)
			func(wg *sync.WaitGroup) {
				defer wg.Done()
				f(closeCtx)
			}(&wg)
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			app.logger.Info("app shutdown gracefully")
		case <-closeCtx.Done():
			app.logger.Info("app shutdown timed out")
		}
		close(app.exit)
	}()

	app.AddCleanupFunc(func(ctx context.Context) {
		app.server.Shutdown(ctx)
	})
	app.logger.Info(fmt.Sprintf("app running on: %s:%d", app.config.Hostname, app.config.Port))

	var err error
	if app.config.TLS.Crt != "" && app.config.TLS.Key != "" {
		err = app.server.ListenAndServeTLS(app.config.TLS.Crt, app.config.TLS.Key)
	} else {
		err = app.server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		failed(1, "server error: %v\n", err)
	}
	<-app.exit
}

func (app *App) AddCleanupFunc(f func(context.Context)) {
	app.cleanupFuncs = append(app.cleanupFuncs, f)
}

func failed(code int, s string, args ...interface{}) {
	fmt.Printf(s, args...)
	os.Exit(code)
}
