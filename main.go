package main

import (
	"context"
	"os/signal"
	"syscall"

	bookstore "github.com/kmarval/bookstore-inventory/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer cancel()

	app := bookstore.New(ctx, nil)
	app.Start()
}
