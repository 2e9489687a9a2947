package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/account-hub/internal/common/bootstrap"
	"github.com/AlibekovAA/account-hub/internal/common/config"
	srv "github.com/AlibekovAA/account-hub/internal/common/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start %s: %v\n", bootstrap.ServiceName, err)
		os.Exit(1)
	}

	server := srv.New(srv.DefaultConfig(app.Config.HTTPPort), app.Routes())

	if err := srv.ListenAndRun(ctx, server, app.Log, bootstrap.ServiceName, app.ShutdownHooks()); err != nil {
		app.Log.Errorf("%s stopped with error: %v", bootstrap.ServiceName, err)
		os.Exit(1)
	}
}
