package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/term"

	"user-manager-form/internal"
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("usermanagerform needs an interactive terminal")
	}

	ctx := context.Background()

	app, err := internal.NewApp(ctx)
	if err != nil {
		log.Fatalf("init app failed: %v", err)
	}
	defer app.Close()

	if err = app.Run(ctx); err != nil {
		app.Logger().Sugar().Errorf("usermanagerform stopped with error: %v", err)
		app.Close()
		os.Exit(1)
	}
}
