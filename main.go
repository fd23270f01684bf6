package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gsk-limited/storefront/app/cmd"
	"github.com/gsk-limited/storefront/app/configs"
)

func main() {
	env := configs.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewCommand(env).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
