// Command keystore-init prepares the encrypted_keys table, either through
// the KeyStore bootstrap (-m bootstrap) or goose migrations (-m migrate).
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pgkeystore/internal/app"
	"github.com/dmitrijs2005/pgkeystore/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
