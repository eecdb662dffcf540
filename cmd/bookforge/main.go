package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bookforge/internal/apiclient"
	"bookforge/internal/config"
	"bookforge/internal/flow"
	"bookforge/internal/payment"
	"bookforge/internal/prefs"
	"bookforge/internal/session"
	"bookforge/internal/storage"
	"bookforge/internal/util"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// Optional .env for local development; real config comes from YAML + env.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("BOOKFORGE_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	util.InitLogger(cfg.LogLevel)

	pollInterval, err := config.ParsePollInterval(cfg.PollInterval)
	if err != nil {
		log.Fatalf("failed to parse poll interval: %v", err)
	}
	completionGrace, err := config.ParseCompletionGrace(cfg.PollCompletionGrace)
	if err != nil {
		log.Fatalf("failed to parse completion grace: %v", err)
	}

	var store prefs.Store
	if cfg.RedisAddr != "" {
		store = prefs.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		store, err = prefs.NewFileStore(cfg.PrefsPath)
		if err != nil {
			log.Fatalf("failed to init preference store: %v", err)
		}
	}

	files, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to init download store: %v", err)
	}

	confirmer, err := payment.NewStripeConfirmer(cfg.StripePublishableKey, cfg.StripePaymentMethod)
	if err != nil {
		log.Fatalf("failed to init payment: %v", err)
	}

	f := flow.New(flow.Config{
		API:             apiclient.NewClient(cfg.APIBaseURL),
		Session:         session.New(store),
		Confirmer:       confirmer,
		Files:           files,
		PollInterval:    pollInterval,
		CompletionGrace: completionGrace,
		DefaultFormat:   cfg.DefaultDownloadFormat,
		Input:           os.Stdin,
		Output:          os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, f *flow.Flow, command string, args []string) error {
	switch command {
	case "create":
		return f.Landing(ctx)
	case "dashboard":
		return f.Dashboard(ctx)
	case "status":
		if len(args) != 1 {
			return fmt.Errorf("usage: bookforge status <bookId>")
		}
		return f.StatusScreen(ctx, args[0])
	case "download":
		if len(args) != 1 {
			return fmt.Errorf("usage: bookforge download <bookId>")
		}
		return f.Download(ctx, args[0])
	case "health":
		return f.Health(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bookforge <command>

commands:
  create              start the full book creation flow
  dashboard           list your books
  status <bookId>     watch generation progress for a book
  download <bookId>   download a finished book
  health              check backend availability`)
}
