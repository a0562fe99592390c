// Command console is the storefront admin console: it manages the admin
// session against the backend API and drives the catalog, coupon, and
// order screens from the terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-admin/console/internal/api"
	"storefront-admin/console/internal/config"
	"storefront-admin/console/internal/session/service"
	"storefront-admin/console/internal/session/store/memory"
	"storefront-admin/console/internal/session/store/sqlite"
	"storefront-admin/console/internal/telemetry"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: console <command> [flags]

session:
  login       authenticate against the backend
  logout      clear the stored session
  status      show session state
  extend      restart the session window
  watch       keep the session under periodic revalidation
  profile     show|update the admin profile

catalog:
  products    list|add|update|delete
  categories  list|add|delete
  materials   list|add|delete
  grades      list|add|delete
  coupons     list|add|update|delete
  orders      list|status

tools:
  price       derive a consistent price/discount/selling triple
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	providers, err := telemetry.NewProviders(ctx, cfg.OTLPEndpoint, "storefront-admin-console", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	client, err := api.New(cfg.APIBaseURL, cfg.Timeout())
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	durable, err := sqlite.Open(cfg.StateDir)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer durable.Close()

	mgr := service.NewManager(client, durable, memory.New(), service.Options{
		AuthEndpoint:          cfg.AuthEndpoint,
		MaxAge:                cfg.MaxAge(),
		RevalidateEvery:       cfg.RevalidateEvery(),
		RevalidateProbability: cfg.RevalidateProbability,
	})
	mgr.SetOnLogout(func(reason string) {
		fmt.Fprintf(os.Stderr, "%s: run `console login` to sign in again\n", reason)
	})

	app := &app{client: client, mgr: mgr}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "login":
		err = app.cmdLogin(ctx, args)
	case "logout":
		err = app.cmdLogout(ctx)
	case "status":
		err = app.cmdStatus(ctx, args)
	case "extend":
		err = app.cmdExtend(ctx)
	case "watch":
		watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = app.cmdWatch(watchCtx)
	case "profile":
		err = app.cmdProfile(ctx, args)
	case "products":
		err = app.cmdProducts(ctx, args)
	case "categories":
		err = app.cmdCategories(ctx, args)
	case "materials":
		err = app.cmdMaterials(ctx, args)
	case "grades":
		err = app.cmdGrades(ctx, args)
	case "coupons":
		err = app.cmdCoupons(ctx, args)
	case "orders":
		err = app.cmdOrders(ctx, args)
	case "price":
		err = cmdPrice(args)
	default:
		usage()
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}
