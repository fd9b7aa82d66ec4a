package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/eaugusto/vendas/dao"
	"github.com/eaugusto/vendas/internal/api"
	"github.com/eaugusto/vendas/internal/config"
	"github.com/eaugusto/vendas/internal/database"
	"github.com/eaugusto/vendas/internal/logger"
	"github.com/eaugusto/vendas/sqlp"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vendas [flags] <serve|clients|products|inventory|sales>")
	config.Usage(os.Stderr)
}

func main() {
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(2)
	}
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}

	log := logger.Must(cfg.Debug)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, args[0], log); err != nil {
		log.Fatal("vendas failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(cfg config.Config, command string, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Migrate {
		stmts, err := dao.Schema(db.Dialect())
		if err != nil {
			return err
		}
		if err := database.Apply(ctx, db.DB, stmts, log); err != nil {
			return err
		}
	}

	opts := []sqlp.Option{sqlp.WithLogger(log)}
	clients := dao.NewClientDAO(db, opts...)
	products := dao.NewProductDAO(db, opts...)
	inventory := dao.NewInventoryDAO(db, opts...)

	switch command {
	case "serve":
		return api.RunServer(cfg.Addr, api.NewRouter(clients, products, inventory, log), log)
	case "clients":
		return printJSON(clients.FetchAll(ctx))
	case "products":
		return printJSON(products.FetchAll(ctx))
	case "inventory":
		return printJSON(inventory.FetchAll(ctx))
	case "sales":
		return printJSON(inventory.SalesByClient(ctx))
	}
	return fmt.Errorf("unknown command %q", command)
}

func printJSON[T any](v T, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
