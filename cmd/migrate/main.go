// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate up | down | status
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/geocoder89/portfolio/internal/config"
	"github.com/geocoder89/portfolio/internal/db"
	"github.com/geocoder89/portfolio/internal/observability"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [up|down|status]")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(cfg.DBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error: database unreachable: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "up":
		err = db.Migrate(ctx, pool, log)
	case "down":
		err = db.MigrateDown(ctx, pool, log)
	case "status":
		err = printStatus(ctx, pool)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printStatus(ctx context.Context, pool *pgxpool.Pool) error {
	statuses, err := db.MigrationsStatus(ctx, pool)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tFILE\tAPPLIED")

	for _, s := range statuses {
		fmt.Fprintf(w, "%d\t%s\t%v\n", s.Version, s.File, s.Applied)
	}

	return w.Flush()
}
