// Command populate copies the fallback document into Postgres in a single transaction.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/geocoder89/portfolio/internal/config"
	"github.com/geocoder89/portfolio/internal/content"
	"github.com/geocoder89/portfolio/internal/db"
	"github.com/geocoder89/portfolio/internal/repo/postgres"
)

func main() {
	cfg := config.Load()

	var file string
	var replace, migrate bool

	flag.StringVar(&file, "file", cfg.DataFile, "fallback document to import")
	flag.BoolVar(&replace, "replace", false, "empty the content tables before importing")
	flag.BoolVar(&migrate, "migrate", false, "apply pending migrations first")
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	doc, err := content.NewDocumentSource(file).Load()

	if err != nil {
		log.Fatalf("load %s: %v", file, err)
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Fatalf("db config invalid: %v", err)
	}

	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	if migrate {
		if err := db.Migrate(ctx, pool, nil); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	repo := postgres.NewContentRepo(pool, nil)

	stats, err := repo.Import(ctx, postgres.ImportSetFromDocument(doc), replace)

	if err != nil {
		log.Fatalf("import rolled back: %v", err)
	}

	log.Printf("imported %d rows (education=%d experience=%d certifications=%d projects=%d achievements=%d skills=%d)",
		stats.Total(), stats.Education, stats.Experiences, stats.Certifications, stats.Projects, stats.Achievements, stats.Skills)
}
