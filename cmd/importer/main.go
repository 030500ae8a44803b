package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_reservation/internal/adapters/catalog"
	"hotel_reservation/internal/adapters/observability"
	"hotel_reservation/internal/app"
	"hotel_reservation/internal/shared"
	mysqlrepo "hotel_reservation/internal/storage/mysql"
)

const catalogRPS = 5

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if len(cfg.ImportIDs) == 0 {
		log.Fatal().Msg("no property ids to import; set IMPORT_IDS or import_ids")
	}

	client, err := catalog.New(cfg.CatalogBase, cfg.CatalogKey, catalogRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog client init failed")
	}
	store, db, err := mysqlrepo.Connect(ctx, cfg.MySQLDSN, cfg.AutoMigrate)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	// imports only insert, so there is no cache entry to invalidate
	imp := app.NewImportService(client, app.NewHotelService(store, nil, 0))

	workers := max(cfg.Workers, 1)
	log.Info().
		Str("base", cfg.CatalogBase).
		Int("workers", workers).
		Int("ids", len(cfg.ImportIDs)).
		Msg("import starting")

	sem := semaphore.NewWeighted(int64(workers))
	tally := map[app.ImportResult]int{}
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failed  atomic.Int32
		skipped int
	)
	for i, id := range cfg.ImportIDs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// interrupted; let in-flight imports finish
			skipped = len(cfg.ImportIDs) - i
			break
		}
		wg.Add(1)
		go func(propertyID int64) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := imp.ImportHotel(ctx, propertyID)
			if err != nil {
				failed.Add(1)
				log.Warn().Int64("id", propertyID).Err(err).Msg("import failed")
				return
			}
			mu.Lock()
			tally[res]++
			mu.Unlock()
			log.Debug().Int64("id", propertyID).Str("result", string(res)).Msg("import done")
		}(id)
	}
	wg.Wait()

	log.Info().
		Int("imported", tally[app.Imported]).
		Int("duplicate", tally[app.Duplicate]).
		Int("missing", tally[app.Missing]).
		Int("invalid", tally[app.Invalid]).
		Int32("failed", failed.Load()).
		Int("skipped", skipped).
		Msg("import completed")
}
