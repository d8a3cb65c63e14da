// Package main provides a CLI tool for seeding the database with demo data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"essentia/internal/core/id"
	"essentia/internal/core/types"
	"essentia/internal/infrastructure/storage/postgres"
	"essentia/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedShops(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed shops", "error", err)
	}
	if err := seedBottleSizes(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed bottle sizes", "error", err)
	}
	if err := seedLots(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed bulk lots", "error", err)
	}

	log.Info("seeding completed successfully")
}

// exists reports whether an undeleted row with the code is already there.
func exists(ctx context.Context, pool *postgres.Pool, table, code string) (bool, error) {
	var found id.ID
	err := pool.Pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE code = $1 AND NOT deletion_mark`, table),
		code,
	).Scan(&found)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return false, err
}

func seedShops(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	shops := []struct {
		code    string
		name    string
		address string
	}{
		{"SHOP-001", "Main Street", "12 Main St"},
		{"SHOP-002", "Harbor Mall", "Harbor Mall, Unit 34"},
		{"SHOP-003", "Airport Kiosk", "Terminal 2, Gate B"},
	}

	for _, s := range shops {
		ok, err := exists(ctx, pool, "shops", s.code)
		if err != nil {
			return err
		}
		if ok {
			log.Infow("shop already exists", "code", s.code)
			continue
		}

		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO shops (id, code, name, address, active, version, deletion_mark, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, 1, false, now(), now())
		`, id.New(), s.code, s.name, s.address)
		if err != nil {
			return fmt.Errorf("insert shop %s: %w", s.code, err)
		}
		log.Infow("shop seeded", "code", s.code, "name", s.name)
	}
	return nil
}

func seedBottleSizes(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	sizes := []struct {
		code     string
		name     string
		sizeML   types.Volume
		count    int
		unitCost string
	}{
		{"BS-030", "Bottle set 30ml", 30, 500, "1.50"},
		{"BS-050", "Bottle set 50ml", 50, 500, "2.00"},
		{"BS-100", "Bottle set 100ml", 100, 300, "2.80"},
	}

	for _, s := range sizes {
		ok, err := exists(ctx, pool, "bottle_sizes", s.code)
		if err != nil {
			return err
		}
		if ok {
			log.Infow("bottle size already exists", "code", s.code)
			continue
		}

		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO bottle_sizes (id, code, name, size_ml, available_count, unit_cost, version, deletion_mark, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, 1, false, now(), now())
		`, id.New(), s.code, s.name, s.sizeML.ML(), s.count, s.unitCost)
		if err != nil {
			return fmt.Errorf("insert bottle size %s: %w", s.code, err)
		}
		log.Infow("bottle size seeded", "code", s.code, "size_ml", s.sizeML.ML())
	}
	return nil
}

func seedLots(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	lots := []struct {
		code      string
		name      string
		volumeML  types.Volume
		costPerML string
		category  string
	}{
		{"LOT-001", "Rose Garden", 10000, "0.03", "floral"},
		{"LOT-002", "Citrus Grove", 8000, "0.025", "fresh"},
		{"LOT-003", "Oud Royale", 5000, "0.08", "selective oriental"},
	}

	for _, l := range lots {
		ok, err := exists(ctx, pool, "bulk_lots", l.code)
		if err != nil {
			return err
		}
		if ok {
			log.Infow("bulk lot already exists", "code", l.code)
			continue
		}

		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO bulk_lots (id, code, name, remaining_volume_ml, cost_per_ml, category, active, version, deletion_mark, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, 1, false, now(), now())
		`, id.New(), l.code, l.name, l.volumeML.ML(), l.costPerML, l.category)
		if err != nil {
			return fmt.Errorf("insert bulk lot %s: %w", l.code, err)
		}
		log.Infow("bulk lot seeded", "code", l.code, "name", l.name, "category", l.category)
	}
	return nil
}
