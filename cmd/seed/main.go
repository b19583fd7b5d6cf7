package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   "./data/seeds",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize and seed the inventory database",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the database schema",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runSchema,
			},
			{
				Name:   "tags",
				Usage:  "Seed tags from tags.csv",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runSeedTags,
			},
			{
				Name:   "items",
				Usage:  "Seed inventory items from items.csv",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runSeedItems,
			},
			{
				Name:  "all",
				Usage: "Create the schema and seed tags plus items",
				Flags: []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: func(c *cli.Context) error {
					if err := runSchema(c); err != nil {
						return fmt.Errorf("error creating schema: %w", err)
					}
					if err := runSeedTags(c); err != nil {
						return fmt.Errorf("error seeding tags: %w", err)
					}
					if err := runSeedItems(c); err != nil {
						return fmt.Errorf("error seeding items: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id BIGSERIAL PRIMARY KEY,
	product_name TEXT NOT NULL,
	brand TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	purchase_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	purchase_currency TEXT NOT NULL DEFAULT 'GBP',
	shipping_price DOUBLE PRECISION,
	shipping_currency TEXT,
	market_price DOUBLE PRECISION,
	purchase_date DATE,
	status TEXT NOT NULL DEFAULT 'unlisted',
	reference TEXT UNIQUE,
	size TEXT,
	size_system TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS listings (
	id BIGSERIAL PRIMARY KEY,
	item_id BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	platform TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL DEFAULT 0,
	posted_at DATE,
	status TEXT NOT NULL DEFAULT 'active',
	url TEXT
);

CREATE TABLE IF NOT EXISTS tags (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX IF NOT EXISTS tags_name_lower_idx ON tags (lower(name));

CREATE TABLE IF NOT EXISTS item_tags (
	item_id BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
	tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (item_id, tag_id)
);

CREATE INDEX IF NOT EXISTS items_status_idx ON items (status);
CREATE INDEX IF NOT EXISTS listings_item_idx ON listings (item_id);
`

func runSchema(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Println("Creating database schema...")
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Println("Schema created successfully")
	return nil
}

func runSeedTags(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	path := c.String("data-dir") + "/tags.csv"
	log.Printf("Seeding tags from %s\n", path)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	count := 0
	err = forEachRecord(path, func(record []string, colMap map[string]int) error {
		name := fieldAt(record, colMap, "name")
		if name == "" {
			return fmt.Errorf("tag name is empty")
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tags (name, color) VALUES ($1, $2)
			ON CONFLICT (lower(name)) DO UPDATE SET color = EXCLUDED.color`,
			name, fieldAt(record, colMap, "color"))
		if err != nil {
			return fmt.Errorf("failed to insert tag %q: %w", name, err)
		}
		count++
		return nil
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Printf("Successfully seeded %d tags\n", count)
	return nil
}

func runSeedItems(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	path := c.String("data-dir") + "/items.csv"
	log.Printf("Seeding items from %s\n", path)

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO items (
			product_name, brand, category, purchase_price, purchase_currency,
			shipping_price, shipping_currency, market_price, purchase_date,
			status, reference, size, size_system
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::date, $10, $11, $12, $13)
		ON CONFLICT (reference) DO UPDATE SET
			product_name = EXCLUDED.product_name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			purchase_price = EXCLUDED.purchase_price,
			purchase_currency = EXCLUDED.purchase_currency,
			shipping_price = EXCLUDED.shipping_price,
			shipping_currency = EXCLUDED.shipping_currency,
			market_price = EXCLUDED.market_price,
			purchase_date = EXCLUDED.purchase_date,
			status = EXCLUDED.status,
			size = EXCLUDED.size,
			size_system = EXCLUDED.size_system,
			updated_at = NOW()`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare item statement: %w", err)
	}
	defer stmt.Close()

	count := 0
	err = forEachRecord(path, func(record []string, colMap map[string]int) error {
		name := fieldAt(record, colMap, "productName")
		reference := fieldAt(record, colMap, "reference")
		if name == "" || reference == "" {
			return fmt.Errorf("productName and reference are required (got %q, %q)", name, reference)
		}

		purchasePrice, err := strconv.ParseFloat(fieldAt(record, colMap, "purchasePrice"), 64)
		if err != nil {
			return fmt.Errorf("invalid purchasePrice for %s: %w", reference, err)
		}

		currency := strings.ToUpper(fieldAt(record, colMap, "purchaseCurrency"))
		if currency == "" {
			currency = "GBP"
		}

		status := strings.ToLower(fieldAt(record, colMap, "status"))
		switch status {
		case "listed", "sold":
		default:
			status = "unlisted"
		}

		if _, err := stmt.ExecContext(ctx,
			name,
			fieldAt(record, colMap, "brand"),
			fieldAt(record, colMap, "category"),
			purchasePrice,
			currency,
			nullableFloat(fieldAt(record, colMap, "shippingPrice")),
			nullIfEmpty(strings.ToUpper(fieldAt(record, colMap, "shippingCurrency"))),
			nullableFloat(fieldAt(record, colMap, "marketPrice")),
			fieldAt(record, colMap, "purchaseDate"),
			status,
			reference,
			nullIfEmpty(fieldAt(record, colMap, "size")),
			nullIfEmpty(fieldAt(record, colMap, "sizeSystem")),
		); err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", reference, err)
		}

		count++
		if count%5000 == 0 {
			log.Printf("Seeded %d items...", count)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Printf("Successfully seeded %d items\n", count)
	return nil
}

// forEachRecord streams a headed CSV file, invoking fn per data row.
func forEachRecord(path string, fn func(record []string, colMap map[string]int) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.TrimSpace(col)] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}
		if err := fn(record, colMap); err != nil {
			return err
		}
	}

	return nil
}

func fieldAt(record []string, colMap map[string]int, col string) string {
	if idx, ok := colMap[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableFloat(s string) sql.NullFloat64 {
	if s == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
