package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
)

// maxQueryResults caps reads from the durable store.
const maxQueryResults = 200

// Postgres is the durable catalogue implementation.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed catalogue on an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// UpsertProduct inserts or fully overwrites the product row. No partial
// merge: nil optionals null out whatever an earlier import wrote.
func (s *Postgres) UpsertProduct(ctx context.Context, p catalogue.Product, sourceFeed string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO products (
			id, title, price, currency, brand, tags, url, image, source_feed, imported_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			brand = EXCLUDED.brand,
			tags = EXCLUDED.tags,
			url = EXCLUDED.url,
			image = EXCLUDED.image,
			source_feed = EXCLUDED.source_feed,
			imported_at = NOW()
	`, p.ID, p.Title, p.Price, p.Currency, p.Brand, p.Tags, p.URL, p.Image, sourceFeed)

	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
	}
	return nil
}

// RegisterFeed records the feed URL on first sight; duplicates are a no-op.
func (s *Postgres) RegisterFeed(ctx context.Context, url string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO feeds (id, url, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (url) DO NOTHING
	`, uuid.New().String(), url)

	if err != nil {
		return fmt.Errorf("failed to register feed %s: %w", url, err)
	}
	return nil
}

// QueryProducts executes a filtered, ordered, bounded read over the products
// table.
func (s *Postgres) QueryProducts(ctx context.Context, f Filters) ([]catalogue.Product, error) {
	query, args := buildProductQuery(f)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []catalogue.Product{}
	for rows.Next() {
		var p catalogue.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Price, &p.Currency, &p.Brand,
			&p.Tags, &p.URL, &p.Image, &p.SourceFeed, &p.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		products = append(products, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating products: %w", rows.Err())
	}

	return products, nil
}

// buildProductQuery assembles the WHERE clause incrementally from the
// specified filters only. Unspecified or unparsable filters contribute
// nothing.
func buildProductQuery(f Filters) (string, []interface{}) {
	query := `
		SELECT id, title, price, currency, brand, tags, url, image, source_feed, imported_at
		FROM products
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if f.Q != "" {
		query += " AND (title ILIKE $" + strconv.Itoa(argIdx) + " OR brand ILIKE $" + strconv.Itoa(argIdx) + ")"
		args = append(args, "%"+f.Q+"%")
		argIdx++
	}

	if f.Brand != "" {
		query += " AND brand ILIKE $" + strconv.Itoa(argIdx)
		args = append(args, "%"+f.Brand+"%")
		argIdx++
	}

	if f.Tag != "" {
		query += " AND $" + strconv.Itoa(argIdx) + " = ANY(tags)"
		args = append(args, f.Tag)
		argIdx++
	}

	if min := priceBound(f.MinPrice); min != nil {
		query += " AND price >= $" + strconv.Itoa(argIdx)
		args = append(args, *min)
		argIdx++
	}

	if max := priceBound(f.MaxPrice); max != nil {
		query += " AND price <= $" + strconv.Itoa(argIdx)
		args = append(args, *max)
		argIdx++
	}

	query += " ORDER BY imported_at DESC LIMIT " + strconv.Itoa(maxQueryResults)
	return query, args
}
