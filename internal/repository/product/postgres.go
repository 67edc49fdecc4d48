package product

import (
	"context"
	"errors"
	"io"
	"log"

	"namc-portal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, sku, name, price_cents, currency, inventory, is_digital,
       COALESCE(shopify_product_id, ''), COALESCE(shopify_inventory_item_id, ''),
       COALESCE(printify_product_id, ''), attributes, created_at`

func scanProduct(row pgx.Row, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.PriceCents, &p.Currency, &p.Inventory, &p.IsDigital,
		&p.ShopifyProductID, &p.ShopifyInventoryItemID, &p.PrintifyProductID,
		&p.Attributes, &p.CreatedAt,
	)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	if err := scanProduct(r.pool.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) AdjustInventory(ctx context.Context, id string, quantity int) (int, error) {
	const q = `
UPDATE products
SET inventory = GREATEST(0, inventory - $1)
WHERE id = $2
RETURNING inventory
`
	var level int
	if err := r.pool.QueryRow(ctx, q, quantity, id).Scan(&level); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		r.logger.Printf("product repo: adjust inventory id=%s qty=%d error=%v", id, quantity, err)
		return 0, err
	}
	r.logger.Printf("product repo: inventory id=%s qty=-%d level=%d", id, quantity, level)
	return level, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (sku, name, price_cents, currency, inventory, is_digital,
                      shopify_product_id, shopify_inventory_item_id, printify_product_id, attributes)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), COALESCE($10, '{}'::jsonb))
ON CONFLICT (sku) DO UPDATE SET
    name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    inventory = EXCLUDED.inventory,
    is_digital = EXCLUDED.is_digital,
    shopify_product_id = EXCLUDED.shopify_product_id,
    shopify_inventory_item_id = EXCLUDED.shopify_inventory_item_id,
    printify_product_id = EXCLUDED.printify_product_id,
    attributes = EXCLUDED.attributes
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.SKU, p.Name, p.PriceCents, p.Currency, p.Inventory, p.IsDigital,
		p.ShopifyProductID, p.ShopifyInventoryItemID, p.PrintifyProductID, p.Attributes,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert sku=%s error=%v", p.SKU, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted sku=%s id=%s", res.SKU, res.ID)
	return &res, nil
}
