package order

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

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var total int64
	for _, item := range in.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}

	const orderQ = `
INSERT INTO orders (member_id, status, payment_status, total_cents, currency)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at, updated_at
`
	var o domain.Order
	o.MemberID = in.MemberID
	o.Status = domain.OrderStatusProcessing
	o.PaymentStatus = domain.PaymentStatusPaid
	o.TotalCents = total
	o.Currency = in.Currency
	if err := tx.QueryRow(ctx, orderQ, in.MemberID, o.Status, o.PaymentStatus, total, in.Currency).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		r.logger.Printf("order repo: create member_id=%s error=%v", in.MemberID, err)
		return nil, err
	}

	const itemQ = `
INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`
	for _, item := range in.Items {
		var itemID string
		if err := tx.QueryRow(ctx, itemQ, o.ID, item.ProductID, item.Quantity, item.UnitPriceCents).Scan(&itemID); err != nil {
			r.logger.Printf("order repo: create item order_id=%s product_id=%s error=%v", o.ID, item.ProductID, err)
			return nil, err
		}
		o.Items = append(o.Items, domain.OrderItem{
			ID:             itemID,
			OrderID:        o.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s member_id=%s items=%d total_cents=%d", o.ID, o.MemberID, len(o.Items), total)
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const orderQ = `
SELECT id::text, member_id::text, status, payment_status, total_cents, currency,
       COALESCE(shopify_order_id, ''), COALESCE(printify_order_id, ''), created_at, updated_at
FROM orders
WHERE id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, orderQ, id).Scan(
		&o.ID, &o.MemberID, &o.Status, &o.PaymentStatus, &o.TotalCents, &o.Currency,
		&o.ShopifyOrderID, &o.PrintifyOrderID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}

	const itemsQ = `
SELECT i.id::text, i.order_id::text, i.product_id::text, i.quantity, i.unit_price_cents,
       p.id::text, p.sku, p.name, p.price_cents, p.currency, p.inventory, p.is_digital,
       COALESCE(p.shopify_product_id, ''), COALESCE(p.shopify_inventory_item_id, ''),
       COALESCE(p.printify_product_id, ''), p.attributes, p.created_at
FROM order_items i
JOIN products p ON p.id = i.product_id
WHERE i.order_id = $1
ORDER BY i.created_at
`
	rows, err := r.pool.Query(ctx, itemsQ, id)
	if err != nil {
		r.logger.Printf("order repo: items order_id=%s error=%v", id, err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPriceCents,
			&item.Product.ID, &item.Product.SKU, &item.Product.Name, &item.Product.PriceCents,
			&item.Product.Currency, &item.Product.Inventory, &item.Product.IsDigital,
			&item.Product.ShopifyProductID, &item.Product.ShopifyInventoryItemID,
			&item.Product.PrintifyProductID, &item.Product.Attributes, &item.Product.CreatedAt,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) SetShopifyOrderID(ctx context.Context, orderID, shopifyOrderID string) error {
	return r.setColumn(ctx, orderID, "shopify_order_id", shopifyOrderID)
}

func (r *postgresRepo) SetPrintifyOrderID(ctx context.Context, orderID, printifyOrderID string) error {
	return r.setColumn(ctx, orderID, "printify_order_id", printifyOrderID)
}

func (r *postgresRepo) setColumn(ctx context.Context, orderID, column, value string) error {
	// column is one of two compile-time constants above, never caller input.
	q := `UPDATE orders SET ` + column + ` = $1, updated_at = now() WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, value, orderID)
	if err != nil {
		r.logger.Printf("order repo: set %s id=%s error=%v", column, orderID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, orderID, status string) error {
	const q = `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`
	tag, err := r.pool.Exec(ctx, q, status, orderID)
	if err != nil {
		r.logger.Printf("order repo: set status id=%s status=%s error=%v", orderID, status, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: status id=%s status=%s", orderID, status)
	return nil
}

func (r *postgresRepo) ListStuck(ctx context.Context, olderThanSeconds int, limit int) ([]domain.Order, error) {
	const q = `
SELECT id::text, member_id::text, status, payment_status, total_cents, currency,
       COALESCE(shopify_order_id, ''), COALESCE(printify_order_id, ''), created_at, updated_at
FROM orders
WHERE status = $1
  AND payment_status = $2
  AND updated_at < now() - make_interval(secs => $3)
ORDER BY updated_at
LIMIT $4
`
	rows, err := r.pool.Query(ctx, q, domain.OrderStatusProcessing, domain.PaymentStatusPaid, olderThanSeconds, limit)
	if err != nil {
		r.logger.Printf("order repo: list stuck error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.MemberID, &o.Status, &o.PaymentStatus, &o.TotalCents, &o.Currency,
			&o.ShopifyOrderID, &o.PrintifyOrderID, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
