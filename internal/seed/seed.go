package seed

import (
	"context"
	"fmt"
	"log"

	"namc-portal/internal/domain"
	memberrepo "namc-portal/internal/repository/member"
	productrepo "namc-portal/internal/repository/product"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Apply inserts demo members and products for manual testing. It is
// idempotent via the repositories' ON CONFLICT upserts.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger) error {
	members := memberrepo.NewPostgres(pool, logger)
	products := productrepo.NewPostgres(pool, logger)

	demoMembers := []domain.Member{
		{Email: "regular@namc.example", FirstName: "Rae", LastName: "Gill", Tier: domain.TierRegular, Points: 0},
		{Email: "premium@namc.example", FirstName: "Pat", LastName: "Moss", Tier: domain.TierPremium, Points: 5200},
		{Email: "executive@namc.example", FirstName: "Eli", LastName: "Von", Tier: domain.TierExecutive, Points: 12400},
	}
	for _, m := range demoMembers {
		if _, err := members.Upsert(ctx, m); err != nil {
			return fmt.Errorf("upsert member %s: %w", m.Email, err)
		}
	}

	demoProducts := []domain.Product{
		{
			SKU:                    "NAMC-TEE",
			Name:                   "NAMC Member T-Shirt",
			PriceCents:             2499,
			Currency:               "USD",
			Inventory:              120,
			ShopifyProductID:       "8012345678901",
			ShopifyInventoryItemID: "44012345678901",
		},
		{
			SKU:               "NAMC-HOODIE-POD",
			Name:              "NAMC Chapter Hoodie",
			PriceCents:        5499,
			Currency:          "USD",
			PrintifyProductID: "64fb12cd34ab56ef78901234",
		},
		{
			SKU:        "NAMC-COURSE-BIDDING",
			Name:       "Construction Bidding Masterclass",
			PriceCents: 9900,
			Currency:   "USD",
			IsDigital:  true,
		},
		{
			SKU:        "NAMC-GUIDE-PERMITS",
			Name:       "Permit Readiness Guide",
			PriceCents: 1900,
			Currency:   "USD",
			IsDigital:  true,
		},
	}
	for _, p := range demoProducts {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	return nil
}
