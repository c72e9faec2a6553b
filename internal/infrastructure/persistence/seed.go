package persistence

import (
	"context"
	"fmt"

	"github.com/azurestore/backend/internal/domain/catalog"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// seedProduct describes one entry of the initial catalog
type seedProduct struct {
	name        string
	description string
	category    string
	price       string
	imageURL    string
	stock       int
}

// initialCatalog is the fixed catalog a fresh store starts with
var initialCatalog = []seedProduct{
	{
		name:        "Ocean Blue Minimalist Chair",
		description: "Ergonomic design with high-quality azure fabric. Perfect for modern living spaces.",
		category:    "Furniture",
		price:       "129.99",
		imageURL:    "https://images.unsplash.com/photo-1592078615290-033ee584e267?auto=format&fit=crop&q=80&w=800",
		stock:       15,
	},
	{
		name:        "Sapphire Ceramic Vase",
		description: "Handcrafted ceramic vase with a deep sapphire glaze. Adds elegance to any room.",
		category:    "Decor",
		price:       "45.00",
		imageURL:    "https://images.unsplash.com/photo-1578500494198-246f612d3b3d?auto=format&fit=crop&q=80&w=800",
		stock:       30,
	},
	{
		name:        "Cloud Watch Pro",
		description: "Sleek smartwatch with a sky-blue strap. Features advanced health tracking.",
		category:    "Electronics",
		price:       "299.99",
		imageURL:    "https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&q=80&w=800",
		stock:       10,
	},
	{
		name:        "Cobalt Linen Bedding",
		description: "Ultra-soft cobalt blue linen sheets for a restful night's sleep.",
		category:    "Home",
		price:       "89.99",
		imageURL:    "https://images.unsplash.com/photo-1522771739844-6a9f6d5f14af?auto=format&fit=crop&q=80&w=800",
		stock:       20,
	},
	{
		name:        "Minimalist Blue Notebook",
		description: "Hardcover A5 notebook with premium paper and a signature blue bookmark.",
		category:    "Stationery",
		price:       "18.50",
		imageURL:    "https://images.unsplash.com/photo-1544816155-12df9643f363?auto=format&fit=crop&q=80&w=800",
		stock:       50,
	},
	{
		name:        "Electric Blue Headphones",
		description: "Noise-canceling wireless headphones with studio-quality audio performance.",
		category:    "Electronics",
		price:       "159.00",
		imageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&q=80&w=800",
		stock:       8,
	},
}

// SeedCatalog inserts the initial catalog when the products table is empty.
// An already-populated catalog is left untouched.
func SeedCatalog(ctx context.Context, repo catalog.ProductRepository, log *zap.Logger) error {
	count, err := repo.Count(ctx, catalog.ProductFilter{})
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Debug("catalog already seeded", zap.Int64("products", count))
		return nil
	}

	for _, seed := range initialCatalog {
		price, err := valueobject.NewMoneyUSDFromString(seed.price)
		if err != nil {
			return fmt.Errorf("invalid seed price for %q: %w", seed.name, err)
		}

		product, err := catalog.NewProduct(seed.name, seed.description, seed.category, price, seed.stock)
		if err != nil {
			return fmt.Errorf("invalid seed product %q: %w", seed.name, err)
		}
		if err := product.SetImageURL(seed.imageURL); err != nil {
			return err
		}

		if err := repo.Save(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", seed.name, err)
		}
	}

	log.Info("seeded initial catalog", zap.Int("products", len(initialCatalog)))
	return nil
}
