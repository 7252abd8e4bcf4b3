package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-checkout/internal/config"
	"github.com/noah-isme/backend-checkout/internal/db"
	"github.com/noah-isme/backend-checkout/internal/obs"
)

type seedProduct struct {
	name    string
	ptype   string
	price   string
	weight  string
	dims    [3]string
	hasDims bool
	fragile bool
}

type seedClient struct {
	name   string
	region string
	tier   string
}

func main() {
	logger := obs.NewLogger("console", "info")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	products := []seedProduct{
		{name: "Paperback novel", ptype: "books", price: "39.90", weight: "0.40"},
		{name: "Hardcover atlas", ptype: "books", price: "129.00", weight: "1.80", dims: [3]string{"30", "25", "4"}, hasDims: true},
		{name: "Ceramic mug", ptype: "kitchen", price: "24.50", weight: "0.35", fragile: true},
		{name: "Cast iron skillet", ptype: "kitchen", price: "189.90", weight: "2.70"},
		{name: "Wine glass set", ptype: "kitchen", price: "99.00", weight: "1.20", dims: [3]string{"35", "25", "20"}, hasDims: true, fragile: true},
		{name: "Mechanical keyboard", ptype: "electronics", price: "349.00", weight: "0.95", dims: [3]string{"45", "15", "4"}, hasDims: true},
		{name: "27in monitor", ptype: "electronics", price: "1499.00", weight: "5.60", dims: [3]string{"62", "40", "18"}, hasDims: true, fragile: true},
		{name: "Yoga mat", ptype: "sports", price: "79.90", weight: "1.10"},
	}
	clients := []seedClient{
		{name: "Ana Souza", region: "SOUTHEAST", tier: "GOLD"},
		{name: "Bruno Lima", region: "SOUTH", tier: "SILVER"},
		{name: "Carla Mendes", region: "NORTH", tier: "BRONZE"},
	}

	productIDs := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		id := uuid.New()
		var length, width, height *string
		if p.hasDims {
			length, width, height = &p.dims[0], &p.dims[1], &p.dims[2]
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, product_type, price, weight, length, width, height, fragile)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, p.name, p.ptype, p.price, p.weight, length, width, height, p.fragile)
		if err != nil {
			logger.Fatal().Err(err).Str("product", p.name).Msg("insert product")
		}
		productIDs = append(productIDs, id)
	}

	for i, c := range clients {
		clientID := uuid.New()
		if _, err := pool.Exec(ctx, `
			INSERT INTO clients (id, name, region, loyalty_tier) VALUES ($1, $2, $3, $4)`,
			clientID, c.name, c.region, c.tier); err != nil {
			logger.Fatal().Err(err).Str("client", c.name).Msg("insert client")
		}

		cartID := uuid.New()
		if _, err := pool.Exec(ctx,
			`INSERT INTO carts (id, client_id) VALUES ($1, $2)`, cartID, clientID); err != nil {
			logger.Fatal().Err(err).Msg("insert cart")
		}
		// every demo cart gets a different slice of the catalog
		for pos, productID := range productIDs[i : i+4] {
			if _, err := pool.Exec(ctx, `
				INSERT INTO cart_items (cart_id, product_id, qty, position)
				VALUES ($1, $2, $3, $4)`,
				cartID, productID, int64(pos+1), pos); err != nil {
				logger.Fatal().Err(err).Msg("insert cart item")
			}
		}
		fmt.Fprintf(os.Stdout, "client=%s cart=%s\n", clientID, cartID)
	}

	logger.Info().Int("products", len(products)).Int("clients", len(clients)).Msg("seed complete")
}
