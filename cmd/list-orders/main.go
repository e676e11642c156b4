package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/shopadmin/internal/auth"
	"github.com/jafarshop/shopadmin/internal/config"
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/pagination"
	"github.com/jafarshop/shopadmin/internal/service"
	"github.com/jafarshop/shopadmin/internal/shopify"
)

func main() {
	maxPages := flag.Int("pages", 1, "maximum number of pages to fetch")
	after := flag.String("after", "", "start after this cursor")
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Shopify.ShopDomain == "" {
		fmt.Fprintln(os.Stderr, "SHOPIFY_SHOP_DOMAIN and SHOPIFY_ACCESS_TOKEN are required")
		os.Exit(1)
	}
	shop, err := auth.ValidateShop(cfg.Shopify.ShopDomain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid shop: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := domain.Session{
		ID:          domain.OfflineSessionID(shop),
		Shop:        shop,
		AccessToken: cfg.Shopify.AccessToken,
	}
	svc := service.NewAdminService(shopify.NewClient(cfg.Shopify, logger), cfg.Listing, logger)

	var req pagination.PageRequest
	if *after != "" {
		req.AfterCursor = after
	}

	var count int
	for pageNum := 1; pageNum <= *maxPages; pageNum++ {
		page, err := svc.ListOrders(ctx, session, req)
		if err != nil {
			logger.Error("Failed to fetch orders page", zap.Int("page", pageNum), zap.Error(err))
			os.Exit(1)
		}

		for _, o := range page.Items {
			count++
			customer := o.CustomerDisplayName
			if customer == "" {
				customer = "(guest)"
			}
			fmt.Printf("%-8s %-16s %-24s %-12s %-14s %12s  %s\n",
				o.Name, o.CreatedAt, customer, o.FinancialStatus, o.FulfillmentBadge.Label, o.Total, strings.Join(o.Tags, ","))
		}

		next, ok := page.PageInfo().NextPage()
		if !ok {
			break
		}
		req = next
		if pageNum == *maxPages {
			fmt.Printf("More orders available: -after %s\n", *next.AfterCursor)
		}
	}

	fmt.Printf("%d order(s) from %s\n", count, shop)
}
