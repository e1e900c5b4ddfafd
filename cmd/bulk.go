package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/slabworks/comps-cli/internal/fetch"
	"github.com/slabworks/comps-cli/internal/inventory"
	"github.com/slabworks/comps-cli/internal/listing"
	"github.com/slabworks/comps-cli/internal/model"
)

var (
	bulkInventory   string
	bulkTemplate    string
	bulkOut         string
	bulkSheet       string
	bulkLimit       int
	bulkDryRun      bool
	bulkConcurrency int
	bulkDelayMs     int
	bulkConditionID string
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Price an inventory sheet and write an upload CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("bulk"); err != nil {
			return err
		}

		cards, err := loadInventory(bulkInventory, bulkSheet)
		if err != nil {
			return err
		}
		if bulkLimit > 0 && len(cards) > bulkLimit {
			cards = cards[:bulkLimit]
		}

		tpl, err := listing.ReadTemplate(bulkTemplate)
		if err != nil {
			return err
		}

		concurrency := bulkConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}
		delayMs := bulkDelayMs
		if delayMs < 0 {
			delayMs = cfg.Batch.DelayMs
		}

		zap.L().Info("pricing inventory",
			zap.Int("cards", len(cards)),
			zap.Int("concurrency", concurrency),
			zap.Int("delay_ms", delayMs),
			zap.Bool("dry_run", bulkDryRun),
		)

		var results []*model.CompResult
		if bulkDryRun {
			results = make([]*model.CompResult, len(cards))
		} else {
			results, err = priceAll(ctx, newSearcher(), cards, concurrency, time.Duration(delayMs)*time.Millisecond)
			if err != nil {
				return err
			}
		}

		rows := make([][]string, 0, len(cards))
		for i, card := range cards {
			sku := listing.MakeSKU(i+1, card.Player, card.CardNumber)
			rows = append(rows, tpl.BuildRow(listing.RowData{
				Action:      "Add",
				SKU:         sku,
				Category:    cfg.Ebay.CategoryID,
				Title:       listing.MakeTitle(card),
				PicURL:      card.ImageURL,
				ConditionID: bulkConditionID,
				Card:        card,
				Result:      results[i],
			}))
		}

		if err := listing.WriteBulkCSV(bulkOut, tpl, rows); err != nil {
			return err
		}

		var priced, unpriced int
		for _, r := range results {
			if r != nil && r.Suggested.Valid {
				priced++
			} else {
				unpriced++
			}
		}
		zap.L().Info("bulk upload written",
			zap.String("out", bulkOut),
			zap.Int("priced", priced),
			zap.Int("unpriced", unpriced),
		)
		return nil
	},
}

// loadInventory picks the loader from the file extension.
func loadInventory(path, sheet string) ([]model.Card, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return inventory.LoadXLSX(path, sheet)
	case ".tsv", ".txt":
		return inventory.LoadTSV(path)
	default:
		return nil, eris.Errorf("bulk: unsupported inventory format %q", filepath.Ext(path))
	}
}

// discoverer lets tests substitute the comp searcher.
type discoverer interface {
	Discover(ctx context.Context, card model.Card) (*model.CompResult, error)
}

// priceAll discovers comps for every card with bounded concurrency and a
// shared inter-request pace. Per-card failures leave a nil result; a
// missing-credentials error aborts the whole batch.
func priceAll(ctx context.Context, d discoverer, cards []model.Card, concurrency int, delay time.Duration) ([]*model.CompResult, error) {
	results := make([]*model.CompResult, len(cards))

	limiter := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var failed atomic.Int64

	for i, card := range cards {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}

			log := zap.L().With(zap.Int("index", i+1), zap.String("player", card.Player))

			result, err := d.Discover(gctx, card)
			if err != nil {
				if errors.Is(err, fetch.ErrNotConfigured) {
					return eris.Wrap(err, "bulk: fetcher not configured")
				}
				failed.Add(1)
				log.Error("pricing failed", zap.Error(err))
				return nil // leave the row unpriced
			}

			results[i] = result
			log.Info("card priced",
				zap.String("tier", string(result.Tier)),
				zap.Int("comps", result.CompCount),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if n := failed.Load(); n > 0 {
		zap.L().Warn("some cards could not be priced", zap.Int64("failed", n))
	}
	return results, nil
}

func init() {
	f := bulkCmd.Flags()
	f.StringVar(&bulkInventory, "inventory", "", "inventory sheet path, .tsv or .xlsx (required)")
	f.StringVar(&bulkTemplate, "template", "", "eBay bulk-upload template CSV (required)")
	f.StringVar(&bulkOut, "out", "bulk_upload.csv", "output CSV path")
	f.StringVar(&bulkSheet, "sheet", "", "xlsx sheet name (default: first sheet)")
	f.IntVar(&bulkLimit, "limit", 0, "max cards to process (0 = all)")
	f.BoolVar(&bulkDryRun, "dry-run", false, "build rows without fetching prices")
	f.IntVar(&bulkConcurrency, "concurrency", 0, "concurrent lookups (default from config)")
	f.IntVar(&bulkDelayMs, "delay-ms", -1, "pause between lookups (default from config)")
	f.StringVar(&bulkConditionID, "condition-id", "4000", "eBay condition ID for all rows")
	_ = bulkCmd.MarkFlagRequired("inventory")
	_ = bulkCmd.MarkFlagRequired("template")
	rootCmd.AddCommand(bulkCmd)
}
