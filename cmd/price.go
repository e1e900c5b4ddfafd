package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/slabworks/comps-cli/internal/inventory"
	"github.com/slabworks/comps-cli/internal/model"
)

var (
	priceCard model.Card
	priceSKU  string
	priceSave bool
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Discover comps and suggest a price for a single card",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("price"); err != nil {
			return err
		}

		card := priceCard
		inventory.Enrich(&card)

		var run *model.PriceRun
		if priceSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err = st.CreateRun(ctx, priceSKU, card)
			if err != nil {
				return eris.Wrap(err, "create run")
			}
			if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusPricing); err != nil {
				return err
			}

			result, derr := newSearcher().Discover(ctx, card)
			if derr != nil {
				_ = st.FailRun(ctx, run.ID, derr.Error())
				return eris.Wrap(derr, "discover comps")
			}
			if err := st.CompleteRun(ctx, run.ID, result); err != nil {
				return err
			}
			return printJSON(result)
		}

		result, err := newSearcher().Discover(ctx, card)
		if err != nil {
			return eris.Wrap(err, "discover comps")
		}

		zap.L().Info("comps discovered",
			zap.String("player", card.Player),
			zap.String("tier", string(result.Tier)),
			zap.Int("comps", result.CompCount),
			zap.String("confidence", string(result.Confidence)),
		)

		return printJSON(result)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	f := priceCmd.Flags()
	f.StringVar(&priceCard.Player, "player", "", "player name (required)")
	f.StringVar(&priceCard.CardName, "name", "", "full card name")
	f.StringVar(&priceCard.Year, "year", "", "card year")
	f.StringVar(&priceCard.Set, "set", "", "set name")
	f.StringVar(&priceCard.SetShort, "set-short", "", "short set name used in queries")
	f.StringVar(&priceCard.CardNumber, "number", "", "card number")
	f.StringVar(&priceCard.Parallel, "parallel", "", "parallel or variety")
	f.StringVar(&priceCard.Serial, "serial", "", "serial print run, e.g. 99 for /99")
	f.StringVar(&priceCard.GradeCompany, "grade-company", "", "grading company, e.g. PSA")
	f.StringVar(&priceCard.Grade, "grade", "", "numeric grade, e.g. 10")
	f.BoolVar(&priceCard.Auto, "auto", false, "card is autographed")
	f.StringVar(&priceCard.Features, "features", "", "feature text, e.g. Refractor /99")
	f.StringVar(&priceSKU, "sku", "", "SKU to record with the run")
	f.BoolVar(&priceSave, "save", false, "persist the run to the store")
	_ = priceCmd.MarkFlagRequired("player")
	rootCmd.AddCommand(priceCmd)
}
