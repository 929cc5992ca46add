package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pursuit-cli/pursuit/internal/logger"
	"github.com/pursuit-cli/pursuit/internal/opportunity"
	"github.com/pursuit-cli/pursuit/internal/scoring"
	"github.com/pursuit-cli/pursuit/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score [id]",
	Short: "Recompute dimension scores and the composite for one record or for all",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func score(_ *cobra.Command, args []string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	st := newStore(config)
	engine, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}

	records, loadErrs := loadTargets(st, args)
	for _, loadErr := range loadErrs {
		logger.Error("loading record", zap.Error(loadErr))
	}
	if records.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no records to score"))
		return
	}

	scored, failed := 0, 0
	for _, r := range records.Items {
		if schemaErrs := r.Validate(); len(schemaErrs) > 0 {
			// Schema problems are reported but scoring still runs; only
			// advancing is blocked by a broken record.
			for _, schemaErr := range schemaErrs {
				logger.Warn("schema error", zap.String("id", r.ID), zap.Error(schemaErr))
			}
		}

		composite, err := scoreRecord(engine, st, r)
		if err != nil {
			logger.Error("scoring record", zap.String("id", r.ID), zap.Error(err))
			failed++
			continue
		}

		logger.Info("scored record",
			zap.String("id", r.ID),
			zap.String("category", string(r.Category)),
			zap.Float64("composite", composite),
		)
		scored++
	}

	logger.Info("scoring finished", zap.Int("scored", scored), zap.Int("failed", failed))
}

// scoreRecord computes all eight dimensions and the composite, then persists
// them through the store's partial update so human annotations in the record
// file survive. Override flags on human-judgment dimensions are carried over.
func scoreRecord(engine *scoring.Engine, st *store.Store, r *opportunity.Record) (float64, error) {
	dims := engine.Score(r)
	composite := engine.Composite(dims, r.Category)

	fields := map[string]interface{}{
		"fit.score": composite,
	}
	for dim, value := range dims {
		fields["fit.dimensions."+string(dim)] = opportunity.DimensionScore{
			Value:    value,
			Override: r.HasOverride(dim),
		}
	}

	if err := st.Update(r.ID, fields); err != nil {
		return 0, err
	}

	r.Fit.Score = composite
	return composite, nil
}

// loadTargets loads either the single requested record or every record in
// the store. Per-record load failures never abort the rest.
func loadTargets(st *store.Store, args []string) (*opportunity.Records, []error) {
	if len(args) == 0 {
		return st.LoadAll()
	}

	record, err := st.Load(args[0])
	if err != nil {
		return &opportunity.Records{}, []error{fmt.Errorf("loading %s: %w", args[0], err)}
	}
	return &opportunity.Records{Items: []*opportunity.Record{record}}, nil
}
