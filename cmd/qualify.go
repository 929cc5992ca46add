package cmd

import (
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pursuit-cli/pursuit/internal/logger"
	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

const reasonLogLimit = 120

var qualifyCmd = &cobra.Command{
	Use:   "qualify",
	Short: "Report an apply/skip recommendation for every record",
	Run: func(cmd *cobra.Command, _ []string) {
		qualify(cmd)
	},
}

func init() {
	rootCmd.AddCommand(qualifyCmd)
}

func qualify(_ *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	st := newStore(config)
	engine, err := newEngine(config, zlog)
	if err != nil {
		zlog.Fatal("building the scoring engine", zap.Error(err))
	}

	records, loadErrs := st.LoadAll()
	for _, loadErr := range loadErrs {
		zlog.Error("loading record", zap.Error(loadErr))
	}
	if records.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no records found"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Category", "Status", "Composite", "Threshold", "Decision", "Reason"})

	applyCount, skipCount := 0, 0
	for _, r := range records.Items {
		q := engine.Qualify(r)

		decision := "skip"
		if q.Apply {
			decision = "apply"
			applyCount++
		} else {
			skipCount++
		}

		reason := q.Reason
		if expired(r, time.Now()) {
			reason = "deadline passed; " + reason
		}

		t.AppendRow(table.Row{r.ID, r.Category, r.Status, q.Composite, q.Threshold, decision, reason})

		zlog.Debug("qualified record",
			zap.String("id", r.ID),
			zap.Bool("apply", q.Apply),
			zap.String("reason", logger.TruncateForLog(q.Reason, reasonLogLimit)),
		)
	}
	t.Render()

	zlog.Info("qualification finished",
		zap.Int("apply", applyCount),
		zap.Int("skip", skipCount),
		zap.Int("load_errors", len(loadErrs)),
	)
}

// expired reports whether a dated deadline is already in the past. Rolling
// and tba deadlines never expire.
func expired(r *opportunity.Record, now time.Time) bool {
	if r.Deadline.Type.NeverExpires() || r.Deadline.Date.IsZero() {
		return false
	}
	return r.Deadline.Date.Before(opportunity.NewDate(now).Time)
}
