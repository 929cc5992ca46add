package cmd

import (
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pursuit-cli/pursuit/internal/lifecycle"
	"github.com/pursuit-cli/pursuit/internal/logger"
	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var confirmPrompt = promptui.Select{
	Label: "Apply these transitions?",
	Items: []string{PromptYes, PromptNo},
}

var advanceCmd = &cobra.Command{
	Use:   "advance <target-status>",
	Short: "Move records to the target lifecycle status",
	Long: `Move records to the target lifecycle status.

Candidates are narrowed by --id, --status, --category, and --effort. Every
planned transition is previewed first; a dry run stops there, otherwise the
changes are applied after confirmation. Illegal transitions and records whose
status contradicts their timeline are reported and skipped, never partially
written.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		advance(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(advanceCmd)

	advanceCmd.Flags().StringSlice("id", nil, "record ids to advance")
	advanceCmd.Flags().String("status", "", "only records currently in this status")
	advanceCmd.Flags().String("category", "", "only records in this category")
	advanceCmd.Flags().String("effort", "", "only records with this submission effort level")
	advanceCmd.Flags().String("outcome", "", "outcome value, required when advancing to outcome (accepted|rejected|withdrawn|expired)")
	advanceCmd.Flags().Bool("dry-run", false, "preview every change without writing")
	advanceCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before writing")
}

func advance(cmd *cobra.Command, args []string) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	target := opportunity.Status(args[0])
	if !target.IsValid() {
		zlog.Fatal("unknown target status", zap.String("status", args[0]))
	}
	outcome := opportunity.Outcome(stringFlag(cmd, "outcome"))
	if outcome != "" && !outcome.IsValid() {
		zlog.Fatal("unknown outcome", zap.String("outcome", string(outcome)))
	}

	st := newStore(config)
	executor := lifecycle.NewExecutor(st, zlog)

	records, loadErrs := st.LoadAll()
	for _, loadErr := range loadErrs {
		zlog.Error("loading record", zap.Error(loadErr))
	}

	ids, _ := cmd.Flags().GetStringSlice("id")
	selector := &opportunity.Selector{
		IDs:      ids,
		Status:   opportunity.Status(stringFlag(cmd, "status")),
		Category: opportunity.Category(stringFlag(cmd, "category")),
		Effort:   opportunity.EffortLevel(stringFlag(cmd, "effort")),
	}

	candidates := records.Filter(selector)
	if candidates.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no records match the filter"))
		return
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Preview first, always: the dry run is the whole command, the real run
	// shows the same plan before asking to write.
	preview := executor.AdvanceBatch(candidates, target, outcome, true)
	renderBatch(preview, true)

	if dryRun {
		zlog.Info("dry run finished", zap.Int("candidates", candidates.Len()))
		return
	}

	if !boolFlag(cmd, "yes") {
		_, action, err := confirmPrompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}
		if action != PromptYes {
			zlog.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	results := executor.AdvanceBatch(candidates, target, outcome, false)
	renderBatch(results, false)

	applied, failed := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			zlog.Error("advancing record", zap.String("id", result.Record.ID), zap.Error(result.Err))
			continue
		}
		applied++
	}

	zlog.Info("advance finished",
		zap.String("target", string(target)),
		zap.Int("applied", applied),
		zap.Int("failed", failed),
	)
}

// renderBatch prints the per-record plan or result table. Failures are shown
// alongside successes; a batch always reports everything it touched.
func renderBatch(results []lifecycle.BatchResult, preview bool) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	state := "Result"
	if preview {
		state = "Planned"
	}
	t.AppendHeader(table.Row{"ID", "From", "To", "Milestone", state})

	for _, result := range results {
		outcome := "ok"
		switch {
		case result.Err != nil:
			outcome = result.Err.Error()
		case preview:
			outcome = "would apply"
		case result.Applied:
			outcome = "applied"
		}

		milestone := string(result.Milestone)
		if milestone == "" {
			milestone = "-"
		}

		t.AppendRow(table.Row{result.Record.ID, result.From, result.To, milestone, outcome})
	}
	t.Render()
}

func stringFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

func boolFlag(cmd *cobra.Command, name string) bool {
	value, _ := cmd.Flags().GetBool(name)
	return value
}
