package cmd

import (
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pursuit-cli/pursuit/internal/lifecycle"
	"github.com/pursuit-cli/pursuit/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every record against the schema and its own timeline",
	Run: func(cmd *cobra.Command, _ []string) {
		validate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validate(_ *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	st := newStore(config)
	records, loadErrs := st.LoadAll()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Record", "Kind", "Error"})

	// Load errors cover unreadable files, unparseable yaml, duplicate ids,
	// and id/filename mismatches. The record id is baked into the message.
	for _, loadErr := range loadErrs {
		t.AppendRow(table.Row{"-", "load", loadErr.Error()})
	}

	clean := 0
	problems := len(loadErrs)
	for _, r := range records.Items {
		recordProblems := 0

		for _, schemaErr := range r.Validate() {
			t.AppendRow(table.Row{r.ID, "schema", schemaErr.Error()})
			recordProblems++
		}
		for _, consistencyErr := range lifecycle.ValidateConsistency(r) {
			t.AppendRow(table.Row{r.ID, "consistency", consistencyErr.Error()})
			recordProblems++
		}

		if recordProblems == 0 {
			clean++
		}
		problems += recordProblems
	}

	if problems > 0 {
		t.Render()
	}

	zlog.Info("validation finished",
		zap.Int("records", records.Len()),
		zap.Int("clean", clean),
		zap.Int("problems", problems),
	)
}
