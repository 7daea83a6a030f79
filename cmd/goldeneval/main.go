package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdgilhuly/goldeneval/pkg/config"
	"github.com/jdgilhuly/goldeneval/pkg/dataset"
	"github.com/jdgilhuly/goldeneval/pkg/provider"
	"github.com/jdgilhuly/goldeneval/pkg/report"
	"github.com/jdgilhuly/goldeneval/pkg/result"
	"github.com/jdgilhuly/goldeneval/pkg/runner"
	"github.com/jdgilhuly/goldeneval/pkg/template"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "goldeneval",
	Short: "Run golden dataset evals against an LLM API",
	Long: `goldeneval runs a CSV-defined set of prompt/expected-output pairs
against a hosted LLM API and reports pass/fail by substring matching.

Each dataset row supplies template variables by column name plus an
expected_output column listing accepted substrings (pipe-delimited).
The run succeeds when the pass rate meets the configured threshold.`,
	SilenceUsage: true,
}

// --- run command ---

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run evals from a golden dataset",
	Long: `Execute every dataset row against the configured LLM provider.

For each row the prompt template is filled with the row's variables, sent
to the model at temperature 0, and the output is checked for any of the
expected substrings. Provider errors on individual rows are recorded and
the run continues.

Exit code is 0 when the pass rate meets the threshold, 1 otherwise.`,
	RunE: runEvals,
}

func runEvals(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	cfgPath, _ := flags.GetString("config")

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("threshold") {
		cfg.Threshold, _ = flags.GetInt("threshold")
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens, _ = flags.GetInt("max-tokens")
	}
	if flags.Changed("expected-column") {
		cfg.ExpectedColumn, _ = flags.GetString("expected-column")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	datasetPath, _ := flags.GetString("dataset")
	promptPath, _ := flags.GetString("prompt")
	dryRun, _ := flags.GetBool("dry-run")
	noColor, _ := flags.GetBool("no-color")

	rows, err := dataset.Load(datasetPath, cfg.ExpectedColumn)
	if err != nil {
		return err
	}
	tmpl, err := template.LoadFile(promptPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	useColor := !noColor && report.ColorEnabled(out)
	printer := report.NewPrinter(out, useColor)
	r := runner.New(runner.Config{Model: cfg.Model, MaxTokens: cfg.MaxTokens})

	if dryRun {
		count := r.Preview(out, rows, tmpl)
		fmt.Fprintf(out, "%d row(s) previewed, no API calls made.\n", count)
		return nil
	}

	// Credential is only required once we know we will call the API.
	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		return err
	}
	var p provider.Provider
	switch cfg.Provider {
	case "openai":
		p = provider.NewOpenAIProvider(apiKey)
	default:
		p = provider.NewAnthropicProvider(apiKey)
	}

	fmt.Fprintln(out, "Running evals...")
	fmt.Fprintf(out, "  Dataset: %s\n", datasetPath)
	fmt.Fprintf(out, "  Prompt:  %s\n", promptPath)
	fmt.Fprintf(out, "  Model:   %s\n", cfg.Model)
	fmt.Fprintln(out, strings.Repeat("-", 40))

	rep, err := r.Run(cmd.Context(), rows, tmpl, p, func(_, _ int, rr result.RowResult) {
		printer.Row(rr)
	})
	if err != nil {
		return err
	}

	printer.Summary(rep, cfg.Threshold)
	if !rep.Success(cfg.Threshold) {
		return fmt.Errorf("pass rate %d%% below threshold %d%%", rep.PassRate(), cfg.Threshold)
	}
	return nil
}

// --- validate command ---

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate config, dataset, and template files",
	Long: `Check the config file against its schema, confirm the dataset
parses, and report template placeholders the dataset never supplies.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	out := cmd.OutOrStdout()

	cfgPath, _ := flags.GetString("config")
	if _, err := os.Stat(cfgPath); err == nil {
		if err := config.ValidateSchema(cfgPath); err != nil {
			return err
		}
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		fmt.Fprintf(out, "Config %s is valid.\n", cfgPath)
	} else {
		fmt.Fprintf(out, "No config file at %s; defaults apply.\n", cfgPath)
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}

	var columns map[string]bool
	datasetPath, _ := flags.GetString("dataset")
	if datasetPath != "" {
		rows, err := dataset.Load(datasetPath, cfg.ExpectedColumn)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Dataset %s is valid (%d rows).\n", datasetPath, len(rows))

		columns = make(map[string]bool)
		for _, row := range rows {
			for name := range row.Vars {
				columns[name] = true
			}
		}
	}

	promptPath, _ := flags.GetString("prompt")
	if promptPath != "" {
		tmpl, err := template.LoadFile(promptPath)
		if err != nil {
			return err
		}
		names := template.Placeholders(tmpl)
		fmt.Fprintf(out, "Template %s has %d placeholder(s).\n", promptPath, len(names))

		if columns != nil {
			for _, name := range names {
				if !columns[name] {
					fmt.Fprintf(out, "  warning: placeholder {{%s}} has no dataset column\n", name)
				}
			}
		}
	}

	return nil
}

func init() {
	runCmd.Flags().StringP("dataset", "d", "golden_dataset.csv", "Path to CSV dataset")
	runCmd.Flags().StringP("prompt", "p", "prompt.txt", "Path to prompt template")
	runCmd.Flags().StringP("model", "m", "", "Override model name")
	runCmd.Flags().IntP("threshold", "t", 100, "Minimum pass rate percentage for success (0-100)")
	runCmd.Flags().Int("max-tokens", 1024, "Maximum output tokens per completion")
	runCmd.Flags().StringP("config", "c", "eval.yaml", "Path to config file")
	runCmd.Flags().String("expected-column", "", "Dataset column holding the expected-output spec")
	runCmd.Flags().Bool("dry-run", false, "Preview filled prompts without calling the API")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")

	validateCmd.Flags().String("config", "eval.yaml", "Path to config file to validate")
	validateCmd.Flags().String("dataset", "", "Path to dataset file to validate")
	validateCmd.Flags().String("prompt", "", "Path to template file to validate")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
