package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dlisz/coldrop/internal/config"
	"github.com/dlisz/coldrop/internal/iocontext"
	"github.com/dlisz/coldrop/internal/logging"
	"github.com/dlisz/coldrop/internal/output"
	"github.com/dlisz/coldrop/internal/ui"
)

func newRootCmd(app *App) *cobra.Command {
	// Global flags
	var (
		debugMode   bool
		logJSON     bool
		outputFlag  string
		queryFlag   string
		fieldsFlag  string
		colorFlag   string
		delimFlag   string
		errorFormat string
		quietFlag   bool
	)

	rootCmd := &cobra.Command{
		Use:   "coldrop",
		Short: "Drop columns from delimited text tables",
		Long: `coldrop reads a delimited text table with a header row, removes
columns by position, and writes the result. Columns are always addressed
by index, never by name, so the same invocation works on any table.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Cobra must not emit its own error/usage text; error output is
			// handled centrally so machine formats stay clean.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			logging.Setup(debugMode, logJSON, app.Stderr)

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := validateErrorFormat(errorFormat); err != nil {
				return err
			}

			// Flag > config file > built-in default.
			outputValue := outputFlag
			if !cmd.Flags().Changed("output") && cfg.GetOutput() != "" {
				outputValue = cfg.GetOutput()
			}
			format, err := output.ParseFormat(outputValue)
			if err != nil {
				return err
			}

			colorValue := colorFlag
			if !cmd.Flags().Changed("color") && cfg.GetColor() != "" {
				colorValue = cfg.GetColor()
			}
			colorMode, err := ui.ParseColorMode(colorValue)
			if err != nil {
				return err
			}
			if colorMode == ui.ColorAuto && !writerIsTerminal(app.Stderr) {
				colorMode = ui.ColorNever
			}

			delimValue := delimFlag
			if !cmd.Flags().Changed("delimiter") && cfg.GetDelimiter() != "" {
				delimValue = cfg.GetDelimiter()
			}
			comma, err := parseDelimiter(delimValue)
			if err != nil {
				return err
			}

			if err := output.ValidateFields(fieldsFlag); err != nil {
				return err
			}

			ctx := cmd.Context()
			ctx = iocontext.WithIO(ctx, app.Stdout, app.Stderr)
			ctx = output.WithFormat(ctx, format)
			ctx = output.WithQuery(ctx, queryFlag)
			ctx = output.WithFields(ctx, fieldsFlag)
			ctx = ui.WithUI(ctx, ui.NewWithWriter(app.Stderr, colorMode))
			ctx = WithConfig(ctx, cfg)
			ctx = WithErrorFormat(ctx, errorFormat)
			ctx = WithQuiet(ctx, quietFlag)
			ctx = WithDelimiter(ctx, comma)
			cmd.SetContext(ctx)
			app.runCtx = ctx

			return nil
		},
	}

	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("coldrop %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))

	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "text", "Output format: text|json|ndjson|jsonl|table|yaml")
	rootCmd.PersistentFlags().StringVarP(&queryFlag, "query", "q", "", "JQ expression to filter structured output")
	rootCmd.PersistentFlags().StringVar(&fieldsFlag, "fields", "", "Project fields (comma-separated paths, use key=path to rename)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color mode: auto|always|never")
	rootCmd.PersistentFlags().StringVar(&delimFlag, "delimiter", ",", `Field delimiter (single character, or \t for tab)`)
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "auto", "Error output format: auto|text|json|yaml")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress confirmation output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")

	rootCmd.SetOut(app.Stdout)
	rootCmd.SetErr(app.Stderr)

	rootCmd.AddCommand(newDropCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newPreviewCmd())

	return rootCmd
}

// writerIsTerminal reports whether w is a real terminal. Non-file writers
// (test buffers, pipes wrapped in other types) are never terminals.
func writerIsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
