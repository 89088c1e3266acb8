package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/meysamhadeli/doctrans/constants/lipgloss"
	"github.com/meysamhadeli/doctrans/translator"
	"github.com/meysamhadeli/doctrans/translator/models"
	"github.com/meysamhadeli/doctrans/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	outputText  = "text"
	outputJSON  = "json"
	outputTable = "table"
)

// filesCmd: doctrans files --days N
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List changed files that are eligible for translation",
	Long: `The 'files' subcommand reads the change log of the configured branch for the
last --days days and prints the documentation, use case and tutorial files
that are eligible for translation. A changed file outside those roots aborts
the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		output, _ := cmd.Flags().GetString("output")
		verbose, _ := cmd.Flags().GetBool("verbose")

		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleFilesCommand(cmd, rootDependencies, days, output, verbose)
	},
}

func init() {
	filesCmd.Flags().IntP("days", "d", 1, "Lookback window in days")
	filesCmd.Flags().StringP("output", "o", outputText, "Output format: text, json or table")
	filesCmd.Flags().Bool("verbose", false, "Include the decision taken for every changed file")

	rootCmd.AddCommand(filesCmd)
}

func handleFilesCommand(cmd *cobra.Command, deps *RootDependencies, days int, output string, verbose bool) error {
	switch output {
	case outputText, outputJSON, outputTable:
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	ctx := cmd.Context()
	if err := deps.Git.CheckGitRepo(ctx); err != nil {
		return err
	}

	var spinnerInstance *pterm.SpinnerPrinter
	if utils.IsTerminal(os.Stdout) && output != outputJSON {
		spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
			WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
			WithDelay(100).WithRemoveWhenDone(true)
		spinnerInstance, _ = spinner.Start("Reading change log...")
	}

	report, err := deps.Coordinator.Report(ctx, days)

	if spinnerInstance != nil {
		_ = spinnerInstance.Stop()
		fmt.Print("\r")
	}
	if err != nil {
		var unknown *translator.UnrecognizedFileKindError
		if errors.As(err, &unknown) {
			return fmt.Errorf("%w (only _documentation, _use_cases and _tutorials content is supported)", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeReport(out, report, output, verbose, deps.Config.Theme); err != nil {
		return err
	}
	if output != outputJSON {
		fmt.Fprintln(cmd.ErrOrStderr(), summaryLine(report))
	}
	return nil
}

// writeReport renders report in the requested format
func writeReport(w io.Writer, report *models.Report, output string, verbose bool, theme string) error {
	switch output {
	case outputJSON:
		view := *report
		if !verbose {
			view.Decisions = nil
		}
		return utils.RenderJSON(w, struct {
			models.Report
			Fingerprint string `json:"fingerprint"`
		}{view, report.Fingerprint()}, theme, utils.IsTerminal(w))
	case outputTable:
		data := pterm.TableData{{"Path", "Kind", "Eligible", "Reason"}}
		for _, d := range report.Decisions {
			if !verbose && !d.Eligible {
				continue
			}
			data = append(data, []string{d.Path, d.KindName, strconv.FormatBool(d.Eligible), d.Reason})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		_, err = fmt.Fprintln(w, table)
		return err
	default:
		if verbose {
			for _, d := range report.Decisions {
				if d.Eligible {
					continue
				}
				fmt.Fprintln(w, lipgloss.Muted.Render(fmt.Sprintf("# skipped %s (%s)", d.Path, d.Reason)))
			}
		}
		for _, path := range report.Eligible {
			if _, err := fmt.Fprintln(w, path); err != nil {
				return err
			}
		}
		return nil
	}
}

func summaryLine(report *models.Report) string {
	counts := report.CountByKind()
	line := fmt.Sprintf("%d of %d changed files eligible since %s (documentation %d, use cases %d, tutorials %d, fingerprint %s)",
		len(report.Eligible), len(report.Decisions), humanize.Time(report.Since),
		counts[models.KindDocumentation], counts[models.KindUseCase], counts[models.KindTutorial],
		report.Fingerprint())
	if len(report.Eligible) == 0 {
		return lipgloss.Yellow.Render(line)
	}
	return lipgloss.Green.Render(line)
}
