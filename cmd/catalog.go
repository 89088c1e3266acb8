package cmd

import (
	"fmt"

	"github.com/meysamhadeli/doctrans/constants/lipgloss"
	"github.com/spf13/cobra"
)

// catalogCmd: doctrans catalog
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the tutorial files allowed for translation",
	Long: `The 'catalog' subcommand loads the tutorial catalog and prints the prerequisite
and task files of every tutorial that belongs to an allowed product. A changed
tutorial file is only translated when it appears in this list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		files, err := rootDependencies.Coordinator.AllowedTutorialFiles(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), lipgloss.Info.Render(fmt.Sprintf("%d allowed tutorial files", len(files))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
