package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meysamhadeli/doctrans/config"
	"github.com/meysamhadeli/doctrans/constants/lipgloss"
	"github.com/meysamhadeli/doctrans/translator"
	"github.com/meysamhadeli/doctrans/translator/contracts"
	"github.com/meysamhadeli/doctrans/tutorials"
	"github.com/meysamhadeli/doctrans/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// RootDependencies holds everything subcommands share
type RootDependencies struct {
	Config      *config.Config
	Logger      *pterm.Logger
	Git         *utils.GitOperations
	Coordinator contracts.IFilesListCoordinator
}

var rootCmd = &cobra.Command{
	Use:   "doctrans",
	Short: "Find recently changed documentation that should be translated",
	Long: `doctrans inspects the git history of the developer portal content and lists
the documentation, use case and tutorial files changed in the last days that
belong to products enabled for translation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "doctrans %s\n", config.DefaultConfig.Version)
			return nil
		}
		return cmd.Help()
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

// handleRootCommand loads configuration and wires the coordinator
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	logger, err := utils.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	basePath := cfg.DocsBasePath
	if !filepath.IsAbs(basePath) {
		basePath = filepath.Join(cwd, basePath)
	}
	fs := afero.NewBasePathFs(afero.NewOsFs(), basePath)

	git := utils.NewGitOperations(basePath, cfg.GitTimeout)
	catalog := tutorials.NewCatalog(fs, cfg.TutorialsPath)
	coordinator, err := translator.NewFilesListCoordinator(translator.CoordinatorDependencies{
		Fs:        fs,
		ChangeLog: translator.NewGitChangeLog(git, cfg.Remote, cfg.Branch, cfg.Fetch),
		Catalog:   catalog,
		Products:  cfg.AllowedProducts,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded", logger.Args(
		"docs_base_path", git.WorkingDir(),
		"branch", cfg.Branch,
		"fetch", cfg.Fetch,
		"tutorials_path", catalog.Dir(),
		"products", coordinator.Products().String(),
	))

	return &RootDependencies{
		Config:      cfg,
		Logger:      logger,
		Git:         git,
		Coordinator: coordinator,
	}, nil
}
