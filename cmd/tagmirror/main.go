package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tagmirror/internal/config"
	"tagmirror/internal/logging"
	"tagmirror/internal/project"
	"tagmirror/internal/runner"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	projectPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tagmirror",
	Short: "Mirror PLC tag trees into the model, generate alarms, move tags through tables",
	Long: `tagmirror works on an engineering project file.

It mirrors the tag tree of a communication driver into the model folder and
binds every mirrored variable to its tag, derives one digital alarm per bit
of integer variables, and exports or imports driver tags as a semicolon
separated table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// a missing .env is not an error
		_ = godotenv.Load()

		var err error

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if projectPath != "" {
			cfg.Project = projectPath
		}

		if verbose {
			cfg.Logging.Level = "debug"
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, err = logging.New(cfg.Logging)

		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create an empty project and a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the input tag tree into the model folder",
	Long: `Reproduces the configured input node below the model folder: tag structures
become objects, arrays of tag structures are flattened with a name prefix and
tags become variables. Existing nodes are reused. Unresolved dynamic links of
the model folder are reported afterwards.`,
	RunE: runSync,
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report model variables whose dynamic link does not resolve",
	RunE:  runAudit,
}

var alarmsCmd = &cobra.Command{
	Use:   "alarms",
	Short: "Digital alarm commands",
}

var alarmsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one digital alarm per bit of every variable below the starting node",
	RunE:  runAlarmsGenerate,
}

var alarmsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every alarm from the alarms folder",
	RunE:  runAlarmsClear,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Tag table commands",
}

var tagsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the tags below the starting node to the tags file",
	RunE:  runTagsExport,
}

var tagsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Create or update tags below the starting node from the tags file",
	RunE:  runTagsImport,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tagmirror.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&projectPath, "project", "p", "", "Project file (overrides the configuration)")

	alarmsCmd.AddCommand(alarmsGenerateCmd)
	alarmsCmd.AddCommand(alarmsClearCmd)

	tagsCmd.AddCommand(tagsExportCmd)
	tagsCmd.AddCommand(tagsImportCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(alarmsCmd)
	rootCmd.AddCommand(tagsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withProject loads the project, runs fn and saves the project back when save
// is set and fn succeeded. Metrics are written when configured.
func withProject(save bool, fn func(r *runner.Runner) error) error {
	p, err := project.LoadFile(cfg.Project)
	if err != nil {
		return err
	}

	r := runner.New(p, cfg, logger, nil)

	if err := fn(r); err != nil {
		return err
	}

	if save {
		if err := project.WriteFile(p, cfg.Project); err != nil {
			return err
		}

		logger.Debug("Project saved", zap.String("path", cfg.Project))
	}

	if cfg.Metrics.File != "" {
		if err := r.Metrics().WriteFile(cfg.Metrics.File); err != nil {
			return err
		}
	}

	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	name := "Project"
	if len(args) > 0 {
		name = args[0]
	}

	if _, err := os.Stat(cfg.Project); err == nil {
		return fmt.Errorf("project file %s already exists", cfg.Project)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check project file: %w", err)
	}

	if err := project.WriteFile(project.New(name), cfg.Project); err != nil {
		return err
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
	}

	logger.Info("Project created", zap.String("name", name), zap.String("path", cfg.Project))

	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	return withProject(true, func(r *runner.Runner) error {
		res, err := r.GenerateNodesIntoModel()
		if err != nil {
			return err
		}

		cmd.Printf("Created %d containers and %d variables, reused %d nodes, bound %d links (%d failed)\n",
			res.ContainersCreated, res.VariablesCreated, res.NodesReused, res.LinksBound, res.Failed)

		if n := len(res.Diagnostics.Infos); n > 0 {
			cmd.Printf("%d dynamic links do not resolve\n", n)
		}

		return nil
	})
}

func runAudit(cmd *cobra.Command, args []string) error {
	return withProject(false, func(r *runner.Runner) error {
		found, err := r.CheckLinks()
		if err != nil {
			return err
		}

		for _, d := range found {
			cmd.Println(d.String())
		}

		cmd.Printf("%d dynamic links do not resolve\n", len(found))

		return nil
	})
}

func runAlarmsGenerate(cmd *cobra.Command, args []string) error {
	return withProject(true, func(r *runner.Runner) error {
		res, err := r.GenerateAlarms()
		if err != nil {
			return err
		}

		cmd.Printf("Generated %d alarms in %d new folders, skipped %d existing (%d failed)\n",
			res.Generated, res.FoldersCreated, res.Duplicates, res.Failed)

		return nil
	})
}

func runAlarmsClear(cmd *cobra.Command, args []string) error {
	return withProject(true, func(r *runner.Runner) error {
		removed, err := r.ClearAlarms()
		if err != nil {
			return err
		}

		cmd.Printf("Removed %d entries\n", removed)

		return nil
	})
}

func runTagsExport(cmd *cobra.Command, args []string) error {
	return withProject(false, func(r *runner.Runner) error {
		stats, err := r.ExportTags()
		if err != nil {
			return err
		}

		cmd.Printf("Exported %d tags, %d tag structures, %d tag structure arrays to %s (%d tags skipped)\n",
			stats.Tags, stats.Structures, stats.StructureArrays, cfg.Tags.File, stats.Skipped)

		return nil
	})
}

func runTagsImport(cmd *cobra.Command, args []string) error {
	return withProject(true, func(r *runner.Runner) error {
		stats, err := r.ImportTags()
		if err != nil {
			return err
		}

		cmd.Printf("Tags updated: %d, created: %d, tag structures created: %d, failed rows: %d\n",
			stats.TagsUpdated, stats.TagsCreated, stats.StructuresCreated, stats.RowsFailed)

		return nil
	})
}
