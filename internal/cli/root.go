package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lherron/things2todoist/internal/bridge"
	"github.com/lherron/things2todoist/internal/config"
	"github.com/lherron/things2todoist/internal/convert"
	"github.com/lherron/things2todoist/internal/csvout"
	"github.com/lherron/things2todoist/internal/render"
	"github.com/lherron/things2todoist/internal/snapshot"
	"github.com/lherron/things2todoist/internal/things"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "things2todoist <output.csv>",
	Short: "Export Things 3 data to a Todoist CSV import file",
	Long: `things2todoist reads areas, projects, and to-dos from a running
Things 3 instance over the AppleScript bridge and writes a CSV file in the
Todoist import format. Tags, due dates, recurrence schedules, and checklist
items are carried across; the conversion is one-shot and read-only.

Examples:
  things2todoist todoist_import.csv
  things2todoist todoist_import.csv --skip-completed
  things2todoist todoist_import.csv --todos-only --dry-run
  things2todoist todoist_import.csv --snapshot things.json
  things2todoist todoist_import.csv --from-snapshot things.json --areas-only
`,
	Args:          cobra.ExactArgs(1),
	RunE:          runExport,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var (
	exportSkipCompleted bool
	exportAreasOnly     bool
	exportProjectsOnly  bool
	exportTodosOnly     bool
	exportDryRun        bool
	exportFormat        string
	exportSnapshotPath  string
	exportFromSnapshot  string
	exportDiff          bool
	exportQuiet         bool
)

func init() {
	rootCmd.Flags().BoolVar(&exportSkipCompleted, "skip-completed", false, "Skip completed projects and to-dos")
	rootCmd.Flags().BoolVar(&exportAreasOnly, "areas-only", false, "Only include areas")
	rootCmd.Flags().BoolVar(&exportProjectsOnly, "projects-only", false, "Only include projects")
	rootCmd.Flags().BoolVar(&exportTodosOnly, "todos-only", false, "Only include to-dos")
	rootCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Print the mapped rows instead of writing the file")
	rootCmd.Flags().StringVar(&exportFormat, "format", "", "Dry-run format: table, json, yaml")
	rootCmd.Flags().StringVar(&exportSnapshotPath, "snapshot", "", "Also write the extracted records to a JSON snapshot")
	rootCmd.Flags().StringVar(&exportFromSnapshot, "from-snapshot", "", "Map from a snapshot file instead of the live app")
	rootCmd.Flags().BoolVar(&exportDiff, "diff", false, "Show a unified diff against an existing output file")
	rootCmd.Flags().BoolVarP(&exportQuiet, "quiet", "q", false, "Suppress progress output")
}

// newRunner builds the bridge runner from config; tests swap it for a stub
var newRunner = func(cfg *config.Config) bridge.Runner {
	return &bridge.OsascriptRunner{
		Path:    cfg.Osascript,
		Timeout: time.Duration(cfg.ScriptTimeoutSec) * time.Second,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	outputPath := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	quiet := cfg.Quiet || exportQuiet

	format := render.Format(cfg.Output)
	if exportFormat != "" {
		format, err = render.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
	}

	db, err := fetchRecords(cmd, cfg, quiet)
	if err != nil {
		return err
	}

	if exportSnapshotPath != "" {
		snap, err := snapshot.Write(exportSnapshotPath, db)
		if err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote snapshot %s (export %s)\n",
				exportSnapshotPath, snap.Meta.ExportID)
		}
	}

	rows := convert.Build(db, convert.Flags{
		SkipCompleted: exportSkipCompleted,
		AreasOnly:     exportAreasOnly,
		ProjectsOnly:  exportProjectsOnly,
		TodosOnly:     exportTodosOnly,
		DateLang:      cfg.DateLang,
		Timezone:      cfg.Timezone,
	})

	if exportDryRun {
		return render.Preview(cmd.OutOrStdout(), rows, format)
	}

	if exportDiff {
		if err := diffExisting(cmd.OutOrStdout(), outputPath, rows); err != nil {
			return err
		}
	}

	if err := csvout.Write(outputPath, rows); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(rows), outputPath)
		printImportInstructions(cmd.ErrOrStderr(), outputPath)
	}
	return nil
}

// fetchRecords returns the full record set, either from a snapshot file or
// from the live application. The connectivity probe happens first so a
// stopped app fails fast with an actionable message.
func fetchRecords(cmd *cobra.Command, cfg *config.Config, quiet bool) (*things.Database, error) {
	if exportFromSnapshot != "" {
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Reading snapshot %s...\n", exportFromSnapshot)
		}
		return snapshot.Read(exportFromSnapshot)
	}

	client := bridge.NewClient(newRunner(cfg))
	ctx := cmd.Context()

	if !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Connecting to Things via AppleScript...")
	}
	if err := client.Ping(ctx); err != nil {
		if errors.Is(err, bridge.ErrAppNotRunning) {
			return nil, fmt.Errorf("%w; open Things 3 and try again", err)
		}
		return nil, err
	}

	db := &things.Database{}

	if !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Extracting areas...")
	}
	areas, err := client.Areas(ctx)
	if err != nil {
		return nil, err
	}
	db.Areas = areas

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d areas\nExtracting projects...\n", len(areas))
	}
	projects, err := client.Projects(ctx)
	if err != nil {
		return nil, err
	}
	db.Projects = projects

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d projects\nExtracting to-dos...\n", len(projects))
	}
	todos, err := client.ToDos(ctx)
	if err != nil {
		return nil, err
	}
	db.ToDos = todos

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d to-dos\n", len(todos))
	}
	return db, nil
}

func printImportInstructions(w io.Writer, outputPath string) {
	fmt.Fprintf(w, `
Import instructions for Todoist:
1. Go to Todoist Settings > Import/Export
2. Choose 'Import from CSV file'
3. Select the generated file: %s
`, outputPath)
}
