package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"table-editor/core/changeset"
	"table-editor/core/config"
	"table-editor/core/database"
	"table-editor/core/logger"
	"table-editor/core/utils"
	"table-editor/feature/editor"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the changes command
	applyChanges  bool
	dryRunChanges bool
	yesConfirm    bool
)

// changesCmd reviews and optionally applies a change description from a file.
var changesCmd = &cobra.Command{
	Use:   "changes <file.json>",
	Short: "Review (and optionally apply) a change description",
	Long: `Loads the table the same way the editor does, extracts the additions, edits
and deletions described in a JSON file, and reports them.

The file holds a sparse change description with row indices relative to the
first rows of the table in primary key order:

  {"added_rows": [{"BATCH_NAME": "b1"}],
   "edited_rows": {"0": {"PROJECT": "p2"}},
   "deleted_rows": [3]}

Examples:
  # Review only
  changes edits.json

  # Apply (with interactive confirmation)
  changes edits.json --apply

  # Apply with auto-confirm (non-interactive)
  changes edits.json --apply --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runChanges,
}

func init() {
	changesCmd.Flags().BoolVar(&applyChanges, "apply", false, "Write the changes to the table")
	changesCmd.Flags().BoolVar(&dryRunChanges, "dry-run", false, "Force dry-run (no writes even with --apply)")
	changesCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm writes (non-interactive)")

	RootCmd.AddCommand(changesCmd)
}

// readChanges decodes a change description.
func readChanges(r io.Reader) (changeset.EditorChanges, error) {
	return changeset.DecodeChanges(r)
}

func runChanges(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	changes, err := readChanges(f)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	tbl := newTable(cfg, db)
	l.Info("Fetching data", zap.String("table", tbl.Name()), zap.Int("limit", cfg.Editor.RowLimit))
	snap, err := tbl.Fetch(ctx, cfg.Editor.RowLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}
	l.Info("Fetched rows", zap.Int("rows", snap.Len()))

	opts := changeset.Options{
		TimestampColumns: cfg.Editor.TimestampColumns,
		PKGenerated:      cfg.Editor.PKGenerated,
		DryRun:           dryRunChanges,
	}

	cs, err := changeset.Extract(snap, changes, opts)
	if err != nil {
		return fmt.Errorf("failed to extract changes: %w", err)
	}

	printChangeSetReport(l, cs)

	if cs.IsEmpty() {
		l.Warn("No changes detected.")
		return nil
	}
	if !applyChanges {
		l.Info("No actions requested. Use --apply to write the changes.")
		return nil
	}
	if dryRunChanges {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmChanges() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	l.Info("Applying changes...")
	res := changeset.Apply(ctx, tbl, cs, opts)

	_, archiver, err := newArchiver(cfg.Storage)
	if err != nil {
		l.Warn("Change archive unavailable", zap.Error(err))
	} else if key, err := archiver.Archive(ctx, editor.NewRecord("cli", cs, res)); err != nil {
		l.Warn("Failed to archive change set", zap.Error(err))
	} else if key != "" {
		l.Info("Archived change set", zap.String("key", key))
	}

	l.Info("Changes applied",
		zap.Int64("added", res.Added),
		zap.Int64("edited", res.Edited),
		zap.Int64("deleted", res.Deleted),
	)
	if !res.OK() {
		for _, e := range res.Errors {
			l.Error("Operation failed", zap.String("error", e))
		}
		return fmt.Errorf("%d operation(s) failed", len(res.Errors))
	}
	return nil
}

// printChangeSetReport prints a formatted change set report using logger.
func printChangeSetReport(l *zap.Logger, cs *changeset.ChangeSet) {
	s := cs.Counts()
	l.Info("Change set",
		zap.String("table", cs.Table),
		zap.Int("added", s.Added),
		zap.Int("edited", s.Edited),
		zap.Int("deleted", s.Deleted),
	)

	for _, r := range cs.Deleted {
		l.Info("Row to be deleted", zap.String("pk", utils.ToString(r[cs.PK])))
	}

	// Show sample of edits (max 5 for logger)
	maxShow := 5
	if len(cs.Edited) < maxShow {
		maxShow = len(cs.Edited)
	}
	for i := 0; i < maxShow; i++ {
		e := cs.Edited[i]
		cols := e.ChangedColumns(cs.Columns)
		fields := []zap.Field{zap.String("pk", utils.ToString(e.PK)), zap.Strings("columns", cols)}
		for _, c := range cols {
			fields = append(fields, zap.String(c, utils.ToString(e.Before[c])+" -> "+utils.ToString(e.After[c])))
		}
		l.Info("Row to be edited", fields...)
	}
	if len(cs.Edited) > maxShow {
		l.Info("Additional edits not shown", zap.Int("count", len(cs.Edited)-maxShow))
	}
}

// confirmChanges prompts the user for confirmation or uses --yes flag.
func confirmChanges() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to write these changes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
