package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"table-editor/core/config"
	"table-editor/core/database"
	"table-editor/core/logger"
	"table-editor/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the edited table and the change archive",
	Long:  `Inspects the configured warehouse table and checks that the change archive bucket exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// tableCheckCmd represents the integrity table command
var tableCheckCmd = &cobra.Command{
	Use:   "table",
	Short: "Inspect the edited table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// storageCheckCmd represents the integrity storage command
var storageCheckCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check and fix the change archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	storageCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket when missing")
	integrityCmd.AddCommand(tableCheckCmd, storageCheckCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, checkTable, checkStorage bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	var db *gorm.DB
	if checkTable {
		if db, err = database.Connect(cfg.Database); err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
	}

	client, _, err := newArchiver(cfg.Storage)
	if err != nil {
		return err
	}

	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Storage.Region, db, tableExpectation(cfg), logg)
	report := map[string]any{}

	if checkTable {
		tbl, err := svc.CheckTable()
		if err != nil {
			return fmt.Errorf("table check failed: %w", err)
		}
		logg.Info("Table check completed", zap.String("table", tbl.Table), zap.String("status", tbl.Status))
		report["table"] = tbl
	}

	if checkStorage {
		st, err := svc.CheckStorage(ctx)
		if err != nil {
			return fmt.Errorf("storage check failed: %w", err)
		}
		if !st.Exists && fixFlag {
			if err := svc.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to create bucket: %w", err)
			}
			st.Exists, st.Fixed, st.Status = true, true, "fixed"
		}
		logg.Info("Storage check completed", zap.String("bucket", st.Bucket), zap.String("status", st.Status))
		report["storage"] = st
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
