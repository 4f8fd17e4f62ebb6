package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketadmin/internal/config"
	"marketadmin/internal/logger"
	"marketadmin/internal/repositories"
	"marketadmin/internal/seeder"
	"marketadmin/internal/storage"
	"marketadmin/internal/taxonomy"
)

var (
	storeURL   string
	dryRun     bool
	jsonOutput bool

	// openStore connects to the category store named by a URL
	openStore = repositories.OpenCategoryStore
)

// rootCmd represents the seed command
var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the marketplace category hierarchy with the built-in taxonomy",
	Long: `Seed deletes every stored category hierarchy row and inserts one row per
leaf of the built-in Main → Sub → Sub-sub taxonomy.

The store is chosen by URL scheme:
  mongodb://, mongodb+srv://     MongoDB collection categoryhierarchies
  postgres://, postgresql://     PostgreSQL table category_hierarchies

Examples:
  seed                                   # use CATEGORY_STORE_URL (or MONGO_URI)
  seed --url postgres://localhost/shop   # seed a postgres database
  seed --dry-run                         # show what would be written`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context(), cmd.OutOrStdout())
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&storeURL, "url", "", "Category store URL (overrides CATEGORY_STORE_URL)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without touching the store")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the summary in JSON format")
}

func runSeed(ctx context.Context, out io.Writer) error {
	if storeURL != "" {
		if err := os.Setenv("CATEGORY_STORE_URL", storeURL); err != nil {
			return err
		}
	}

	cfg, err := config.LoadSeed()
	if err != nil {
		return err
	}

	zl, err := logger.New(logger.ConfigFor(cfg.Environment))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	backend, err := repositories.BackendFor(cfg.StoreURL)
	if err != nil {
		return err
	}

	if dryRun {
		return printSummary(out, seeder.Plan(taxonomy.Tree, backend))
	}

	store, _, err := openStore(ctx, cfg.StoreURL, zl)
	if err != nil {
		zl.Error("failed to open category store", zap.String("backend", backend), zap.Error(err))
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			zl.Warn("failed to close category store", zap.Error(err))
		}
	}()

	summary, err := seeder.New(store, backend, taxonomy.Tree, zl).Run(ctx)
	if err != nil {
		zl.Error("seeding failed", zap.Error(err))
		return err
	}

	if cfg.Minio.Enabled() {
		archiveSummary(ctx, cfg.Minio, summary, zl)
	}

	return printSummary(out, summary)
}

// archiveSummary uploads the summary; a failed upload does not fail the run
func archiveSummary(ctx context.Context, mc config.MinioConfig, summary *seeder.Summary, zl *zap.Logger) {
	reports, err := storage.NewReportStore(mc.Endpoint, mc.AccessKey, mc.SecretKey, mc.UseSSL, mc.ReportBucket)
	if err != nil {
		zl.Warn("failed to create report store", zap.Error(err))
		return
	}
	name, err := reports.Upload(ctx, summary)
	if err != nil {
		zl.Warn("failed to archive seed summary", zap.Error(err))
		return
	}
	zl.Info("seed summary archived", zap.String("bucket", mc.ReportBucket), zap.String("object", name))
}

func printSummary(out io.Writer, summary *seeder.Summary) error {
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return summary.Render(out)
}
