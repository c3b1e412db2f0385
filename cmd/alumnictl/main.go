// Command alumnictl runs maintenance tasks against the portal database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const programName = "alumnictl"

var globalFlags = struct {
	debug bool
}{}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if globalFlags.debug {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("component", programName))
}

// withDB loads config, connects, and runs fn under the configured timeout.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *mongo.Database, logger *zap.Logger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	client, db, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	return fn(ctx, db, logger)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Alumni portal maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.AddCommand(recalcCampaignsCommand())
	rootCmd.AddCommand(setRoleCommand())
	rootCmd.AddCommand(ensureSchemaCommand())
	rootCmd.AddCommand(genKeyCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}
