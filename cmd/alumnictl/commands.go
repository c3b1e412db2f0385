package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/indexes"
	"github.com/dalemusser/alumnihub/internal/app/system/normalize"
	"github.com/dalemusser/alumnihub/internal/app/system/validators"
	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func recalcCampaignsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recalc-campaigns",
		Short: "Recompute every campaign's collected amount from received donations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
				n, err := recalcCampaigns(ctx, db)
				if err != nil {
					return err
				}
				logger.Info("campaigns recalculated", zap.Int("count", n))
				fmt.Fprintf(cmd.OutOrStdout(), "recalculated %d campaigns\n", n)
				return nil
			})
		},
	}
}

func recalcCampaigns(ctx context.Context, db *mongo.Database) (int, error) {
	return campaignstore.New(db).RecalcAll(ctx)
}

func setRoleCommand() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "set-role <email> <role>",
		Short: "Change an account's role (super_admin, admin, moderator, alumni)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
				if err := setRole(ctx, db, args[0], args[1], status); err != nil {
					return err
				}
				logger.Info("role changed", zap.String("email", args[0]), zap.String("role", args[1]))
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", normalize.Email(args[0]), normalize.Role(args[1]))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "also set status (active, pending, suspended)")
	return cmd
}

var errNoSuchUser = errors.New("no account with that email")

func setRole(ctx context.Context, db *mongo.Database, email, role, status string) error {
	users := userstore.New(db)
	u, err := users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errNoSuchUser
	}
	if err != nil {
		return err
	}
	_, err = users.SetRoleStatus(ctx, u.ID, normalize.Role(role), normalize.Status(status))
	return err
}

func ensureSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create missing indexes and collection validators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd, func(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
				zap.ReplaceGlobals(logger)
				if err := indexes.EnsureAll(ctx, db); err != nil {
					return fmt.Errorf("indexes: %w", err)
				}
				if err := validators.EnsureAll(ctx, db); err != nil {
					return fmt.Errorf("validators: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

func genKeyCommand() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "gen-key",
		Short: "Print a random session_key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeKey(cmd.OutOrStdout(), length)
		},
	}
	cmd.Flags().IntVar(&length, "bytes", 48, "random bytes before encoding")
	return cmd
}

func writeKey(w io.Writer, n int) error {
	if n < 24 {
		return fmt.Errorf("--bytes must be at least 24, got %d", n)
	}
	key := securecookie.GenerateRandomKey(n)
	if key == nil {
		return errors.New("random source unavailable")
	}
	_, err := fmt.Fprintln(w, base64.RawURLEncoding.EncodeToString(key))
	return err
}
