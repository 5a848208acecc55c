// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/dalemusser/memberhub/internal/app/system/indexes"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/memberhub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema attaches the members validator and reconciles its indexes.
// Nothing to do for the in-memory store.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger, "ensure schema")
	defer cancel()

	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("validators: %w", err)
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("indexes: %w", err)
	}
	n, err := memberstore.New(deps.MongoDatabase).Count(ctx)
	if err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	logger.Info("schema ensured",
		zap.String("database", deps.MongoDatabase.Name()),
		zap.Int64("members", n))
	return nil
}
