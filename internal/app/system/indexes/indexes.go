// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureMembers(ctx, db); err != nil {
		problems = append(problems, memberstore.CollectionName+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolValue(p *bool) bool {
	return p != nil && *p
}

// listIndexes returns the collection's indexes keyed by key signature.
func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// recreate drops an index and creates the desired one in its place.
func recreate(ctx context.Context, coll *mongo.Collection, oldName string, m mongo.IndexModel) error {
	if _, err := coll.Indexes().DropOne(ctx, oldName); err != nil {
		return fmt.Errorf("drop %s: %w", oldName, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return errors.New("cannot create unique index (duplicates present)")
		}
		return fmt.Errorf("create: %w", err)
	}
	return nil
}

// ensureIndexSet makes the collection carry every index in models.
// An index with the same keys but another name or uniqueness is dropped and
// recreated; anything else already in place is reused.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes to reconcile.
		existing = map[string]existingIndex{}
	}

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", boolValue(desiredUnique)),
		}

		ex, ok := existing[desiredSig]
		switch {
		case ok && boolValue(ex.Unique) == boolValue(desiredUnique) && (desiredName == "" || ex.Name == desiredName):
			zap.L().Info("reusing existing index", fields...)
			continue

		case ok:
			zap.L().Info("replacing index to align name/options",
				append(fields, zap.String("from", ex.Name))...)
			if err := recreate(ctx, coll, ex.Name, m); err != nil {
				zap.L().Warn("index replace failed", append(fields, zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

		default:
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}
		}

		zap.L().Info("index ensured", append(fields, zap.String("took", time.Since(start).String()))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

// Member names and numbers are deliberately not unique: two members may
// share either.
func ensureMembers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(memberstore.CollectionName)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Case-insensitive name lookups and sorting
		{
			Keys: bson.D{
				{Key: "name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().
				SetName("idx_members_name_ci"),
		},
		{
			Keys: bson.D{
				{Key: "member_number", Value: 1},
			},
			Options: options.Index().
				SetName("idx_members_member_number"),
		},
	})
}
