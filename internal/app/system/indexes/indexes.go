// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// spec describes the desired indexes of one collection.
type spec struct {
	coll    string
	indexes []mongo.IndexModel
}

func idx(name string, unique bool, keys ...bson.E) mongo.IndexModel {
	o := options.Index().SetName(name)
	if unique {
		o.SetUnique(true)
	}
	return mongo.IndexModel{Keys: bson.D(keys), Options: o}
}

func asc(k string) bson.E  { return bson.E{Key: k, Value: 1} }
func desc(k string) bson.E { return bson.E{Key: k, Value: -1} }

// All lists every index the application relies on. The unique ones back
// invariants the handlers also check in code.
var All = []spec{
	{"users", []mongo.IndexModel{
		idx("uniq_users_email", true, asc("email")),
		idx("idx_users_status_role", false, asc("status"), asc("role")),
		idx("idx_users_batch_name", false, asc("batch"), asc("full_name_ci")),
		idx("idx_users_featured", false, asc("is_featured"), asc("status")),
		idx("idx_users_reset_token", false, asc("password_reset_token")),
	}},
	{"events", []mongo.IndexModel{
		idx("idx_events_status_date", false, asc("status"), asc("date")),
	}},
	{"event_registrations", []mongo.IndexModel{
		idx("uniq_eventreg_event_email", true, asc("event_id"), asc("email")),
		idx("idx_eventreg_user", false, asc("user_id"), desc("created_at")),
	}},
	{"donations", []mongo.IndexModel{
		idx("idx_donations_campaign_status", false, asc("campaign"), asc("status")),
		idx("idx_donations_status_date", false, asc("status"), desc("donation_date")),
		idx("idx_donations_user", false, asc("user_id"), desc("created_at")),
	}},
	{"donation_campaigns", []mongo.IndexModel{
		idx("uniq_campaigns_title", true, asc("title")),
		idx("idx_campaigns_active", false, asc("is_active"), desc("created_at")),
	}},
	{"memories", []mongo.IndexModel{
		idx("idx_memories_created", false, desc("created_at")),
		idx("idx_memories_author", false, asc("author_id")),
	}},
	{"memory_likes", []mongo.IndexModel{
		idx("uniq_memorylikes_memory_liker", true, asc("memory_id"), asc("liker_key")),
	}},
	{"memory_comments", []mongo.IndexModel{
		idx("idx_memorycomments_memory_created", false, asc("memory_id"), asc("created_at")),
	}},
	{"gallery_items", []mongo.IndexModel{
		idx("idx_gallery_active_order", false, asc("is_active"), asc("order")),
	}},
	{"slides", []mongo.IndexModel{
		idx("idx_slides_active_order", false, asc("is_active"), asc("order")),
	}},
	{"posts", []mongo.IndexModel{
		idx("idx_posts_published", false, asc("is_published"), desc("published_at")),
	}},
	{"audit_events", []mongo.IndexModel{
		idx("idx_audit_timestamp", false, desc("timestamp")),
		idx("idx_audit_user", false, asc("user_id"), desc("timestamp")),
		idx("idx_audit_category_type", false, asc("category"), asc("event_type"), desc("timestamp")),
	}},
}

/*
EnsureAll is called at startup and by the maintenance CLI. It is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, s := range All {
		if err := ensureIndexSet(ctx, db.Collection(s.coll), s.indexes); err != nil {
			problems = append(problems, s.coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique bool   `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var ix existingIndex
		if err := cur.Decode(&ix); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(ix.Key)] = ix
	}
	return out, cur.Err()
}

// ensureIndexSet reconciles coll's indexes with want. An index with the same
// keys but a different name or uniqueness is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, want []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// a collection that does not exist yet has no indexes
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range want {
		name := *m.Options.Name
		unique := m.Options.Unique != nil && *m.Options.Unique
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if ex.Name == name && ex.Unique == unique {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()), zap.String("name", name))
				continue
			}
			zap.L().Info("replacing index",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name),
				zap.Bool("unique", unique))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if unique && wafflemongo.IsDup(err) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index on {%s}, duplicates present", name, sig))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.Error(err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
