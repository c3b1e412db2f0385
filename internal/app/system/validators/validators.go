// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the application's collections when missing and attaches
// JSON-Schema validators. Deployments without collMod support are logged
// and skipped.
//
// Validation runs at the "moderate" level, so documents that predate a
// schema change can still be updated.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if unsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("events", eventsSchema())
	ensure("event_registrations", registrationsSchema())
	ensure("donations", donationsSchema())
	ensure("donation_campaigns", campaignsSchema())
	ensure("memories", memoriesSchema())
	ensure("memory_likes", likesSchema())
	ensure("memory_comments", commentsSchema())

	// content collections carry no validator
	ensure("gallery_items", nil)
	ensure("slides", nil)
	ensure("posts", nil)
	ensure("audit_events", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureCollection makes sure name exists. A concurrent create is fine.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if commandErr(err, []int32{48}, "already exists", "namespace exists") {
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Debug("validator ensured", zap.String("collection", name))
	return nil
}

// unsupported reports whether err says the server lacks collMod or
// validators (no such command, not implemented).
func unsupported(err error) bool {
	return commandErr(err, []int32{59, 115}, "no such command", "not implemented", "not supported")
}

// commandErr matches err against server error codes or message fragments.
func commandErr(err error, codes []int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		for _, c := range codes {
			if ce.Code == c {
				return true
			}
		}
	}
	msg := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

/* ------------------------- JSON-Schema docs ---------------------- */

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func enum(values []string) bson.M {
	a := make(bson.A, len(values))
	for i, v := range values {
		a[i] = v
	}
	return bson.M{"enum": a}
}

var nonNegative = bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0}

func object(required bson.A, props bson.M) bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   required,
		"properties": props,
	}}
}

func usersSchema() bson.M {
	return object(bson.A{"full_name", "email", "role", "status"}, bson.M{
		"full_name": nonBlank,
		"email":     nonBlank,
		"role":      enum(models.Roles),
		"status":    enum(models.Statuses),
	})
}

func eventsSchema() bson.M {
	return object(bson.A{"title", "date", "status"}, bson.M{
		"title":                nonBlank,
		"date":                 nonBlank,
		"status":               enum(models.EventStatuses),
		"registered_attendees": nonNegative,
		"expected_attendees":   nonNegative,
	})
}

func registrationsSchema() bson.M {
	return object(bson.A{"event_id", "full_name", "email"}, bson.M{
		"event_id":  bson.M{"bsonType": "objectId"},
		"full_name": nonBlank,
		"email":     nonBlank,
	})
}

func donationsSchema() bson.M {
	return object(bson.A{"donor_name", "campaign", "amount", "method", "status"}, bson.M{
		"donor_name": nonBlank,
		"campaign":   nonBlank,
		"amount":     nonNegative,
		"method":     enum(models.DonationMethods),
		"status":     enum(models.DonationStatuses),
	})
}

func campaignsSchema() bson.M {
	return object(bson.A{"title", "target_amount"}, bson.M{
		"title":            nonBlank,
		"target_amount":    nonNegative,
		"collected_amount": nonNegative,
	})
}

func memoriesSchema() bson.M {
	return object(bson.A{"title", "author_id"}, bson.M{
		"title":     nonBlank,
		"author_id": bson.M{"bsonType": "objectId"},
		"images":    bson.M{"bsonType": bson.A{"array", "null"}, "maxItems": models.MaxMemoryImages},
		"likes":     nonNegative,
		"comments":  nonNegative,
	})
}

func likesSchema() bson.M {
	return object(bson.A{"memory_id", "liker_key"}, bson.M{
		"memory_id": bson.M{"bsonType": "objectId"},
		"liker_key": bson.M{"bsonType": "string", "pattern": "^(user|guest)-.+"},
	})
}

func commentsSchema() bson.M {
	return object(bson.A{"memory_id", "text", "author_name"}, bson.M{
		"memory_id":   bson.M{"bsonType": "objectId"},
		"text":        nonBlank,
		"author_name": nonBlank,
	})
}
