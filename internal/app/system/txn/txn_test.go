package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/alumnihub/internal/app/system/txn"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unrelated", errors.New("duplicate key"), false},
		{"illegal operation code", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"not in transaction code", mongo.CommandError{Code: 263, Message: "cannot run in a multi-document transaction"}, true},
		{"other code", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}, false},
		{"standalone wording", errors.New("Transaction numbers are only allowed on a Replica Set member"), true},
		{"single keyword", errors.New("transaction aborted"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := txn.IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_NilClientRunsDirectly(t *testing.T) {
	calls := 0
	err := txn.Run(context.Background(), nil, zap.NewNop(), func(context.Context) error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Fatalf("got err=%v calls=%d", err, calls)
	}
}

// Run must commit on standalone servers (fallback) and replica sets alike.
func TestRun_CommitsWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// SetupTestDB has already created the collection via its indexes, so
	// the insert does not need an implicit create inside the transaction.
	err := txn.Run(ctx, db.Client(), zap.NewNop(), func(ctx context.Context) error {
		_, err := db.Collection("donations").InsertOne(ctx, bson.M{"donor_name": "Txn", "amount": 10.0})
		return err
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	n, err := db.Collection("donations").CountDocuments(ctx, bson.M{"donor_name": "Txn"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected exactly one committed donation, got %d", n)
	}
}

func TestRun_ReturnsWorkError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boom := errors.New("recompute failed")
	err := txn.Run(ctx, db.Client(), zap.NewNop(), func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
}
