package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/memberhub/internal/app/system/validators"
	"github.com/dalemusser/memberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// EnsureAll should succeed on a clean database
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesMembersCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{"name": "members"})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	if len(names) != 1 {
		t.Errorf("expected members collection, got %v", names)
	}
}

func TestMembersValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	cases := map[string]bson.M{
		"missing name":          {"date_of_birth": time.Now(), "member_number": int64(1)},
		"blank name":            {"name": "   ", "date_of_birth": time.Now(), "member_number": int64(1)},
		"missing date":          {"name": "A", "member_number": int64(1)},
		"missing member number": {"name": "A", "date_of_birth": time.Now()},
		"string member number":  {"name": "A", "date_of_birth": time.Now(), "member_number": "42"},
		"non-string interests":  {"name": "A", "date_of_birth": time.Now(), "member_number": int64(1), "interests": bson.A{1, 2}},
	}
	for name, doc := range cases {
		if _, err := db.Collection("members").InsertOne(ctx, doc); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestMembersValidator_ValidMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	now := time.Now().UTC()
	_, err := db.Collection("members").InsertOne(ctx, bson.M{
		"name":          "Alice",
		"name_ci":       "alice",
		"date_of_birth": testutil.Date(1990, time.January, 1),
		"member_number": int64(42),
		"interests":     bson.A{"reading"},
		"created_at":    now,
		"updated_at":    now,
	})
	if err != nil {
		t.Errorf("valid member insert failed: %v", err)
	}

	// Member numbers and names are not unique.
	_, err = db.Collection("members").InsertOne(ctx, bson.M{
		"name":          "Alice",
		"date_of_birth": testutil.Date(1991, time.February, 2),
		"member_number": int32(42),
	})
	if err != nil {
		t.Errorf("second member with same number failed: %v", err)
	}
}
