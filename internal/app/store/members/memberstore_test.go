package memberstore_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/memberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// storeFactories lists every Store implementation the contract tests run against.
func storeFactories() map[string]func(t *testing.T) memberstore.Store {
	return map[string]func(t *testing.T) memberstore.Store{
		"memory": func(t *testing.T) memberstore.Store {
			return memberstore.NewMemory()
		},
		"mongo": func(t *testing.T) memberstore.Store {
			return memberstore.New(testutil.SetupTestDB(t))
		},
	}
}

func forEachStore(t *testing.T, fn func(t *testing.T, store memberstore.Store)) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func alice() models.Member {
	return models.Member{
		Name:         "Alice",
		DateOfBirth:  testutil.Date(1990, time.January, 1),
		MemberNumber: 42,
		Interests:    []string{"reading"},
	}
}

func TestStore_InsertThenGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		created, err := store.Insert(ctx, alice())
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if created.ID.IsZero() {
			t.Fatal("expected Insert to assign an id")
		}

		got, err := store.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.ID != created.ID {
			t.Errorf("ID: got %s, want %s", got.ID.Hex(), created.ID.Hex())
		}
		if got.Name != "Alice" {
			t.Errorf("Name: got %q, want %q", got.Name, "Alice")
		}
		if !got.DateOfBirth.Equal(testutil.Date(1990, time.January, 1)) {
			t.Errorf("DateOfBirth: got %v", got.DateOfBirth)
		}
		if got.MemberNumber != 42 {
			t.Errorf("MemberNumber: got %d, want 42", got.MemberNumber)
		}
		if !slices.Equal(got.Interests, []string{"reading"}) {
			t.Errorf("Interests: got %v, want [reading]", got.Interests)
		}
	})
}

func TestStore_InsertDefaultsInterests(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		m := alice()
		m.Interests = nil
		created, err := store.Insert(ctx, m)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		got, err := store.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Interests == nil || len(got.Interests) != 0 {
			t.Errorf("expected empty non-nil interests, got %#v", got.Interests)
		}
	})
}

func TestStore_GetByID_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		_, err := store.GetByID(ctx, primitive.NewObjectID())
		if !errors.Is(err, memberstore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStore_List_InsertionOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		empty, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", empty)
		}

		f := testutil.NewFixtures(t, store)
		a := f.CreateMember(ctx, "Ann")
		b := f.CreateMember(ctx, "Bob")
		c := f.CreateMember(ctx, "Cy")

		list, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("expected 3 members, got %d", len(list))
		}
		for i, want := range []primitive.ObjectID{a.ID, b.ID, c.ID} {
			if list[i].ID != want {
				t.Errorf("list[%d]: got %s, want %s", i, list[i].ID.Hex(), want.Hex())
			}
		}
	})
}

func TestStore_UpdateByID_PreservesUnsuppliedFields(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		f := testutil.NewFixtures(t, store)
		m := f.CreateMember(ctx, "Alice", "a", "b")

		name := "Alicia"
		updated, err := store.UpdateByID(ctx, m.ID, models.MemberPatch{Name: &name})
		if err != nil {
			t.Fatalf("UpdateByID failed: %v", err)
		}
		if updated.ID != m.ID {
			t.Errorf("ID changed: got %s, want %s", updated.ID.Hex(), m.ID.Hex())
		}
		if updated.Name != "Alicia" {
			t.Errorf("Name: got %q, want %q", updated.Name, "Alicia")
		}
		if !slices.Equal(updated.Interests, []string{"a", "b"}) {
			t.Errorf("Interests: got %v, want [a b]", updated.Interests)
		}
		if updated.MemberNumber != m.MemberNumber {
			t.Errorf("MemberNumber: got %d, want %d", updated.MemberNumber, m.MemberNumber)
		}

		got, err := store.GetByID(ctx, m.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Name != "Alicia" || !slices.Equal(got.Interests, []string{"a", "b"}) {
			t.Errorf("stored record not updated as expected: %+v", got)
		}
	})
}

func TestStore_UpdateByID_AllFields(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		f := testutil.NewFixtures(t, store)
		m := f.CreateMember(ctx, "Alice", "a")

		name := "Bea"
		dob := testutil.Date(2001, time.May, 17)
		num := int64(7)
		interests := []string{}
		updated, err := store.UpdateByID(ctx, m.ID, models.MemberPatch{
			Name:         &name,
			DateOfBirth:  &dob,
			MemberNumber: &num,
			Interests:    &interests,
		})
		if err != nil {
			t.Fatalf("UpdateByID failed: %v", err)
		}
		if updated.Name != "Bea" || updated.MemberNumber != 7 || !updated.DateOfBirth.Equal(dob) {
			t.Errorf("unexpected updated record: %+v", updated)
		}
		if len(updated.Interests) != 0 {
			t.Errorf("expected interests cleared, got %v", updated.Interests)
		}
	})
}

func TestStore_UpdateByID_EmptyPatchReturnsCurrent(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		f := testutil.NewFixtures(t, store)
		m := f.CreateMember(ctx, "Alice")

		got, err := store.UpdateByID(ctx, m.ID, models.MemberPatch{})
		if err != nil {
			t.Fatalf("UpdateByID failed: %v", err)
		}
		if got.Name != "Alice" {
			t.Errorf("Name: got %q, want %q", got.Name, "Alice")
		}

		_, err = store.UpdateByID(ctx, primitive.NewObjectID(), models.MemberPatch{})
		if !errors.Is(err, memberstore.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown id, got %v", err)
		}
	})
}

func TestStore_UpdateByID_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		name := "Nobody"
		_, err := store.UpdateByID(ctx, primitive.NewObjectID(), models.MemberPatch{Name: &name})
		if !errors.Is(err, memberstore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStore_DeleteByID(t *testing.T) {
	forEachStore(t, func(t *testing.T, store memberstore.Store) {
		ctx, cancel := testutil.TestContext()
		defer cancel()

		f := testutil.NewFixtures(t, store)
		m := f.CreateMember(ctx, "Alice", "chess")

		deleted, err := store.DeleteByID(ctx, m.ID)
		if err != nil {
			t.Fatalf("DeleteByID failed: %v", err)
		}
		if deleted.ID != m.ID || deleted.Name != "Alice" {
			t.Errorf("expected prior value to be returned, got %+v", deleted)
		}

		if _, err := store.GetByID(ctx, m.ID); !errors.Is(err, memberstore.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}

		// Second delete of the same id reports not found.
		if _, err := store.DeleteByID(ctx, m.ID); !errors.Is(err, memberstore.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}

		list, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("expected empty list after delete, got %d", len(list))
		}
	})
}

func TestMongoStore_StoresFoldedName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Insert(ctx, alice())
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	var raw bson.M
	if err := db.Collection(memberstore.CollectionName).FindOne(ctx, bson.M{"_id": m.ID}).Decode(&raw); err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if raw["name_ci"] != "alice" {
		t.Errorf("name_ci: got %v, want %q", raw["name_ci"], "alice")
	}
	if _, ok := raw["created_at"]; !ok {
		t.Error("expected created_at to be stored")
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := memberstore.NewMemory()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Insert(ctx, alice())
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	m.Interests[0] = "mutated"

	got, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Interests[0] != "reading" {
		t.Errorf("store state leaked through returned slice: %v", got.Interests)
	}
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := memberstore.ParseID(oid.Hex())
	if err != nil || got != oid {
		t.Errorf("ParseID(%q) = %v, %v", oid.Hex(), got, err)
	}

	for _, bad := range []string{"", "nope", "123"} {
		if _, err := memberstore.ParseID(bad); !errors.Is(err, memberstore.ErrNotFound) {
			t.Errorf("ParseID(%q): expected ErrNotFound, got %v", bad, err)
		}
	}
}
