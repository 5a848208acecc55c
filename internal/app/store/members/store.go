// internal/app/store/members/store.go
package memberstore

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/memberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no member matches the requested id.
var ErrNotFound = errors.New("member not found")

// Store is the persistence contract for member records.
//
// Every method may fail with a backend error; callers must surface those as
// service errors. ErrNotFound is the only sentinel.
type Store interface {
	// Insert assigns a new id, persists the member and returns the stored record.
	Insert(ctx context.Context, m models.Member) (models.Member, error)
	// GetByID returns the member with the given id.
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error)
	// List returns every member in insertion order.
	List(ctx context.Context) ([]models.Member, error)
	// UpdateByID merges the supplied patch fields into the stored member and
	// returns the updated record. Fields absent from the patch are untouched.
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch models.MemberPatch) (models.Member, error)
	// DeleteByID removes the member and returns the value it had just before.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (models.Member, error)
}

var (
	_ Store = (*MongoStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// ParseID converts a hex string into a member id. Malformed ids report
// ErrNotFound since no record can ever carry them.
func ParseID(s string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}
