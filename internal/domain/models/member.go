// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is the single record type managed by MemberHub.
//
// The JSON shape keeps the "_id" key and camelCase field names used by the
// browser client. NameCI and the timestamps are storage-only.
//
// MemberNumber is drawn by the client when the record is created and is never
// regenerated. It is not unique: nothing in the store enforces uniqueness.
type Member struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"`
	DateOfBirth  time.Time          `bson:"date_of_birth" json:"dateOfBirth"`
	MemberNumber int64              `bson:"member_number" json:"memberNumber"`
	Interests    []string           `bson:"interests" json:"interests"`

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// MemberNumberLimit is the exclusive upper bound of the member number draw.
const MemberNumberLimit = 1_000_000

// DateLayout is the calendar-date form used by forms and CSV exports.
const DateLayout = "2006-01-02"

// MemberPatch lists the fields to change on an existing member.
// A nil field is left untouched.
type MemberPatch struct {
	Name         *string
	DateOfBirth  *time.Time
	MemberNumber *int64
	Interests    *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p MemberPatch) IsEmpty() bool {
	return p.Name == nil && p.DateOfBirth == nil && p.MemberNumber == nil && p.Interests == nil
}

// Normalize fills defaults that the JSON contract guarantees: interests is
// never nil and dates are kept in UTC.
func (m *Member) Normalize() {
	if m.Interests == nil {
		m.Interests = []string{}
	}
	m.DateOfBirth = m.DateOfBirth.UTC()
}
