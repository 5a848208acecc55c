// internal/app/features/members/types.go
package members

import "errors"

// Error messages kept identical to what existing clients match on.
const (
	msgNotFound     = "Member not found"
	msgIDRequired   = "Member ID is required"
	msgBodyTooLarge = "request body too large"
)

// ErrIDRequired reports an update body without a member id.
var ErrIDRequired = errors.New(msgIDRequired)

// errBodyTooLarge is returned by decodeJSONBody when the body crossed
// Handler.MaxBodyBytes; it maps to 413.
var errBodyTooLarge = errors.New(msgBodyTooLarge)

// createInput is the body of POST /members. A stray "_id" (the browser
// client sends null) is ignored.
type createInput struct {
	Name         string   `json:"name" validate:"required"`
	DateOfBirth  string   `json:"dateOfBirth" validate:"required"`
	MemberNumber *int64   `json:"memberNumber" validate:"required"`
	Interests    []string `json:"interests"`
}

// updateInput is the body of PUT and PATCH /members. Only non-nil fields
// are applied. The id may arrive as "_id" or "id".
type updateInput struct {
	UnderscoreID *string   `json:"_id"`
	ID           *string   `json:"id"`
	Name         *string   `json:"name"`
	DateOfBirth  *string   `json:"dateOfBirth"`
	MemberNumber *int64    `json:"memberNumber"`
	Interests    *[]string `json:"interests"`
}

// memberID returns the id supplied in the body, preferring "_id".
func (in updateInput) memberID() string {
	if in.UnderscoreID != nil && *in.UnderscoreID != "" {
		return *in.UnderscoreID
	}
	if in.ID != nil {
		return *in.ID
	}
	return ""
}
