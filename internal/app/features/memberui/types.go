package memberui

import (
	"strings"

	"github.com/dalemusser/memberhub/internal/domain/models"
)

// displayDateLayout is how dates of birth appear in tables and detail cards.
const displayDateLayout = "02/01/2006"

// memberRow is one member as shown by the list and detail pages.
type memberRow struct {
	ID           string
	Name         string
	DateOfBirth  string // DD/MM/YYYY
	DateISO      string // YYYY-MM-DD, pre-fills the edit form
	MemberNumber int64
	Interests    string // comma-joined
}

type listPageData struct {
	Title             string
	Rows              []memberRow
	LoadError         string
	MemberNumberLimit int
}

type detailPageData struct {
	Title    string
	ID       string
	NotFound bool
	Member   memberRow
}

func toRow(m models.Member) memberRow {
	dob := m.DateOfBirth.UTC()
	return memberRow{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		DateOfBirth:  dob.Format(displayDateLayout),
		DateISO:      dob.Format(models.DateLayout),
		MemberNumber: m.MemberNumber,
		Interests:    strings.Join(m.Interests, ", "),
	}
}

func toRows(list []models.Member) []memberRow {
	rows := make([]memberRow, 0, len(list))
	for _, m := range list {
		rows = append(rows, toRow(m))
	}
	return rows
}
