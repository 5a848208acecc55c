package memberclient

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/dalemusser/memberhub/internal/domain/models"
)

// API is the part of Client a Session drives.
type API interface {
	List(ctx context.Context) ([]models.Member, error)
	Create(ctx context.Context, m NewMember) (models.Member, error)
	Update(ctx context.Context, u Update) (models.Member, error)
	Delete(ctx context.Context, id string) (models.Member, error)
}

var _ API = (*Client)(nil)

// Mode is the state of the add/edit form.
type Mode int

const (
	ModeClosed Mode = iota
	ModeAdd
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Form field names accepted by SetField.
const (
	FieldName        = "name"
	FieldDateOfBirth = "dateOfBirth"
	FieldInterests   = "interests"
)

var (
	// ErrFormClosed is returned by Submit and SetField with no open form.
	ErrFormClosed = errors.New("no add or edit form is open")
	// ErrUnknownField is returned by SetField for names it does not know.
	ErrUnknownField = errors.New("unknown form field")
)

// Form holds the text a user has typed into the add/edit form. Interests
// is one comma-separated string.
type Form struct {
	Name        string
	DateOfBirth string
	Interests   string
}

// Session is the member list view: the loaded records plus the add/edit
// form. Failed calls leave records untouched and are kept in LastError.
// A Session is safe for concurrent use.
type Session struct {
	api  API
	draw func(n int64) int64

	mu           sync.Mutex
	records      []models.Member
	loaded       bool
	mode         Mode
	editing      models.Member
	form         Form
	memberNumber int64
	lastErr      error
}

// NewSession builds a Session over api. draw returns a value in [0, n) and
// picks new member numbers; nil uses math/rand.
func NewSession(api API, draw func(n int64) int64) *Session {
	if draw == nil {
		draw = rand.Int64N
	}
	return &Session{api: api, draw: draw}
}

// Load fetches all records, replacing what the session holds.
func (s *Session) Load(ctx context.Context) error {
	list, err := s.api.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = fmt.Errorf("load members: %w", err)
		return s.lastErr
	}
	s.records = list
	s.loaded = true
	s.lastErr = nil
	return nil
}

// OpenAdd opens an empty form and draws the member number for the new record.
func (s *Session) OpenAdd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeAdd
	s.editing = models.Member{}
	s.form = Form{}
	s.memberNumber = s.draw(models.MemberNumberLimit)
}

// OpenEdit opens the form pre-filled from the loaded record with id.
func (s *Session) OpenEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m := s.records[i]
	s.mode = ModeEdit
	s.editing = m
	s.memberNumber = m.MemberNumber
	s.form = Form{
		Name:        m.Name,
		DateOfBirth: m.DateOfBirth.UTC().Format(models.DateLayout),
		Interests:   strings.Join(m.Interests, ", "),
	}
	return nil
}

// SetField updates one form field.
func (s *Session) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeClosed {
		return ErrFormClosed
	}
	switch name {
	case FieldName:
		s.form.Name = value
	case FieldDateOfBirth:
		s.form.DateOfBirth = value
	case FieldInterests:
		s.form.Interests = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Submit sends the form. Add creates and appends the record; edit sends the
// record's original member number and replaces it in place. The form closes
// only on success.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	mode, form, editing, number := s.mode, s.form, s.editing, s.memberNumber
	s.mu.Unlock()

	interests := SplitInterests(form.Interests)
	var (
		saved models.Member
		err   error
	)
	switch mode {
	case ModeAdd:
		saved, err = s.api.Create(ctx, NewMember{
			Name:         form.Name,
			DateOfBirth:  form.DateOfBirth,
			MemberNumber: number,
			Interests:    interests,
		})
	case ModeEdit:
		saved, err = s.api.Update(ctx, Update{
			ID:           editing.ID.Hex(),
			Name:         &form.Name,
			DateOfBirth:  &form.DateOfBirth,
			MemberNumber: &editing.MemberNumber,
			Interests:    &interests,
		})
	default:
		return ErrFormClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = fmt.Errorf("save member: %w", err)
		return s.lastErr
	}
	if mode == ModeAdd {
		s.records = append(s.records, saved)
	} else if i := s.indexOf(saved.ID.Hex()); i >= 0 {
		s.records[i] = saved
	}
	s.closeLocked()
	s.lastErr = nil
	return nil
}

// Cancel closes the form without sending anything.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Delete removes the record with id after confirm returns true. A declined
// confirmation is not an error and sends nothing.
func (s *Session) Delete(ctx context.Context, id string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	_, err := s.api.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = fmt.Errorf("delete member: %w", err)
		return s.lastErr
	}
	if i := s.indexOf(id); i >= 0 {
		s.records = append(s.records[:i:i], s.records[i+1:]...)
	}
	s.lastErr = nil
	return nil
}

// Records returns a copy of the loaded records in display order.
func (s *Session) Records() []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Member, len(s.records))
	copy(out, s.records)
	return out
}

// Loaded reports whether a Load has succeeded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Mode returns the form state.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Form returns the current form contents.
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// MemberNumber is the number the open form will submit.
func (s *Session) MemberNumber() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberNumber
}

// LastError is the failure of the most recent call, or nil once a later
// call succeeds.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) closeLocked() {
	s.mode = ModeClosed
	s.editing = models.Member{}
	s.form = Form{}
	s.memberNumber = 0
}

func (s *Session) indexOf(id string) int {
	for i, m := range s.records {
		if m.ID.Hex() == id {
			return i
		}
	}
	return -1
}

// SplitInterests turns "a, b,,c" into [a b c]. Empty entries are dropped.
func SplitInterests(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
