package memberclient

import (
	"context"
	"errors"
	"sync"

	"github.com/dalemusser/memberhub/internal/domain/models"
)

// ErrStale is returned by Show when a later Show replaced the request.
var ErrStale = errors.New("stale member response discarded")

// Getter fetches one member.
type Getter interface {
	Get(ctx context.Context, id string) (models.Member, error)
}

// Detail is the single-member view. Each Show cancels the fetch before it,
// and a response is kept only if its id is still the one requested.
type Detail struct {
	api Getter

	mu        sync.Mutex
	seq       uint64
	requested string
	cancel    context.CancelFunc
	member    models.Member
	has       bool
	err       error
}

func NewDetail(api Getter) *Detail {
	return &Detail{api: api}
}

// Show fetches id and makes it the displayed member.
func (d *Detail) Show(ctx context.Context, id string) (models.Member, error) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	d.seq++
	seq := d.seq
	d.requested = id
	d.cancel = cancel
	d.has = false
	d.err = nil
	d.mu.Unlock()

	m, err := d.api.Get(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq || id != d.requested {
		return models.Member{}, ErrStale
	}
	d.cancel = nil
	cancel()
	if err != nil {
		d.err = err
		return models.Member{}, err
	}
	d.member, d.has = m, true
	return m, nil
}

// Current returns the displayed member, if the latest Show succeeded.
func (d *Detail) Current() (models.Member, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.member, d.has
}

// Requested is the id of the latest Show.
func (d *Detail) Requested() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requested
}

// Err is the failure of the latest Show.
func (d *Detail) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}
