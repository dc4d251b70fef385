// Package team holds the team member directory shown next to the task board.
package team

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/yukikurage/team-dashboard/internal/constants"
	"github.com/yukikurage/team-dashboard/internal/localstore"
	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/remote"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrLoadFailed     = errors.New("team could not be loaded")
	ErrMemberNotFound = errors.New("member not found")
	ErrUnconfirmed    = errors.New("remote did not confirm the update")
)

// Filter selects members by name substring and department
type Filter struct {
	Search     string
	Department string
}

func (f Filter) match(m models.TeamMember) bool {
	if f.Department != "" && f.Department != constants.DefaultMemberFilter && string(m.Department) != f.Department {
		return false
	}
	search := strings.TrimSpace(f.Search)
	return search == "" || strings.Contains(strings.ToLower(m.Name), strings.ToLower(search))
}

// Directory caches the member list the same way tasks.Repository caches tasks
type Directory struct {
	store  localstore.Store
	remote remote.MemberService
	log    *zap.Logger
	key    string

	mu      sync.RWMutex
	members []models.TeamMember
	loaded  bool

	persistMu sync.Mutex
	loads     singleflight.Group
}

func NewDirectory(store localstore.Store, memberService remote.MemberService, log *zap.Logger) *Directory {
	return &Directory{
		store:  store,
		remote: memberService,
		log:    log.Named("team"),
		key:    constants.StorageKeyTeam,
	}
}

// Load returns the member list from the local store, or from the remote
// service when nothing is stored yet.
func (d *Directory) Load(ctx context.Context) ([]models.TeamMember, error) {
	if members, ok := d.current(); ok {
		return members, nil
	}

	_, err, _ := d.loads.Do("load", func() (interface{}, error) {
		if _, ok := d.current(); ok {
			return nil, nil
		}
		return nil, d.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	members, _ := d.current()
	return members, nil
}

func (d *Directory) load(ctx context.Context) error {
	var stored []models.TeamMember
	found, err := d.store.Get(ctx, d.key, &stored)
	if err != nil {
		d.log.Warn("local store read failed, falling back to remote", zap.Error(err))
	}
	if err == nil && found && stored != nil {
		d.replace(stored)
		return nil
	}

	fetched, err := d.remote.FetchMembers(ctx)
	if err != nil {
		d.log.Error("team load failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if fetched == nil {
		fetched = []models.TeamMember{}
	}

	if err := d.store.Set(ctx, d.key, fetched); err != nil {
		d.log.Warn("failed to cache fetched members", zap.Error(err))
	}
	d.replace(fetched)
	d.log.Info("team loaded from remote", zap.Int("count", len(fetched)))
	return nil
}

// Get returns one member of a loaded directory
func (d *Directory) Get(id string) (models.TeamMember, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if idx := indexOf(d.members, id); idx >= 0 {
		return d.members[idx], true
	}
	return models.TeamMember{}, false
}

// Filter returns the members matching f in directory order
func (d *Directory) Filter(f Filter) []models.TeamMember {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.TeamMember, 0, len(d.members))
	for _, m := range d.members {
		if f.match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Departments returns the sorted distinct departments
func (d *Directory) Departments() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, m := range d.members {
		dep := string(m.Department)
		if _, ok := seen[dep]; ok || dep == "" {
			continue
		}
		seen[dep] = struct{}{}
		out = append(out, dep)
	}
	sort.Strings(out)
	return out
}

// Update applies the contact change locally, then asks the remote service to
// confirm it. A failed confirm restores the previous list. The update runs to
// completion even if ctx is cancelled.
func (d *Directory) Update(ctx context.Context, id string, update models.MemberUpdate) (models.TeamMember, error) {
	bg := context.WithoutCancel(ctx)
	if _, err := d.Load(bg); err != nil {
		return models.TeamMember{}, err
	}

	d.mu.Lock()
	idx := indexOf(d.members, id)
	if idx < 0 {
		d.mu.Unlock()
		return models.TeamMember{}, fmt.Errorf("%w: %s", ErrMemberNotFound, id)
	}
	snapshot := d.members
	next := make([]models.TeamMember, len(d.members))
	copy(next, d.members)
	next[idx] = update.Apply(next[idx])
	updated := next[idx]
	d.members = next
	d.mu.Unlock()

	if err := d.persist(bg); err != nil {
		d.rollback(bg, snapshot)
		return models.TeamMember{}, err
	}

	confirmed, err := d.remote.UpdateMember(bg, id, update)
	if err == nil && confirmed.ID != id {
		err = fmt.Errorf("%w: got id %q", ErrUnconfirmed, confirmed.ID)
	}
	if err != nil {
		d.rollback(bg, snapshot)
		d.log.Warn("member update rolled back", zap.String("member_id", id), zap.Error(err))
		return models.TeamMember{}, err
	}

	return updated, nil
}

func (d *Directory) rollback(ctx context.Context, snapshot []models.TeamMember) {
	d.mu.Lock()
	d.members = snapshot
	d.mu.Unlock()

	if err := d.persist(ctx); err != nil {
		d.log.Error("failed to restore local store after rollback", zap.Error(err))
	}
}

func (d *Directory) persist(ctx context.Context) error {
	d.persistMu.Lock()
	defer d.persistMu.Unlock()

	d.mu.RLock()
	members := d.members
	d.mu.RUnlock()

	return d.store.Set(ctx, d.key, members)
}

func (d *Directory) current() ([]models.TeamMember, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.loaded {
		return nil, false
	}
	out := make([]models.TeamMember, len(d.members))
	copy(out, d.members)
	return out, true
}

func (d *Directory) replace(members []models.TeamMember) {
	d.mu.Lock()
	d.members = members
	d.loaded = true
	d.mu.Unlock()
}

func indexOf(members []models.TeamMember, id string) int {
	for i := range members {
		if members[i].ID == id {
			return i
		}
	}
	return -1
}
