// Package memory is an in-process implementation of storage.Storage used by
// tests and by local runs without Postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types/users"
)

type data struct {
	videos    map[string]types.Video
	videoSeq  map[string]int64
	tags      map[string]types.Tag
	videoTags map[string]map[string]struct{}
	gallery   map[string]types.GalleryItem
	settings  map[string]types.SiteSetting
	users     map[string]users.User
	seq       int64
}

func newData() *data {
	return &data{
		videos:    make(map[string]types.Video),
		videoSeq:  make(map[string]int64),
		tags:      make(map[string]types.Tag),
		videoTags: make(map[string]map[string]struct{}),
		gallery:   make(map[string]types.GalleryItem),
		settings:  make(map[string]types.SiteSetting),
		users:     make(map[string]users.User),
	}
}

func (d *data) clone() *data {
	c := newData()
	c.seq = d.seq
	for k, v := range d.videos {
		c.videos[k] = v
	}
	for k, v := range d.videoSeq {
		c.videoSeq[k] = v
	}
	for k, v := range d.tags {
		c.tags[k] = v
	}
	for k, set := range d.videoTags {
		cs := make(map[string]struct{}, len(set))
		for id := range set {
			cs[id] = struct{}{}
		}
		c.videoTags[k] = cs
	}
	for k, v := range d.gallery {
		c.gallery[k] = v
	}
	for k, v := range d.settings {
		c.settings[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	return c
}

// faults holds errors injected by tests, keyed by method name.
type faults struct {
	mu   sync.Mutex
	errs map[string]error
}

func (f *faults) get(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[method]
}

type Store struct {
	mu     *sync.Mutex
	d      *data
	inTx   bool
	faults *faults
	now    func() time.Time
}

var _ storage.Storage = (*Store)(nil)

func New() *Store {
	return &Store{
		mu:     &sync.Mutex{},
		d:      newData(),
		faults: &faults{errs: make(map[string]error)},
		now:    time.Now,
	}
}

// Fail makes every later call to method return err. A nil err clears the fault.
func (s *Store) Fail(method string, err error) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	if err == nil {
		delete(s.faults.errs, method)
		return
	}
	s.faults.errs[method] = err
}

// WithTransaction runs fn against a copy of the data and swaps it in on success.
// Other callers are blocked until the transaction finishes.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx storage.Storage) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := s.faults.get("WithTransaction"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{
		mu:     &sync.Mutex{},
		d:      s.d.clone(),
		inTx:   true,
		faults: s.faults,
		now:    s.now,
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.d = tx.d
	return nil
}

func (s *Store) MediaReferences(ctx context.Context) ([]string, error) {
	if err := s.faults.get("MediaReferences"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	add := func(p *string) {
		if p != nil && *p != "" {
			seen[*p] = struct{}{}
		}
	}
	for _, v := range s.d.videos {
		add(v.ThumbnailURL)
		add(v.VideoURL)
	}
	for _, g := range s.d.gallery {
		add(&g.FileURL)
	}
	for _, st := range s.d.settings {
		add(st.Value)
	}

	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)

	return refs, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.faults.get("Ping")
}

func (s *Store) Close() error { return nil }

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

func duplicate(op string) error {
	return fmt.Errorf("%s: %w", op, storage.ErrDuplicate)
}

// normalize mirrors the SQL store, which keeps empty strings as NULL.
func normalize(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}

func newID() string {
	return uuid.NewString()
}

// GetSetting returns nil when the key has never been written.
func (s *Store) GetSetting(ctx context.Context, key string) (*string, error) {
	if err := s.faults.get("GetSetting"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.d.settings[key]
	if !ok {
		return nil, nil
	}
	return normalize(st.Value), nil
}

func (s *Store) ListSettings(ctx context.Context) ([]types.SiteSetting, error) {
	if err := s.faults.get("ListSettings"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := make([]types.SiteSetting, 0, len(s.d.settings))
	for _, st := range s.d.settings {
		settings = append(settings, st)
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })

	return settings, nil
}

func (s *Store) UpsertSetting(ctx context.Context, key string, value *string) error {
	if err := s.faults.get("UpsertSetting"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st, ok := s.d.settings[key]
	if !ok {
		st = types.SiteSetting{ID: newID(), Key: key, CreatedAt: now}
	}
	st.Value = normalize(value)
	st.UpdatedAt = now
	s.d.settings[key] = st

	return nil
}

func (s *Store) CreateUser(ctx context.Context, email, passwordHash string) (string, error) {
	if err := s.faults.get("CreateUser"); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.users[email]; ok {
		return "", duplicate("create user")
	}

	id := newID()
	s.d.users[email] = users.User{
		ID:        id,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: s.now().Format(time.RFC3339),
	}

	return id, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	if err := s.faults.get("GetUserByEmail"); err != nil {
		return users.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.d.users[email]
	if !ok {
		return users.User{}, notFound("get user")
	}
	return u, nil
}
