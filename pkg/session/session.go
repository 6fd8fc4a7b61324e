// Package session holds the mutable state of one wall configurator.
//
// A [Session] owns the current wall parameters and the uploaded image. All
// mutations go through its methods and are serialised by the session's own
// lock; [Session.Compute] snapshots the state and runs the layout engine
// outside the lock, so a slow layout never blocks a parameter change.
//
// Sessions are kept in a [Store]:
//   - [MemoryStore]: in-process, used by `perfwall serve`
//   - [FileStore]: JSON files on disk, used by `perfwall tui --resume`
//
// Both expire sessions that have not been touched for a TTL.
//
//	sess := session.New(wall.Defaults())
//	store.Set(ctx, sess)
//	_ = sess.SetImage(img)
//	res, err := sess.Compute()
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/raster"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 2 * time.Hour

// Result is one layout computation and its price.
type Result struct {
	Layout    wall.Layout    `json:"layout"`
	Breakdown cost.Breakdown `json:"breakdown"`
}

// Session is one configurator's state. It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	params    wall.Params
	image     *raster.Image
	createdAt time.Time
	updatedAt time.Time

	version         uint64
	computed        *Result
	computedVersion uint64
}

// New returns a session with a fresh ID. p is stored as given; callers
// that accept user input should validate first or use [Session.SetParams].
func New(p wall.Params) *Session {
	now := time.Now()
	return &Session{id: uuid.NewString(), params: p, createdAt: now, updatedAt: now}
}

func (s *Session) ID() string { return s.id }

// Params returns the current parameters.
func (s *Session) Params() wall.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Image returns the current image, or nil. The image must not be modified.
func (s *Session) Image() *raster.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the time of the last mutation.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SetParams replaces the parameters after validating them. Invalid
// parameters leave the session unchanged.
func (s *Session) SetParams(p wall.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
	s.touch()
	return nil
}

// SetImage replaces the image with a copy of img.
func (s *Session) SetImage(img *raster.Image) error {
	if !img.Valid() {
		return errors.New(errors.ErrCodeInvalidImage, "image is empty or malformed")
	}
	cp := img.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = cp
	s.touch()
	return nil
}

// RotateImage turns the image a quarter turn (see [raster.Image.Rotate90]).
func (s *Session) RotateImage() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no image to rotate")
	}
	s.image = s.image.Rotate90()
	s.touch()
	return nil
}

// ClearImage removes the image; later layouts have no cells.
func (s *Session) ClearImage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return
	}
	s.image = nil
	s.touch()
}

// Compute returns the layout and price of the current state. The result
// is memoized until the next mutation.
func (s *Session) Compute() (*Result, error) {
	s.mu.Lock()
	if s.computed != nil && s.computedVersion == s.version {
		r := s.computed
		s.mu.Unlock()
		return r, nil
	}
	p, img, v := s.params, s.image, s.version
	s.mu.Unlock()

	l, err := wall.Build(p, img)
	if err != nil {
		return nil, err
	}
	r := &Result{Layout: l, Breakdown: cost.EstimateLayout(l)}

	s.mu.Lock()
	if s.version == v {
		s.computed, s.computedVersion = r, v
	}
	s.mu.Unlock()
	return r, nil
}

// Snapshot is the JSON view of a session. The image itself is omitted.
type Snapshot struct {
	ID          string      `json:"id"`
	Params      wall.Params `json:"params"`
	HasImage    bool        `json:"hasImage"`
	ImageWidth  int         `json:"imageWidth,omitempty"`
	ImageHeight int         `json:"imageHeight,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Snapshot returns the current state without the image pixels.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.id,
		Params:    s.params,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	if s.image != nil {
		snap.HasImage = true
		snap.ImageWidth, snap.ImageHeight = s.image.Width, s.image.Height
	}
	return snap
}

// touch must be called with mu held.
func (s *Session) touch() {
	s.updatedAt = time.Now()
	s.version++
}
