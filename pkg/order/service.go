package order

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/perfwall/pkg/cost"
	"github.com/matzehuels/perfwall/pkg/errors"
	"github.com/matzehuels/perfwall/pkg/observability"
	"github.com/matzehuels/perfwall/pkg/wall"
)

// DefaultNotifyTimeout bounds one background notification.
const DefaultNotifyTimeout = 10 * time.Second

// Service validates, prices, stores and announces orders.
type Service struct {
	store         Store
	notifier      Notifier
	logger        *log.Logger
	notifyTimeout time.Duration
	now           func() time.Time
	newID         func() string
	pending       sync.WaitGroup
}

// ServiceOption configures a [Service].
type ServiceOption func(*Service)

func WithNotifier(n Notifier) ServiceOption           { return func(s *Service) { s.notifier = n } }
func WithLogger(l *log.Logger) ServiceOption          { return func(s *Service) { s.logger = l } }
func WithNotifyTimeout(d time.Duration) ServiceOption { return func(s *Service) { s.notifyTimeout = d } }
func WithClock(now func() time.Time) ServiceOption    { return func(s *Service) { s.now = now } }

// NewService returns a service backed by store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:         store,
		logger:        log.New(io.Discard),
		notifyTimeout: DefaultNotifyTimeout,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates req, prices it and stores the resulting order. The
// notifier runs afterwards in its own goroutine under a timeout detached
// from ctx; its failure is logged and reported through the order hooks
// only.
func (s *Service) Submit(ctx context.Context, req Request) (*Order, error) {
	c := req.Customer.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}
	if req.HoleCount < 0 {
		return nil, errors.New(errors.ErrCodeInvalidOrder, "holeCount must be >= 0, got %d", req.HoleCount)
	}

	b := cost.Estimate(req.Params, wall.NewPartition(req.Params), req.HoleCount)
	o := &Order{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Customer:  c,
		Params:    req.Params,
		HoleCount: req.HoleCount,
		Breakdown: b,
		Summary:   cost.Summary(req.Params, b),
	}
	if err := s.store.Save(ctx, o); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "save order")
	}
	s.logger.Info("order stored", "id", o.ID, "total", b.Total)
	observability.Order().OnOrderSubmitted(ctx, o.ID, b.Total)

	if s.notifier != nil {
		s.pending.Add(1)
		go s.notify(context.WithoutCancel(ctx), o)
	}
	return o, nil
}

func (s *Service) notify(ctx context.Context, o *Order) {
	defer s.pending.Done()
	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, o); err != nil {
		s.logger.Warn("order notification failed", "id", o.ID, "error", err)
		observability.Order().OnNotifyFailed(ctx, o.ID, err)
	}
}

// Get returns a stored order.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.store.Get(ctx, id)
}

// List returns the newest orders.
func (s *Service) List(ctx context.Context, limit int) ([]*Order, error) {
	return s.store.List(ctx, limit)
}

// Wait blocks until every pending notification has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}
