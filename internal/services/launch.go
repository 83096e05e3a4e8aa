package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pandeptwidyaop/launchpad/internal/config"
	"github.com/pandeptwidyaop/launchpad/internal/models"
	"github.com/pandeptwidyaop/launchpad/internal/opener"
)

var (
	// ErrInvalidName indicates the application name cannot be passed to the opener.
	ErrInvalidName = errors.New("invalid application name")
	// ErrLaunchNotFound indicates no record exists for the launch id.
	ErrLaunchNotFound = errors.New("launch not found")
	// ErrShuttingDown indicates the service no longer accepts launches.
	ErrShuttingDown = errors.New("launch service shutting down")
	// ErrDuplicateID indicates a caller-supplied launch id is already in use.
	ErrDuplicateID = errors.New("launch id already in use")
)

// Origin identifies who asked for an operation, for the audit trail.
type Origin struct {
	IPAddress string
	UserAgent string
}

// LaunchService opens applications asynchronously and reports each completion
// to the subscribers of its launch id. Launches are independent: nothing is
// queued, retried or de-duplicated.
type LaunchService struct {
	cfg    config.LaunchConfig
	apps   *AppService
	opener opener.Opener
	audit  *AuditService
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// recordsMu is always taken before streamsMu.
	recordsMu sync.RWMutex
	records   map[string]*models.LaunchRecord
	order     []string
	closed    bool

	streamsMu sync.RWMutex
	streams   map[string][]chan models.LaunchResponse
}

// NewLaunchService creates a LaunchService. audit may be nil.
func NewLaunchService(cfg config.LaunchConfig, apps *AppService, o opener.Opener, audit *AuditService, logger *zap.Logger) *LaunchService {
	ctx, cancel := context.WithCancel(context.Background())
	return &LaunchService{
		cfg:     cfg,
		apps:    apps,
		opener:  o,
		audit:   audit,
		logger:  logger.Named("launch"),
		ctx:     ctx,
		cancel:  cancel,
		records: make(map[string]*models.LaunchRecord),
		streams: make(map[string][]chan models.LaunchResponse),
	}
}

// ValidateName rejects names that are empty, too long or carry control characters.
func (s *LaunchService) ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidName)
	}
	if s.cfg.MaxNameLength > 0 && len(name) > s.cfg.MaxNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, s.cfg.MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character", ErrInvalidName)
		}
	}
	return nil
}

// Launch accepts a launch request and returns its pending record immediately.
// The open itself runs in the background; use Subscribe or Wait for the outcome.
func (s *LaunchService) Launch(ctx context.Context, req models.LaunchRequest, origin Origin) (*models.LaunchRecord, error) {
	return s.launch(ctx, req, origin, nil)
}

// LaunchAndSubscribe is Launch with the completion channel registered before
// the open starts, so the reply cannot be missed. The caller must Unsubscribe.
func (s *LaunchService) LaunchAndSubscribe(ctx context.Context, req models.LaunchRequest, origin Origin) (*models.LaunchRecord, chan models.LaunchResponse, error) {
	ch := make(chan models.LaunchResponse, 1)
	record, err := s.launch(ctx, req, origin, ch)
	if err != nil {
		return nil, nil, err
	}
	return record, ch, nil
}

func (s *LaunchService) launch(ctx context.Context, req models.LaunchRequest, origin Origin, ch chan models.LaunchResponse) (*models.LaunchRecord, error) {
	name := req.ApplicationName

	if err := s.ValidateName(name); err != nil {
		s.audit.LogLaunch(name, origin, err)
		return nil, err
	}

	if s.cfg.IsRequireKnown() {
		known, err := s.apps.Contains(ctx, name)
		if err != nil {
			s.audit.LogLaunch(name, origin, err)
			return nil, err
		}
		if !known {
			err := fmt.Errorf("%w: %q", ErrUnknownApp, name)
			s.audit.LogLaunch(name, origin, err)
			return nil, err
		}
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	record := &models.LaunchRecord{
		ID:              id,
		ApplicationName: name,
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
	}

	s.recordsMu.Lock()
	if s.closed {
		s.recordsMu.Unlock()
		return nil, ErrShuttingDown
	}
	if _, exists := s.records[id]; exists {
		s.recordsMu.Unlock()
		return nil, ErrDuplicateID
	}
	s.records[id] = record
	s.order = append(s.order, id)
	if ch != nil {
		s.streamsMu.Lock()
		s.streams[id] = append(s.streams[id], ch)
		s.streamsMu.Unlock()
	}
	s.wg.Add(1)
	snapshot := *record
	s.recordsMu.Unlock()

	s.logger.Info("launch accepted", zap.String("id", id), zap.String("app", name))

	go func() {
		defer s.wg.Done()
		s.run(id, name, origin)
	}()

	return &snapshot, nil
}

func (s *LaunchService) run(id, name string, origin Origin) {
	now := time.Now()
	s.update(id, func(r *models.LaunchRecord) {
		r.Status = models.StatusRunning
		r.StartedAt = &now
	})

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.GetTimeout())
	defer cancel()

	err := s.opener.Open(ctx, name)

	finished := time.Now()
	var resp models.LaunchResponse
	s.update(id, func(r *models.LaunchRecord) {
		r.FinishedAt = &finished
		if err != nil {
			r.Status = models.StatusFailed
			r.Error = err.Error()
		} else {
			r.Status = models.StatusSuccess
		}
		resp = r.Response()
	})

	if err != nil {
		s.logger.Warn("launch failed", zap.String("id", id), zap.String("app", name), zap.Error(err))
	} else {
		s.logger.Info("launch finished", zap.String("id", id), zap.String("app", name),
			zap.Duration("took", finished.Sub(now)))
	}

	s.audit.LogLaunch(name, origin, err)
	s.broadcast(id, resp)
	s.evict()
}

func (s *LaunchService) update(id string, fn func(r *models.LaunchRecord)) {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()
	if r, ok := s.records[id]; ok {
		fn(r)
	}
}

// evict drops the oldest finished records beyond the configured history size.
// Running records and records someone is still waiting on are kept.
func (s *LaunchService) evict() {
	s.recordsMu.Lock()
	defer s.recordsMu.Unlock()

	limit := s.cfg.HistorySize
	if limit <= 0 {
		return
	}

	finished := 0
	for _, id := range s.order {
		if s.records[id].Status.Done() {
			finished++
		}
	}
	if finished <= limit {
		return
	}

	s.streamsMu.RLock()
	defer s.streamsMu.RUnlock()

	kept := s.order[:0]
	for _, id := range s.order {
		if finished > limit && s.records[id].Status.Done() && len(s.streams[id]) == 0 {
			delete(s.records, id)
			finished--
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

// Get returns a copy of the launch record.
func (s *LaunchService) Get(id string) (*models.LaunchRecord, error) {
	s.recordsMu.RLock()
	defer s.recordsMu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, ErrLaunchNotFound
	}
	snapshot := *r
	return &snapshot, nil
}

// Subscribe returns a channel that receives the completion of launch id.
func (s *LaunchService) Subscribe(id string) chan models.LaunchResponse {
	ch := make(chan models.LaunchResponse, 1)

	s.streamsMu.Lock()
	s.streams[id] = append(s.streams[id], ch)
	s.streamsMu.Unlock()

	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (s *LaunchService) Unsubscribe(id string, ch chan models.LaunchResponse) {
	s.streamsMu.Lock()
	defer s.streamsMu.Unlock()

	channels := s.streams[id]
	for i, c := range channels {
		if c == ch {
			s.streams[id] = append(channels[:i], channels[i+1:]...)
			close(ch)
			break
		}
	}

	if len(s.streams[id]) == 0 {
		delete(s.streams, id)
	}
}

func (s *LaunchService) broadcast(id string, resp models.LaunchResponse) {
	s.streamsMu.RLock()
	defer s.streamsMu.RUnlock()

	for _, ch := range s.streams[id] {
		select {
		case ch <- resp:
		default:
		}
	}
}

// Wait blocks until launch id completes or ctx ends.
func (s *LaunchService) Wait(ctx context.Context, id string) (models.LaunchResponse, error) {
	ch := s.Subscribe(id)
	defer s.Unsubscribe(id, ch)

	record, err := s.Get(id)
	if err != nil {
		return models.LaunchResponse{}, err
	}
	if record.Status.Done() {
		return record.Response(), nil
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		return models.LaunchResponse{}, ctx.Err()
	}
}

// Shutdown stops accepting launches and waits for running ones.
// Running opens are canceled when ctx ends first.
func (s *LaunchService) Shutdown(ctx context.Context) error {
	s.recordsMu.Lock()
	s.closed = true
	s.recordsMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		<-done
		return ctx.Err()
	}
}
