package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/nonbon/internal/models"
)

type focusServiceImpl struct {
	logger zerolog.Logger

	mu     sync.RWMutex
	items  []models.FocusItem
	nextID int64
}

func NewFocusService(logger zerolog.Logger) FocusService {
	return &focusServiceImpl{
		logger: logger,
		items:  make([]models.FocusItem, 0),
		nextID: 1,
	}
}

// log prefers the request-scoped logger stored in ctx by the http layer.
func (s *focusServiceImpl) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}

func (s *focusServiceImpl) ListAll(ctx context.Context) []models.FocusItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.FocusItem, len(s.items))
	copy(items, s.items)

	s.log(ctx).Debug().
		Int("count", len(items)).
		Msg("listed focus items")
	return items
}

func (s *focusServiceImpl) ListActive(ctx context.Context) []models.FocusItem {
	return s.ListByStatus(ctx, models.StatusActive)
}

func (s *focusServiceImpl) ListByStatus(ctx context.Context, status models.Status) []models.FocusItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.filterLocked(status)

	s.log(ctx).Debug().
		Str("status", status.String()).
		Int("count", len(items)).
		Msg("listed focus items by status")
	return items
}

func (s *focusServiceImpl) GetItem(ctx context.Context, id int64) (models.FocusItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.log(ctx).Warn().
			Int64("item_id", id).
			Msg("focus item not found")
		return models.FocusItem{}, fmt.Errorf("%w: no focus item found with id %d", ErrItemNotFound, id)
	}
	return s.items[i], nil
}

func (s *focusServiceImpl) PickRandomBacklog(ctx context.Context) (models.FocusItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	backlog := s.filterLocked(models.StatusBacklog)
	if len(backlog) == 0 {
		s.log(ctx).Warn().Msg("backlog is empty")
		return models.FocusItem{}, ErrEmptyBacklog
	}

	item := backlog[rand.Intn(len(backlog))]
	s.log(ctx).Debug().
		Int64("item_id", item.ID).
		Int("backlog_size", len(backlog)).
		Msg("picked random backlog item")
	return item, nil
}

func (s *focusServiceImpl) CreateItem(ctx context.Context, params CreateItemParams) (models.FocusItem, error) {
	logger := s.log(ctx)

	if strings.TrimSpace(params.Title) == "" {
		logger.Warn().Msg("title is missing")
		return models.FocusItem{}, fmt.Errorf("%w: title is required", ErrInvalidTitle)
	}

	status := models.StatusBacklog
	if strings.TrimSpace(params.Status) != "" {
		parsed, ok := models.ParseStatus(params.Status)
		if !ok {
			logger.Warn().
				Str("status", params.Status).
				Msg("invalid status")
			return models.FocusItem{}, invalidStatusError()
		}
		status = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if status == models.StatusActive {
		active := s.countLocked(models.StatusActive)
		if active >= models.MaxActive {
			logger.Warn().
				Int("active", active).
				Int("max_active", models.MaxActive).
				Msg("active limit reached")
			return models.FocusItem{}, fmt.Errorf("%w: cannot add more than %d active items",
				ErrActiveLimitExceeded, models.MaxActive)
		}
	}

	item := models.FocusItem{
		ID:     s.nextID,
		Title:  params.Title,
		Area:   params.Area,
		Status: status,
	}
	s.nextID++
	s.items = append(s.items, item)

	logger.Info().
		Int64("item_id", item.ID).
		Str("status", item.Status.String()).
		Msg("created focus item")
	return item, nil
}

func (s *focusServiceImpl) UpdateStatus(ctx context.Context, id int64, status string) error {
	logger := s.log(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		logger.Warn().
			Int64("item_id", id).
			Msg("focus item not found")
		return fmt.Errorf("%w: no focus item found with id %d", ErrItemNotFound, id)
	}

	if strings.TrimSpace(status) == "" {
		logger.Warn().
			Int64("item_id", id).
			Msg("status is missing")
		return fmt.Errorf("%w: status is required", ErrInvalidStatus)
	}

	next, ok := models.ParseStatus(status)
	if !ok {
		logger.Warn().
			Int64("item_id", id).
			Str("status", status).
			Msg("invalid status")
		return invalidStatusError()
	}

	current := s.items[i].Status
	if next == models.StatusActive && current != models.StatusActive {
		active := s.countLocked(models.StatusActive)
		if active >= models.MaxActive {
			logger.Warn().
				Int64("item_id", id).
				Int("active", active).
				Int("max_active", models.MaxActive).
				Msg("active limit reached")
			return fmt.Errorf("%w: cannot have more than %d active items",
				ErrActiveLimitExceeded, models.MaxActive)
		}
	}

	s.items[i].Status = next
	logger.Debug().
		Int64("item_id", id).
		Str("from", current.String()).
		Str("to", next.String()).
		Msg("changed focus item status")

	logger.Info().
		Int64("item_id", id).
		Msg("updated focus item status")
	return nil
}

func (s *focusServiceImpl) Stats(ctx context.Context) map[models.Status]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.Status]int, len(models.Statuses()))
	for _, status := range models.Statuses() {
		counts[status] = 0
	}
	for _, item := range s.items {
		counts[item.Status]++
	}

	s.log(ctx).Debug().
		Int("total", len(s.items)).
		Msg("counted focus items")
	return counts
}

func (s *focusServiceImpl) indexLocked(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *focusServiceImpl) countLocked(status models.Status) int {
	n := 0
	for _, item := range s.items {
		if item.Status == status {
			n++
		}
	}
	return n
}

func (s *focusServiceImpl) filterLocked(status models.Status) []models.FocusItem {
	items := make([]models.FocusItem, 0)
	for _, item := range s.items {
		if item.Status == status {
			items = append(items, item)
		}
	}
	return items
}

func invalidStatusError() error {
	names := make([]string, 0, len(models.Statuses()))
	for _, status := range models.Statuses() {
		names = append(names, status.String())
	}
	return fmt.Errorf("%w: status must be one of: %s", ErrInvalidStatus, strings.Join(names, ", "))
}
