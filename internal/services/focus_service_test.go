package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/nonbon/internal/models"
)

func newTestFocusService(t *testing.T) FocusService {
	t.Helper()
	return NewFocusService(zerolog.Nop())
}

func mustCreate(t *testing.T, s FocusService, title, status string) models.FocusItem {
	t.Helper()
	item, err := s.CreateItem(context.Background(), CreateItemParams{
		Title:  title,
		Area:   "Test",
		Status: status,
	})
	require.NoError(t, err)
	return item
}

func TestCreateItemAssignsIDsAndDefaults(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)

	first := mustCreate(t, s, "Write unit tests", "")
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, models.StatusBacklog, first.Status)
	require.Equal(t, "Test", first.Area)

	second := mustCreate(t, s, "Spring cleaning", "   ")
	require.Equal(t, int64(2), second.ID)
	require.Equal(t, models.StatusBacklog, second.Status)

	require.Equal(t, []models.FocusItem{first, second}, s.ListAll(context.Background()))
}

func TestCreateItemNormalizesStatus(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)

	item := mustCreate(t, s, "x", "active")
	require.Equal(t, models.StatusActive, item.Status)

	item = mustCreate(t, s, "y", "dOnE")
	require.Equal(t, models.StatusDone, item.Status)
}

func TestCreateItemRejectsBlankTitle(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	for _, title := range []string{"", " ", "\t\n"} {
		for _, status := range []string{"", "Active", "bogus"} {
			_, err := s.CreateItem(ctx, CreateItemParams{Title: title, Area: "Home", Status: status})
			require.ErrorIs(t, err, ErrInvalidTitle, "title %q status %q", title, status)
		}
	}
	require.Empty(t, s.ListAll(ctx))
}

func TestCreateItemRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	_, err := s.CreateItem(ctx, CreateItemParams{Title: "x", Status: "in_progress"})
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Contains(t, err.Error(), "Backlog, Active, Done, Archived")
	require.Empty(t, s.ListAll(ctx))
}

func TestCreateItemEnforcesActiveLimit(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	for i := 0; i < models.MaxActive; i++ {
		mustCreate(t, s, fmt.Sprintf("Active %d", i+1), "Active")
	}

	_, err := s.CreateItem(ctx, CreateItemParams{Title: "one too many", Status: "Active"})
	require.ErrorIs(t, err, ErrActiveLimitExceeded)
	require.Contains(t, err.Error(), "active")

	item := mustCreate(t, s, "one too many", "Backlog")
	require.Equal(t, models.StatusBacklog, item.Status)
	require.Len(t, s.ListActive(ctx), models.MaxActive)
}

func TestFailedCreateDoesNotConsumeID(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	mustCreate(t, s, "a", "")
	_, err := s.CreateItem(ctx, CreateItemParams{Title: ""})
	require.Error(t, err)
	_, err = s.CreateItem(ctx, CreateItemParams{Title: "b", Status: "nope"})
	require.Error(t, err)

	item := mustCreate(t, s, "c", "")
	require.Equal(t, int64(2), item.ID)
}

func TestListActivePreservesCreationOrder(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)

	first := mustCreate(t, s, "first", "Active")
	mustCreate(t, s, "second", "Backlog")
	third := mustCreate(t, s, "third", "Active")

	require.Equal(t, []models.FocusItem{first, third}, s.ListActive(context.Background()))
}

func TestListsAreCopies(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	mustCreate(t, s, "original", "")
	items := s.ListAll(ctx)
	items[0].Title = "mutated"
	items[0].Status = models.StatusActive

	got, err := s.GetItem(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "original", got.Title)
	require.Equal(t, models.StatusBacklog, got.Status)
	require.Empty(t, s.ListActive(ctx))
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	item := mustCreate(t, s, "Move this to done", "Backlog")
	require.NoError(t, s.UpdateStatus(ctx, item.ID, "done"))

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDone, got.Status)
	require.Equal(t, item.Title, got.Title)
	require.Equal(t, item.Area, got.Area)
	require.Equal(t, item.ID, got.ID)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	mustCreate(t, s, "a", "Backlog")
	mustCreate(t, s, "b", "Active")
	before := s.ListAll(ctx)

	for _, status := range []string{"Done", "", "bogus", "Active"} {
		err := s.UpdateStatus(ctx, 42, status)
		require.ErrorIs(t, err, ErrItemNotFound)
	}
	require.Equal(t, before, s.ListAll(ctx))
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	item := mustCreate(t, s, "a", "Backlog")
	require.ErrorIs(t, s.UpdateStatus(ctx, item.ID, ""), ErrInvalidStatus)
	require.ErrorIs(t, s.UpdateStatus(ctx, item.ID, "  "), ErrInvalidStatus)
	require.ErrorIs(t, s.UpdateStatus(ctx, item.ID, "finished"), ErrInvalidStatus)
	require.ErrorIs(t, s.UpdateStatus(ctx, item.ID, "\tdone\n"), ErrInvalidStatus)
	require.ErrorIs(t, s.UpdateStatus(ctx, item.ID, " Active "), ErrInvalidStatus)

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusBacklog, got.Status)
}

func TestCreateItemRejectsPaddedOrNonASCIIStatus(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	for _, status := range []string{"  Active  ", "bac\u212Alog", "\tdone\n"} {
		_, err := s.CreateItem(ctx, CreateItemParams{Title: "padded", Status: status})
		require.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
	}
	require.Empty(t, s.ListAll(ctx))

	item := mustCreate(t, s, "first", "")
	require.Equal(t, int64(1), item.ID)
}

func TestUpdateStatusEnforcesActiveLimit(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	var active []models.FocusItem
	for i := 0; i < models.MaxActive; i++ {
		active = append(active, mustCreate(t, s, fmt.Sprintf("active %d", i), "Active"))
	}
	waiting := mustCreate(t, s, "waiting", "Backlog")

	err := s.UpdateStatus(ctx, waiting.ID, "ACTIVE")
	require.ErrorIs(t, err, ErrActiveLimitExceeded)

	// Re-setting an already Active item does not count against itself.
	require.NoError(t, s.UpdateStatus(ctx, active[0].ID, "Active"))
	require.Len(t, s.ListActive(ctx), models.MaxActive)

	require.NoError(t, s.UpdateStatus(ctx, active[0].ID, "Done"))
	require.NoError(t, s.UpdateStatus(ctx, waiting.ID, "Active"))
	require.Len(t, s.ListActive(ctx), models.MaxActive)
}

func TestPickRandomBacklog(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	_, err := s.PickRandomBacklog(ctx)
	require.ErrorIs(t, err, ErrEmptyBacklog)

	item := mustCreate(t, s, "only one", "Backlog")
	mustCreate(t, s, "busy", "Active")

	got, err := s.PickRandomBacklog(ctx)
	require.NoError(t, err)
	require.Equal(t, item, got)

	require.NoError(t, s.UpdateStatus(ctx, item.ID, "Done"))
	_, err = s.PickRandomBacklog(ctx)
	require.ErrorIs(t, err, ErrEmptyBacklog)
}

func TestPickRandomBacklogReturnsMember(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	backlog := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		backlog[mustCreate(t, s, fmt.Sprintf("b%d", i), "").ID] = true
	}
	mustCreate(t, s, "done", "Done")
	before := s.ListAll(ctx)

	for i := 0; i < 50; i++ {
		got, err := s.PickRandomBacklog(ctx)
		require.NoError(t, err)
		require.True(t, backlog[got.ID], "picked non-backlog item %d", got.ID)
	}
	require.Equal(t, before, s.ListAll(ctx))
}

func TestGetItemNotFound(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)

	_, err := s.GetItem(context.Background(), 1)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestStats(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	require.Equal(t, map[models.Status]int{
		models.StatusBacklog:  0,
		models.StatusActive:   0,
		models.StatusDone:     0,
		models.StatusArchived: 0,
	}, s.Stats(ctx))

	mustCreate(t, s, "a", "Active")
	mustCreate(t, s, "b", "")
	mustCreate(t, s, "c", "")
	mustCreate(t, s, "d", "archived")

	stats := s.Stats(ctx)
	require.Equal(t, 1, stats[models.StatusActive])
	require.Equal(t, 2, stats[models.StatusBacklog])
	require.Equal(t, 0, stats[models.StatusDone])
	require.Equal(t, 1, stats[models.StatusArchived])
}

func TestConcurrentCreatorsNeverExceedActiveLimit(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	const workers = 64
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			status := "Active"
			if i%4 == 0 {
				status = "Backlog"
			}
			_, err := s.CreateItem(ctx, CreateItemParams{Title: fmt.Sprintf("item %d", i), Status: status})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrActiveLimitExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)

		if len(s.ListActive(ctx)) > models.MaxActive {
			t.Fatalf("active count exceeded %d", models.MaxActive)
		}
	}
	wg.Wait()

	require.Equal(t, workers, succeeded+rejected)
	require.Len(t, s.ListActive(ctx), models.MaxActive)
	require.Len(t, s.ListAll(ctx), succeeded)

	seen := make(map[int64]bool)
	for _, item := range s.ListAll(ctx) {
		require.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
		require.LessOrEqual(t, item.ID, int64(succeeded))
	}
}

func TestConcurrentActivationsNeverExceedActiveLimit(t *testing.T) {
	t.Parallel()
	s := newTestFocusService(t)
	ctx := context.Background()

	const items = 32
	ids := make([]int64, 0, items)
	for i := 0; i < items; i++ {
		ids = append(ids, mustCreate(t, s, fmt.Sprintf("item %d", i), "").ID)
	}

	var wg sync.WaitGroup
	errs := make(chan error, items)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			errs <- s.UpdateStatus(ctx, id, "active")
		}(id)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, ErrActiveLimitExceeded)
	}
	require.Equal(t, models.MaxActive, ok)
	require.Len(t, s.ListActive(ctx), models.MaxActive)
}
