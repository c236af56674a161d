package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/repositories"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
)

func money(cents int64) *models.Money {
	m := models.Money(cents)
	return &m
}

type eventFixture struct {
	svc          EventService
	tx           *fakeTx
	events       *fakeEventStore
	seasons      *fakeSeasonStore
	people       *fakePersonStore
	participants *memParticipants
}

// newEventFixture serves seasons 1 (active) and 2 (inactive), events 10 (payment 100.00)
// and 11 (payment 50.00), and people 5 (active) and 6 (inactive).
func newEventFixture() *eventFixture {
	seasons := map[int64]*models.Season{
		1: {ID: 1, IsActive: true},
		2: {ID: 2, IsActive: false},
	}
	events := map[int64]*models.Event{
		10: {ID: 10, Name: "A", SeasonID: 1, Payment: 10000, DateTime: testNow.Add(-time.Hour)},
		11: {ID: 11, Name: "B", SeasonID: 1, Payment: 5000},
	}
	people := map[int64]*models.Person{
		5: {ID: 5, GameName: "P", IsActive: true},
		6: {ID: 6, GameName: "Gone", IsActive: false},
	}

	f := &eventFixture{tx: &fakeTx{}}
	f.seasons = &fakeSeasonStore{
		GetForShareFunc: func(_ context.Context, id int64) (*models.Season, error) {
			if s, ok := seasons[id]; ok {
				copied := *s
				return &copied, nil
			}
			return nil, apperrors.ErrSeasonNotFound
		},
	}
	f.events = &fakeEventStore{
		GetByIDFunc: func(_ context.Context, id int64) (*models.Event, error) {
			if e, ok := events[id]; ok {
				copied := *e
				return &copied, nil
			}
			return nil, apperrors.ErrEventNotFound
		},
		CreateFunc: func(_ context.Context, e *models.Event) (int64, error) {
			e.ID = 99
			return e.ID, nil
		},
		UpdateFunc: func(context.Context, *models.Event) error { return nil },
		DeleteFunc: func(_ context.Context, id int64) error {
			if _, ok := events[id]; !ok {
				return apperrors.ErrEventNotFound
			}
			return nil
		},
	}
	f.people = &fakePersonStore{
		GetByIDFunc: func(_ context.Context, id int64) (*models.Person, error) {
			if p, ok := people[id]; ok {
				return p, nil
			}
			return nil, apperrors.ErrPersonNotFound
		},
	}
	f.participants = newMemParticipants(people[5], people[6])
	f.svc = NewEventService(f.events, f.seasons, f.people, f.participants, f.tx, clockwork.NewFakeClockAt(testNow))
	return f
}

func TestCreateEventSeasonGate(t *testing.T) {
	tests := []struct {
		name     string
		seasonID int64
		wantErr  error
	}{
		{name: "active season", seasonID: 1},
		{name: "inactive season", seasonID: 2, wantErr: apperrors.ErrSeasonNotActive},
		{name: "missing season", seasonID: 404, wantErr: apperrors.ErrSeasonNotActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEventFixture()

			resp, err := f.svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
				Name:     "Friday game",
				SeasonID: tt.seasonID,
				Payment:  money(2500),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperrors.ErrBusinessRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(99), resp.ID)
			assert.Equal(t, testNow, resp.DateTime)
			assert.Equal(t, models.Money(2500), resp.Payment)
			assert.Equal(t, []string{"tx"}, f.tx.Calls)
		})
	}
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateEventRequest
	}{
		{name: "blank name", req: dto.CreateEventRequest{Name: " ", SeasonID: 1, Payment: money(0)}},
		{name: "negative payment", req: dto.CreateEventRequest{Name: "x", SeasonID: 1, Payment: money(-1)}},
		{name: "missing payment", req: dto.CreateEventRequest{Name: "x", SeasonID: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEventFixture()
			_, err := f.svc.CreateEvent(context.Background(), &tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Empty(t, f.tx.Calls)
		})
	}
}

func TestCreateEventKeepsGivenDateTime(t *testing.T) {
	f := newEventFixture()
	at := time.Date(2024, 2, 2, 20, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	resp, err := f.svc.CreateEvent(context.Background(), &dto.CreateEventRequest{Name: "x", SeasonID: 1, Payment: money(1), DateTime: &at})
	require.NoError(t, err)
	assert.True(t, resp.DateTime.Equal(at))
	assert.Equal(t, time.UTC, resp.DateTime.Location())
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("moves to an inactive season is rejected", func(t *testing.T) {
		f := newEventFixture()
		_, err := f.svc.UpdateEvent(ctx, 10, &dto.UpdateEventRequest{Name: "A", SeasonID: 2, Payment: money(100)})
		assert.ErrorIs(t, err, apperrors.ErrSeasonNotActive)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newEventFixture()
		_, err := f.svc.UpdateEvent(ctx, 404, &dto.UpdateEventRequest{Name: "A", SeasonID: 1, Payment: money(100)})
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})

	t.Run("absent date keeps the stored one", func(t *testing.T) {
		f := newEventFixture()
		var saved *models.Event
		f.events.UpdateFunc = func(_ context.Context, e *models.Event) error {
			saved = e
			return nil
		}

		resp, err := f.svc.UpdateEvent(ctx, 10, &dto.UpdateEventRequest{Name: "Renamed", SeasonID: 1, Payment: money(7000)})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", saved.Name)
		assert.Equal(t, models.Money(7000), resp.Payment)
		assert.Equal(t, testNow.Add(-time.Hour), saved.DateTime)
	})
}

func TestDeleteEvent(t *testing.T) {
	f := newEventFixture()
	require.NoError(t, f.svc.DeleteEvent(context.Background(), 10))
	assert.ErrorIs(t, f.svc.DeleteEvent(context.Background(), 404), apperrors.ErrResourceNotFound)
}

func TestListEventsPassesFilter(t *testing.T) {
	f := newEventFixture()
	seasonID := int64(1)
	var got repositories.EventFilter
	f.events.ListFunc = func(_ context.Context, filter repositories.EventFilter) ([]*models.Event, int64, error) {
		got = filter
		return []*models.Event{{ID: 10}}, 51, nil
	}

	resp, err := f.svc.ListEvents(context.Background(), &dto.EventFilterRequest{
		ListQuery: dto.ListQuery{Page: 2, SortBy: "payment"},
		PageSize:  50,
		SeasonID:  &seasonID,
	})
	require.NoError(t, err)
	assert.Equal(t, &seasonID, got.SeasonID)
	assert.Equal(t, "payment", got.SortBy)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, []string{"snapshot"}, f.tx.Calls)
}

func TestParticipantLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()

	// Default payment is the event's base payment.
	added, err := f.svc.AddParticipant(ctx, 10, 5, &dto.AddParticipantRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.Money(10000), added.Payment)
	assert.Equal(t, "P", added.GameName)

	_, err = f.svc.AddParticipant(ctx, 10, 5, &dto.AddParticipantRequest{Payment: money(1)})
	assert.ErrorIs(t, err, apperrors.ErrParticipantExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, f.svc.RemoveParticipant(ctx, 10, 5))
	assert.ErrorIs(t, f.svc.RemoveParticipant(ctx, 10, 5), apperrors.ErrParticipantNotFound)

	readded, err := f.svc.AddParticipant(ctx, 10, 5, &dto.AddParticipantRequest{Payment: money(3000)})
	require.NoError(t, err)
	assert.Equal(t, models.Money(3000), readded.Payment)

	updated, err := f.svc.UpdateParticipantPayment(ctx, 10, 5, &dto.UpdateParticipantPaymentRequest{Payment: money(4500)})
	require.NoError(t, err)
	assert.Equal(t, models.Money(4500), updated.Payment)

	_, err = f.svc.UpdateParticipantPayment(ctx, 11, 5, &dto.UpdateParticipantPaymentRequest{Payment: money(1)})
	assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)
}

func TestAddParticipantRejections(t *testing.T) {
	tests := []struct {
		name     string
		eventID  int64
		personID int64
		req      dto.AddParticipantRequest
		want     error
	}{
		{name: "unknown event", eventID: 404, personID: 5, want: apperrors.ErrEventNotFound},
		{name: "unknown person", eventID: 10, personID: 404, want: apperrors.ErrPersonNotFound},
		{name: "inactive person", eventID: 10, personID: 6, want: apperrors.ErrPersonInactive},
		{name: "negative payment", eventID: 10, personID: 5, req: dto.AddParticipantRequest{Payment: money(-5)}, want: apperrors.ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEventFixture()
			_, err := f.svc.AddParticipant(context.Background(), tt.eventID, tt.personID, &tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.participants.rows)
		})
	}
}

func TestListParticipants(t *testing.T) {
	ctx := context.Background()
	f := newEventFixture()
	f.participants.people[7] = &models.Person{ID: 7, GameName: "Ace", IsActive: true}

	_, err := f.svc.AddParticipant(ctx, 10, 5, &dto.AddParticipantRequest{Payment: money(10000)})
	require.NoError(t, err)
	require.NoError(t, f.participants.Add(ctx, &models.EventParticipant{EventID: 10, PersonID: 7, Payment: 2550}))

	resp, err := f.svc.ListParticipants(ctx, 10)
	require.NoError(t, err)

	var names []string
	for _, p := range resp.Participants {
		names = append(names, p.GameName)
	}
	if diff := cmp.Diff([]string{"Ace", "P"}, names); diff != "" {
		t.Errorf("participant order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, models.Money(12550), resp.TotalSum)
	assert.Equal(t, "snapshot", f.tx.Calls[len(f.tx.Calls)-1])

	_, err = f.svc.ListParticipants(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
