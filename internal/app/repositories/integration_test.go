//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/yigit/seasonledger/internal/app/migrations"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/db"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
)

func setupDatabase(t *testing.T) *db.PostgresDB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ledger"),
		postgres.WithUsername("ledger"),
		postgres.WithPassword("ledger"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	database, err := db.NewPostgresDBFromURL(connStr)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	_, err = migrations.NewMigrator(database.Pool).Migrate(ctx, migrations.Files())
	require.NoError(t, err)
	return database
}

type fixture struct {
	database *db.PostgresDB
	repos    *Repositories
}

func newFixture(t *testing.T) *fixture {
	database := setupDatabase(t)
	return &fixture{database: database, repos: NewRepositories(database)}
}

func (f *fixture) person(t *testing.T, gameName string) *models.Person {
	t.Helper()
	p := &models.Person{GameName: gameName, Name: gofakeit.Name(), PhoneNumber: gofakeit.Phone(), Role: models.RoleUser, IsActive: true}
	_, err := f.repos.PersonRepository.Create(context.Background(), p)
	require.NoError(t, err)
	return p
}

func (f *fixture) season(t *testing.T, start string, active bool) *models.Season {
	t.Helper()
	d, err := time.Parse(models.DateLayout, start)
	require.NoError(t, err)
	s := &models.Season{StartDate: d, IsActive: active}
	_, err = f.repos.SeasonRepository.Create(context.Background(), s)
	require.NoError(t, err)
	return s
}

func (f *fixture) event(t *testing.T, seasonID int64, name string, payment models.Money) *models.Event {
	t.Helper()
	e := &models.Event{Name: name, SeasonID: seasonID, Payment: payment, DateTime: time.Now().UTC()}
	_, err := f.repos.EventRepository.Create(context.Background(), e)
	require.NoError(t, err)
	return e
}

func (f *fixture) join(t *testing.T, eventID, personID int64, payment models.Money) {
	t.Helper()
	require.NoError(t, f.repos.ParticipantRepository.Add(context.Background(), &models.EventParticipant{
		EventID: eventID, PersonID: personID, Payment: payment,
	}))
}

func TestIntegration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	season := f.season(t, "2024-01-01", true)
	a := f.event(t, season.ID, "A", 10000)
	b := f.event(t, season.ID, "B", 5000)
	p := f.person(t, "Pike")
	q := f.person(t, "Quinn")
	zed := f.person(t, "Zed")
	f.join(t, a.ID, p.ID, 10000)
	f.join(t, b.ID, p.ID, 3000)
	f.join(t, a.ID, q.ID, 0)
	f.join(t, b.ID, zed.ID, 2500)

	t.Run("season report groups by person", func(t *testing.T) {
		var rows []models.SeasonReportRow
		var total int64
		var sum models.Money
		err := f.database.WithSnapshot(ctx, func(ctx context.Context) error {
			var err error
			rows, total, sum, err = f.repos.ReportRepository.SeasonReport(ctx, season.ID, false, 2, 0)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Equal(t, models.Money(15500), sum)
		require.Len(t, rows, 2)
		assert.Equal(t, "Pike", rows[0].GameName)
		assert.Equal(t, int64(2), rows[0].EventsCount)
		assert.Equal(t, models.Money(13000), rows[0].TotalPayment)
		assert.True(t, rows[0].HasPayment)
		assert.Equal(t, "Quinn", rows[1].GameName)
		assert.False(t, rows[1].HasPayment)
	})

	t.Run("paid only drops unpaid groups", func(t *testing.T) {
		rows, total, sum, err := f.repos.ReportRepository.SeasonReport(ctx, season.ID, true, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, models.Money(15500), sum)
		assert.Len(t, rows, 2)
	})

	t.Run("person report sorts by own payment", func(t *testing.T) {
		rows, total, sum, err := f.repos.ReportRepository.PersonReport(ctx, p.ID, season.ID, ListOptions{SortBy: "payment", SortDirection: "asc"}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, models.Money(13000), sum)
		require.Len(t, rows, 2)
		assert.Equal(t, "B", rows[0].EventName)
		assert.Equal(t, models.Money(5000), rows[0].EventPayment)
		assert.Equal(t, models.Money(3000), rows[0].Payment)
	})

	t.Run("duplicate participant conflicts", func(t *testing.T) {
		err := f.repos.ParticipantRepository.Add(ctx, &models.EventParticipant{EventID: a.ID, PersonID: p.ID})
		assert.ErrorIs(t, err, apperrors.ErrParticipantExists)
	})

	t.Run("game name change leaves participant rows", func(t *testing.T) {
		before, err := f.repos.ParticipantRepository.Get(ctx, a.ID, q.ID)
		require.NoError(t, err)

		q.GameName = "Quinn II"
		q.UpdatedAt = time.Now()
		require.NoError(t, f.repos.PersonRepository.Update(ctx, q))

		after, err := f.repos.ParticipantRepository.Get(ctx, a.ID, q.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("empty password hash keeps the stored one", func(t *testing.T) {
		withPass := &models.Person{GameName: "Locked", Role: models.RoleUser, IsActive: true, PasswordHash: "hash-1"}
		_, err := f.repos.PersonRepository.Create(ctx, withPass)
		require.NoError(t, err)

		withPass.PasswordHash = ""
		withPass.Name = "Renamed"
		require.NoError(t, f.repos.PersonRepository.Update(ctx, withPass))

		stored, err := f.repos.PersonRepository.GetByID(ctx, withPass.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash-1", stored.PasswordHash)
		assert.Equal(t, "Renamed", stored.Name)
	})

	t.Run("latest season prefers start date then id", func(t *testing.T) {
		f.season(t, "2025-01-01", false)
		later := f.season(t, "2024-06-01", true)
		tie := f.season(t, "2024-06-01", true)

		latest, err := f.repos.SeasonRepository.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, tie.ID, latest.ID)
		assert.Greater(t, tie.ID, later.ID)
	})

	t.Run("delete event cascades participants", func(t *testing.T) {
		require.NoError(t, f.database.WithTransaction(ctx, func(ctx context.Context) error {
			return f.repos.EventRepository.Delete(ctx, b.ID)
		}))
		_, err := f.repos.ParticipantRepository.Get(ctx, b.ID, p.ID)
		assert.ErrorIs(t, err, apperrors.ErrParticipantNotFound)

		events, total, err := f.repos.EventRepository.List(ctx, EventFilter{ListOptions: ListOptions{Page: 1, PageSize: 10}, SeasonID: &season.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, int64(2), events[0].ParticipantCount)
	})

	t.Run("people search and paging", func(t *testing.T) {
		people, total, err := f.repos.PersonRepository.List(ctx, PersonFilter{
			ListOptions: ListOptions{Page: 1, PageSize: 1},
			Search:      "inn II",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, people, 1)
		assert.Equal(t, "Quinn II", people[0].GameName)
	})

	t.Run("rolled back transaction leaves no rows", func(t *testing.T) {
		before, err := f.repos.SeasonRepository.Count(ctx)
		require.NoError(t, err)

		err = f.database.WithTransaction(ctx, func(ctx context.Context) error {
			if _, err := f.repos.SeasonRepository.Create(ctx, &models.Season{StartDate: time.Now(), IsActive: true}); err != nil {
				return err
			}
			return apperrors.ErrSeasonNotActive
		})
		assert.ErrorIs(t, err, apperrors.ErrSeasonNotActive)

		after, err := f.repos.SeasonRepository.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestIntegrationSeasonReportPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	season := f.season(t, "2024-09-01", true)
	x := f.event(t, season.ID, "X", 1000)
	y := f.event(t, season.ID, "Y", 2000)

	omega := f.person(t, "omega")
	dupFirst := f.person(t, "dup")
	alpha := f.person(t, "alpha")
	dupSecond := f.person(t, "dup")
	unpaid := f.person(t, "under_score")

	f.join(t, x.ID, omega.ID, 1000)
	f.join(t, y.ID, dupSecond.ID, 2000)
	f.join(t, x.ID, dupFirst.ID, 500)
	f.join(t, y.ID, dupFirst.ID, 250)
	f.join(t, x.ID, alpha.ID, 1000)
	f.join(t, y.ID, unpaid.ID, 0)

	collect := func(t *testing.T, paidOnly bool) {
		t.Helper()
		var all []models.SeasonReportRow
		var allTotal int64
		var allSum models.Money
		require.NoError(t, f.database.WithSnapshot(ctx, func(ctx context.Context) error {
			var err error
			all, allTotal, allSum, err = f.repos.ReportRepository.SeasonReport(ctx, season.ID, paidOnly, 0, 0)
			return err
		}))
		require.Len(t, all, int(allTotal))

		var pagedIDs []int64
		var pagedSum models.Money
		for offset := uint64(0); offset < uint64(allTotal)+1; offset++ {
			rows, total, sum, err := f.repos.ReportRepository.SeasonReport(ctx, season.ID, paidOnly, 1, offset)
			require.NoError(t, err)
			assert.Equal(t, allTotal, total)
			assert.Equal(t, allSum, sum)
			if offset == uint64(allTotal) {
				assert.Empty(t, rows)
				continue
			}
			require.Len(t, rows, 1)
			pagedIDs = append(pagedIDs, rows[0].PersonID)
			pagedSum += rows[0].TotalPayment
		}

		allIDs := make([]int64, 0, len(all))
		for _, r := range all {
			allIDs = append(allIDs, r.PersonID)
		}
		assert.Equal(t, allIDs, pagedIDs)
		assert.Equal(t, allSum, pagedSum)
	}

	t.Run("pages concatenate to the full report", func(t *testing.T) {
		collect(t, false)
	})

	t.Run("pages concatenate to the paid-only report", func(t *testing.T) {
		collect(t, true)
	})

	t.Run("equal game names order by person id", func(t *testing.T) {
		rows, total, sum, err := f.repos.ReportRepository.SeasonReport(ctx, season.ID, false, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Equal(t, models.Money(4750), sum)

		ids := make([]int64, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.PersonID)
		}
		assert.Equal(t, []int64{alpha.ID, dupFirst.ID, dupSecond.ID, omega.ID, unpaid.ID}, ids)
		assert.Less(t, dupFirst.ID, dupSecond.ID)
		assert.Equal(t, models.Money(750), rows[1].TotalPayment)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		people, total, err := f.repos.PersonRepository.List(ctx, PersonFilter{
			ListOptions: ListOptions{Page: 1, PageSize: 10},
			Search:      "_",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, people, 1)
		assert.Equal(t, unpaid.ID, people[0].ID)

		_, total, err = f.repos.PersonRepository.List(ctx, PersonFilter{
			ListOptions: ListOptions{Page: 1, PageSize: 10},
			Search:      "%",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}
