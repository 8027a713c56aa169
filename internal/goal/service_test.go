package goal_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/goal"
	"github.com/saulo-duarte/streaker/internal/metrics"
	util "github.com/saulo-duarte/streaker/internal/utils"
)

var now = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&goal.Template{}, &goal.Goal{}, &goal.ProgressLog{}))
	return db
}

type badgeSpy struct {
	calls int
	err   error
}

func (b *badgeSpy) CheckBadges(context.Context, uuid.UUID) error {
	b.calls++
	return b.err
}

func setup(t *testing.T) (goal.Repository, *badgeSpy, goal.Service) {
	repo := goal.NewRepository(testDB(t))
	spy := &badgeSpy{}
	return repo, spy, goal.NewService(repo, spy, func() time.Time { return now })
}

func ptr[T any](v T) *T { return &v }

func validDTO() goal.CreateGoalDTO {
	return goal.CreateGoalDTO{
		Name:        "Read daily",
		Period:      goal.PeriodDaily,
		TargetCount: 5,
		StartDate:   util.NewDate(day(2024, 1, 1)),
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("DerivesEndDateAndChecksBadges", func(t *testing.T) {
		_, spy, svc := setup(t)
		dto := validDTO()
		dto.TargetDays = ptr(10)

		g, err := svc.Create(ctx, userID, dto)
		require.NoError(t, err)
		assert.Equal(t, goal.StatusActive, g.Status)
		assert.Equal(t, 0, g.CurrentProgress)
		require.NotNil(t, g.EndDate)
		assert.Equal(t, day(2024, 1, 11), *g.EndDate)
		assert.Equal(t, 1, spy.calls)
	})

	t.Run("BadgeFailureDoesNotFailCreate", func(t *testing.T) {
		_, spy, svc := setup(t)
		spy.err = errors.New("badge store down")
		_, err := svc.Create(ctx, userID, validDTO())
		require.NoError(t, err)
	})

	invalid := map[string]func(*goal.CreateGoalDTO){
		"EmptyName":       func(d *goal.CreateGoalDTO) { d.Name = "  " },
		"LongName":        func(d *goal.CreateGoalDTO) { d.Name = strings.Repeat("a", 101) },
		"LongDescription": func(d *goal.CreateGoalDTO) { d.Description = ptr(strings.Repeat("b", 501)) },
		"BadPeriod":       func(d *goal.CreateGoalDTO) { d.Period = "YEARLY" },
		"ZeroTarget":      func(d *goal.CreateGoalDTO) { d.TargetCount = 0 },
		"ZeroTargetDays":  func(d *goal.CreateGoalDTO) { d.TargetDays = ptr(0) },
		"MissingStart":    func(d *goal.CreateGoalDTO) { d.StartDate = util.Date{} },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			_, spy, svc := setup(t)
			dto := validDTO()
			mutate(&dto)
			_, err := svc.Create(ctx, userID, dto)
			require.ErrorIs(t, err, apperror.ErrValidation)
			assert.Zero(t, spy.calls)
		})
	}
}

func TestIncrementProgressPersistsLog(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo, spy, svc := setup(t)

	created, err := svc.Create(ctx, userID, validDTO())
	require.NoError(t, err)
	completedBefore := testutil.ToFloat64(metrics.GoalTransitions.WithLabelValues(string(goal.StatusCompleted)))

	g, err := svc.IncrementProgress(ctx, userID, created.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusActive, g.Status)

	logs, err := repo.ProgressLogs(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].IsCompleted)

	g, err = svc.IncrementProgress(ctx, userID, created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, g.CurrentProgress)
	assert.Equal(t, goal.StatusCompleted, g.Status)
	assert.Equal(t, completedBefore+1, testutil.ToFloat64(metrics.GoalTransitions.WithLabelValues(string(goal.StatusCompleted))))

	logs, err = svc.ProgressHistory(ctx, userID, created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 5, logs[0].AchievedCount)
	assert.Equal(t, 5, logs[0].TargetCount)
	assert.True(t, logs[0].IsCompleted)
	assert.True(t, logs[0].PeriodStart.Equal(day(2024, 1, 3)))
	assert.Equal(t, 3, spy.calls)

	_, err = svc.IncrementProgress(ctx, userID, created.ID, 0)
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.IncrementProgress(ctx, uuid.New(), created.ID, 1)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	_, _, svc := setup(t)
	created, err := svc.Create(ctx, userID, validDTO())
	require.NoError(t, err)

	g, err := svc.Update(ctx, userID, created.ID, goal.UpdateGoalDTO{Name: ptr("Read more"), Status: ptr(goal.StatusPaused)})
	require.NoError(t, err)
	assert.Equal(t, "Read more", g.Name)
	assert.Equal(t, goal.StatusPaused, g.Status)

	_, err = svc.Update(ctx, userID, created.ID, goal.UpdateGoalDTO{Status: ptr(goal.StatusCompleted)})
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Update(ctx, userID, created.ID, goal.UpdateGoalDTO{TargetCount: ptr(0)})
	require.ErrorIs(t, err, apperror.ErrValidation)

	got, err := svc.Get(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusPaused, got.Status, "rejected updates leave the goal untouched")
	assert.Equal(t, 5, got.TargetCount)
}

func TestStatusTransitions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	_, _, svc := setup(t)

	dto := validDTO()
	dto.EndDate = ptr(util.NewDate(day(2024, 1, 2)))
	created, err := svc.Create(ctx, userID, dto)
	require.NoError(t, err)

	paused, err := svc.Pause(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusPaused, paused.Status)

	checked, err := svc.CheckStatus(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusPaused, checked.Status, "paused goals are not failed")

	_, err = svc.Pause(ctx, userID, created.ID)
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Resume(ctx, userID, created.ID)
	require.NoError(t, err)

	failed, err := svc.CheckStatus(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusFailed, failed.Status)

	again, err := svc.CheckStatus(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusFailed, again.Status)

	_, err = svc.Resume(ctx, userID, created.ID)
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo, _, svc := setup(t)

	first, err := svc.Create(ctx, userID, validDTO())
	require.NoError(t, err)
	second, err := svc.Create(ctx, userID, validDTO())
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), validDTO())
	require.NoError(t, err)
	_, err = svc.Pause(ctx, userID, second.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx, userID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	paused, err := svc.List(ctx, userID, "paused")
	require.NoError(t, err)
	require.Len(t, paused, 1)
	assert.Equal(t, second.ID, paused[0].ID)

	_, err = svc.List(ctx, userID, "DONE")
	require.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.IncrementProgress(ctx, userID, first.ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, userID, first.ID))

	_, err = svc.Get(ctx, userID, first.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
	logs, err := repo.ProgressLogs(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	require.ErrorIs(t, svc.Delete(ctx, uuid.New(), second.ID), apperror.ErrNotFound)
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo, spy, svc := setup(t)

	require.NoError(t, repo.UpsertTemplates(ctx, goal.DefaultTemplates()))
	require.NoError(t, repo.UpsertTemplates(ctx, goal.DefaultTemplates()))

	all, err := svc.Templates(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 8)
	assert.Equal(t, "30-Day Challenge", all[0].Name)

	general, err := svc.Templates(ctx, "General")
	require.NoError(t, err)
	assert.Len(t, general, 2)

	var fitness goal.Template
	for _, tpl := range all {
		if tpl.Slug == "fitness-first-template" {
			fitness = tpl
		}
	}
	require.NotEqual(t, uuid.Nil, fitness.ID)

	g, err := svc.CreateFromTemplate(ctx, userID, goal.CreateFromTemplateDTO{TemplateID: fitness.ID, StartDate: util.NewDate(day(2024, 1, 1))})
	require.NoError(t, err)
	assert.Equal(t, "Fitness First", g.Name)
	assert.Equal(t, goal.PeriodWeekly, g.Period)
	assert.Equal(t, 3, g.TargetCount)
	require.NotNil(t, g.EndDate)
	assert.Equal(t, day(2024, 2, 26), *g.EndDate)
	assert.Equal(t, fitness.ID, *g.TemplateID)
	assert.Equal(t, 1, spy.calls)

	_, err = svc.CreateFromTemplate(ctx, userID, goal.CreateFromTemplateDTO{TemplateID: uuid.New(), StartDate: util.NewDate(day(2024, 1, 1))})
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateFromInactiveTemplate(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := goal.NewRepository(db)
	svc := goal.NewService(repo, &badgeSpy{}, func() time.Time { return now })

	require.NoError(t, repo.UpsertTemplates(ctx, goal.DefaultTemplates()))
	retired := goal.DefaultTemplates()[0]
	require.NoError(t, db.Model(&goal.Template{}).Where("id = ?", retired.ID).Update("is_active", false).Error)

	listed, err := svc.Templates(ctx, "")
	require.NoError(t, err)
	assert.Len(t, listed, 7)

	userID := uuid.New()
	_, err = svc.CreateFromTemplate(ctx, userID, goal.CreateFromTemplateDTO{TemplateID: retired.ID, StartDate: util.NewDate(day(2024, 1, 1))})
	require.ErrorIs(t, err, apperror.ErrNotFound)

	goals, err := svc.List(ctx, userID, "")
	require.NoError(t, err)
	assert.Empty(t, goals)
}
