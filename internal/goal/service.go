package goal

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/metrics"
	util "github.com/saulo-duarte/streaker/internal/utils"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// BadgeChecker re-evaluates badge criteria for a user after goal changes.
type BadgeChecker interface {
	CheckBadges(ctx context.Context, userID uuid.UUID) error
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateGoalDTO) (*Goal, error)
	List(ctx context.Context, userID uuid.UUID, status string) ([]Goal, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, dto UpdateGoalDTO) (*Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	IncrementProgress(ctx context.Context, userID, id uuid.UUID, incrementBy int) (*Goal, error)
	ProgressHistory(ctx context.Context, userID, id uuid.UUID) ([]ProgressLog, error)
	CheckStatus(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	Pause(ctx context.Context, userID, id uuid.UUID) (*Goal, error)
	Resume(ctx context.Context, userID, id uuid.UUID) (*Goal, error)

	Templates(ctx context.Context, category string) ([]Template, error)
	CreateFromTemplate(ctx context.Context, userID uuid.UUID, dto CreateFromTemplateDTO) (*Goal, error)
}

type service struct {
	repo   Repository
	badges BadgeChecker
	now    util.Clock
}

func NewService(repo Repository, badges BadgeChecker, clock util.Clock) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, badges: badges, now: clock}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateGoalDTO) (*Goal, error) {
	name := strings.TrimSpace(dto.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(dto.Description); err != nil {
		return nil, err
	}
	if !dto.Period.Valid() {
		return nil, apperror.Validation("period must be one of DAILY, WEEKLY, MONTHLY")
	}
	if dto.TargetCount < 1 {
		return nil, apperror.Validation("targetCount must be at least 1")
	}
	if dto.TargetDays != nil && *dto.TargetDays < 1 {
		return nil, apperror.Validation("targetDays must be at least 1")
	}
	if dto.StartDate.IsZero() {
		return nil, apperror.Validation("startDate is required")
	}

	start := util.StartOfDay(dto.StartDate.Time)
	g := &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: dto.Description,
		Period:      dto.Period,
		TargetCount: dto.TargetCount,
		TargetDays:  dto.TargetDays,
		Category:    dto.Category,
		Status:      StatusActive,
		StartDate:   start,
		EndDate:     DeriveEndDate(start, dto.TargetDays, util.ToTimePtr(dto.EndDate)),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	config.WithContext(ctx).WithField("goal_id", g.ID).Info("Goal created")
	s.checkBadges(ctx, userID)
	return g, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, status string) ([]Goal, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, apperror.Validation("unknown status %q", status)
	}
	return s.repo.FindAllByUserID(ctx, userID, st)
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.repo.FindByID(ctx, id, userID, true)
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, dto UpdateGoalDTO) (*Goal, error) {
	var (
		updated *Goal
		from    Status
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		g, err := tx.FindByIDForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}
		from = g.Status
		if err := applyUpdate(g, dto); err != nil {
			return err
		}
		if err := tx.Update(ctx, g); err != nil {
			return err
		}
		updated = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.transitioned(ctx, updated, from)
	return updated, nil
}

func applyUpdate(g *Goal, dto UpdateGoalDTO) error {
	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if err := validateName(name); err != nil {
			return err
		}
		g.Name = name
	}
	if dto.Description != nil {
		if err := validateDescription(dto.Description); err != nil {
			return err
		}
		g.Description = dto.Description
	}
	if dto.Period != nil {
		if !dto.Period.Valid() {
			return apperror.Validation("period must be one of DAILY, WEEKLY, MONTHLY")
		}
		g.Period = *dto.Period
	}
	if dto.TargetCount != nil {
		if *dto.TargetCount < 1 {
			return apperror.Validation("targetCount must be at least 1")
		}
		g.TargetCount = *dto.TargetCount
	}
	if dto.TargetDays != nil {
		if *dto.TargetDays < 1 {
			return apperror.Validation("targetDays must be at least 1")
		}
		g.TargetDays = dto.TargetDays
	}
	if dto.Category != nil {
		g.Category = dto.Category
	}
	if dto.EndDate != nil {
		g.EndDate = DeriveEndDate(g.StartDate, nil, util.ToTimePtr(dto.EndDate))
	}
	if dto.Status != nil && *dto.Status != g.Status {
		var err error
		switch *dto.Status {
		case StatusPaused:
			*g, err = Pause(*g)
		case StatusActive:
			*g, err = Resume(*g)
		default:
			err = apperror.Validation("status can only be toggled between ACTIVE and PAUSED")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	g, err := s.repo.FindByID(ctx, id, userID, false)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, g.ID); err != nil {
		return err
	}
	config.WithContext(ctx).WithField("goal_id", id).Info("Goal deleted")
	return nil
}

func (s *service) IncrementProgress(ctx context.Context, userID, id uuid.UUID, incrementBy int) (*Goal, error) {
	if incrementBy < 1 {
		return nil, apperror.Validation("incrementBy must be at least 1")
	}

	var (
		updated *Goal
		from    Status
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		g, err := tx.FindByIDForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}
		from = g.Status

		next, entry, err := IncrementProgress(*g, incrementBy, s.now())
		if err != nil {
			return err
		}
		if err := tx.Update(ctx, &next); err != nil {
			return err
		}
		if err := tx.UpsertProgressLog(ctx, next.ID, entry); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"goal_id":  id,
		"progress": updated.CurrentProgress,
		"target":   updated.TargetCount,
	}).Info("Goal progress updated")
	s.transitioned(ctx, updated, from)
	s.checkBadges(ctx, userID)
	return updated, nil
}

func (s *service) ProgressHistory(ctx context.Context, userID, id uuid.UUID) ([]ProgressLog, error) {
	if _, err := s.repo.FindByID(ctx, id, userID, false); err != nil {
		return nil, err
	}
	return s.repo.ProgressLogs(ctx, id)
}

func (s *service) CheckStatus(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.transition(ctx, userID, id, func(g Goal) (Goal, error) {
		return CheckAndUpdateStatus(g, s.now()), nil
	})
}

func (s *service) Pause(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.transition(ctx, userID, id, Pause)
}

func (s *service) Resume(ctx context.Context, userID, id uuid.UUID) (*Goal, error) {
	return s.transition(ctx, userID, id, Resume)
}

// transition applies fn to a locked goal and saves it only when the status
// actually changed.
func (s *service) transition(ctx context.Context, userID, id uuid.UUID, fn func(Goal) (Goal, error)) (*Goal, error) {
	var (
		updated *Goal
		from    Status
	)
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		g, err := tx.FindByIDForUpdate(ctx, id, userID)
		if err != nil {
			return err
		}
		from = g.Status

		next, err := fn(*g)
		if err != nil {
			return err
		}
		if next.Status != from {
			if err := tx.Update(ctx, &next); err != nil {
				return err
			}
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.transitioned(ctx, updated, from)
	return updated, nil
}

func (s *service) Templates(ctx context.Context, category string) ([]Template, error) {
	return s.repo.ListTemplates(ctx, strings.TrimSpace(category))
}

func (s *service) CreateFromTemplate(ctx context.Context, userID uuid.UUID, dto CreateFromTemplateDTO) (*Goal, error) {
	if dto.TemplateID == uuid.Nil {
		return nil, apperror.Validation("templateId is required")
	}
	if dto.StartDate.IsZero() {
		return nil, apperror.Validation("startDate is required")
	}

	t, err := s.repo.FindTemplate(ctx, dto.TemplateID)
	if err != nil {
		return nil, err
	}

	start := util.StartOfDay(dto.StartDate.Time)
	targetDays := t.TargetDays
	description := t.Description
	category := t.Category
	templateID := t.ID
	g := &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		TemplateID:  &templateID,
		Name:        t.Name,
		Description: &description,
		Period:      t.Period,
		TargetCount: t.TargetCount,
		TargetDays:  &targetDays,
		Category:    &category,
		Status:      StatusActive,
		StartDate:   start,
		EndDate:     DeriveEndDate(start, &targetDays, nil),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{"goal_id": g.ID, "template": t.Slug}).Info("Goal created from template")
	s.checkBadges(ctx, userID)
	return g, nil
}

func (s *service) transitioned(ctx context.Context, g *Goal, from Status) {
	if g.Status == from {
		return
	}
	metrics.GoalTransitions.WithLabelValues(string(g.Status)).Inc()
	config.WithContext(ctx).WithFields(logrus.Fields{
		"goal_id": g.ID,
		"from":    from,
		"to":      g.Status,
	}).Info("Goal status changed")
}

// checkBadges never fails the goal operation that triggered it.
func (s *service) checkBadges(ctx context.Context, userID uuid.UUID) {
	if s.badges == nil {
		return
	}
	if err := s.badges.CheckBadges(ctx, userID); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to check badges")
	}
}

func validateName(name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > maxNameLength {
		return apperror.Validation("name must be between 1 and %d characters", maxNameLength)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		return apperror.Validation("description must be at most %d characters", maxDescriptionLength)
	}
	return nil
}
