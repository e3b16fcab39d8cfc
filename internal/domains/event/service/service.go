package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/internal/domains/event/model"
	"frontdesk/internal/domains/event/model/dto"
	"frontdesk/internal/domains/event/repository"
	"frontdesk/shared/constant"
	gDto "frontdesk/shared/dto"
	"frontdesk/shared/failure"
	"frontdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Event interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEventsResponse, error)
	Get(ctx context.Context, id string) (dto.EventResponse, error)
	Insert(ctx context.Context, req dto.InsertEventRequest) (string, error)
	Approve(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	EditWithNewVersion(ctx context.Context, id string, req dto.EditEventRequest) (string, error)
	HardDelete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Event
	cfg   *config.Config
	kafka kafka.Client
	otel  otel.Otel
}

func New(repo repository.Event, cfg *config.Config, kafkaClient kafka.Client, otel otel.Otel) Event {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		kafka: kafkaClient,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return res, fmt.Errorf("failed to get events: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	ev, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(ev)

	return res, nil
}

func (s *serviceImpl) Insert(ctx context.Context, req dto.InsertEventRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ev := req.ToModel(user)

	if err = s.repo.Insert(ctx, ev); err != nil {
		return "", err
	}

	return ev.ID, nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	ev, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if ev.Status != model.StatusPending {
		return failure.UnprocessableEntity("only pending events can be approved") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.repo.Update(ctx,
		map[string]any{
			model.FieldStatus: model.StatusApproved,
			"modified_at":     timezone.Now(),
			"modified_by":     user,
		},
		idFilter(id),
	)
	if err != nil {
		return err
	}

	ev.Status = model.StatusApproved
	s.publish(ctx, "approved", ev)

	return nil
}

func (s *serviceImpl) SoftDelete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SoftDelete")
	defer scope.End()
	defer scope.TraceIfError(err)

	ev, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.repo.Update(ctx,
		map[string]any{
			model.FieldDeletedAt: timezone.Now(),
			"modified_at":        timezone.Now(),
			"modified_by":        user,
		},
		idFilter(id),
	)
	if err != nil {
		return err
	}

	if ev.Status == model.StatusApproved {
		s.publish(ctx, "deleted", ev)
	}

	return nil
}

// EditWithNewVersion appends a corrected copy of the event with a bumped
// version number on the same lineage root. The previous row is left untouched;
// resolvers pick the newest version at read time.
func (s *serviceImpl) EditWithNewVersion(ctx context.Context, id string, req dto.EditEventRequest) (newID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EditWithNewVersion")
	defer scope.End()
	defer scope.TraceIfError(err)

	previous, err := s.getByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !previous.Live() {
		return "", failure.UnprocessableEntity("cannot edit a deleted event") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	next := req.ToVersionOf(previous, user)

	if err = s.repo.Insert(ctx, next); err != nil {
		return "", err
	}

	if next.Status == model.StatusApproved {
		s.publish(ctx, "edited", next)
	}

	return next.ID, nil
}

// HardDelete wipes an event and every row in its lineage. Reserved for the
// super admin role; everyone else corrects history with soft deletes and new
// versions.
func (s *serviceImpl) HardDelete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HardDelete")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleSuperAdmin {
		return failure.Forbidden("hard delete requires super admin role") // nolint:wrapcheck
	}

	ev, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	root := ev.Root()

	lineageFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    root,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldLineageRootID,
				Operator: gDto.FilterOperatorEq,
				Value:    root,
				Table:    model.TableName,
			},
		},
	}

	return s.repo.Delete(ctx, lineageFilter)
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.OperationalEvent, error) {
	ev, err := s.repo.Get(ctx, idFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return ev, fmt.Errorf("failed to get event: %w", err)
	}

	if ev.ID == "" {
		return ev, failure.NotFound("event") // nolint:wrapcheck
	}

	return ev, nil
}

// publish forwards approved mutations to the event topic. Best effort: a
// broker outage must never fail the write path.
func (s *serviceImpl) publish(ctx context.Context, action string, ev model.OperationalEvent) {
	if !s.cfg.External.Kafka.Enable {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key: ev.Root(),
			Value: map[string]any{
				"action": action,
				"event":  ev,
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.External.Kafka.Topic, message); err != nil {
			log.Error().Err(err).Str("eventID", ev.ID).Msg("failed to publish event mutation")
		}
	}()
}

func idFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
		},
	}
}
