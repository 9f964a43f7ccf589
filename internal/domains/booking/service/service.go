package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"seaview/config"
	"seaview/infras/otel"
	availability "seaview/internal/domains/availability/service"
	"seaview/internal/domains/booking/model"
	"seaview/internal/domains/booking/model/dto"
	"seaview/internal/domains/booking/repository"
	notification "seaview/internal/domains/notification/service"
	"seaview/shared"
	"seaview/shared/constant"
	"seaview/shared/daterange"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
	"seaview/shared/lock"
	"seaview/shared/timezone"
)

const systemActor = "system"

type Booking interface {
	Admit(ctx context.Context, req dto.CreateBookingRequest, origin string) (dto.AdmitResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	availability availability.Availability
	admission    lock.Lock
	notifier     notification.Notifier
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	avail availability.Availability,
	admission lock.Lock,
	notifier notification.Notifier,
	cfg *config.Config,
	ot otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: avail,
		admission:    admission,
		notifier:     notifier,
		cfg:          cfg,
		otel:         ot,
	}
}

// Admit validates a booking request, serializes it behind the admission lock,
// re-checks availability against fresh data while holding the lock, and
// commits the booking as pending. Notifications run after commit and never
// affect the outcome.
func (s *serviceImpl) Admit(ctx context.Context, req dto.CreateBookingRequest, origin string) (res dto.AdmitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admit")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := req.Range()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if stay.Start.Before(daterange.Truncate(timezone.Now())) {
		return res, failure.BadRequestFromString("check-in date cannot be in the past") // nolint:wrapcheck
	}

	if req.Guests > s.cfg.Property.MaxGuests {
		return res, failure.BadRequestFromString(
			fmt.Sprintf("the property sleeps at most %d guests", s.cfg.Property.MaxGuests)) // nolint:wrapcheck
	}

	release, err := s.admission.Acquire(ctx)
	if err != nil {
		if errors.Is(err, lock.ErrTimeout) {
			return res, failure.ServiceUnavailable("could not admit the booking in time, please retry") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to acquire admission lock")

		return res, fmt.Errorf("failed to acquire admission lock: %w", err)
	}
	defer release()

	// the decision must be made against data fetched while holding the lock,
	// otherwise two guests racing for the same dates could both pass.
	snapshot, err := s.availability.ForceRefresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to refresh availability for admission")

		return res, fmt.Errorf("failed to refresh availability for admission: %w", err)
	}

	if occupied, found := snapshot.Conflicts(stay); found {
		scope.AddEvent("admission rejected: dates occupied")

		return res, failure.Conflict(
			fmt.Sprintf("the requested dates overlap an existing %s reservation", occupied.Source)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == "" {
		user = req.Email
	}

	booking := req.ToModel(stay, origin, user)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to persist booking")

		return res, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.afterCommit(ctx, booking)

	log.Info().
		Str("booking_id", booking.ID).
		Str("check_in", req.CheckIn).
		Str("check_out", req.CheckOut).
		Msg("booking admitted")

	return dto.AdmitResponse{
		BookingID: booking.ID,
		Status:    booking.Status,
		CreatedAt: booking.CreatedAt,
	}, nil
}

// afterCommit runs the post-admission side effects off the request path:
// notify guest and operator, and refresh the availability view so the new
// booking shows up immediately.
func (s *serviceImpl) afterCommit(ctx context.Context, booking model.Booking) {
	detached := context.WithoutCancel(ctx)

	go func() {
		if err := s.notifier.BookingCreated(detached, booking); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("booking notification failed")
		}
	}()

	go func() {
		if _, err := s.availability.ForceRefresh(detached); err != nil {
			log.Error().Err(err).Msg("availability refresh after admission failed")
		}
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	bookings = s.completeFinishedStays(ctx, bookings)

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == "" {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	patched := s.completeFinishedStays(ctx, []model.Booking{booking})

	res.FromModel(patched[0])

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// UpdateStatus applies an explicit lifecycle change. Reopening a cancelled
// booking takes the dates again, so that path goes back through the admission
// lock and a fresh availability check.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for status update")

		return fmt.Errorf("failed to get booking for status update: %w", err)
	}

	if booking.ID == "" {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return failure.BadRequestFromString(
			fmt.Sprintf("cannot change status from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	if booking.Status == model.StatusCancelled {
		release, reopenErr := s.recheckForReopen(ctx, booking)
		if reopenErr != nil {
			return reopenErr
		}

		// The dates stay locked until the reopened row is persisted, so a
		// concurrent admission cannot take them in between.
		defer release()
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == "" {
		user = systemActor
	}

	previous := booking.Status

	if err = s.repo.Update(ctx, shared.TransformFields(req, user),
		shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = req.Status

	detached := context.WithoutCancel(ctx)

	go func() {
		if err := s.notifier.StatusChanged(detached, booking, previous); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("status notification failed")
		}
	}()

	go func() {
		if _, err := s.availability.ForceRefresh(detached); err != nil {
			log.Error().Err(err).Msg("availability refresh after status change failed")
		}
	}()

	return nil
}

// recheckForReopen guards the cancelled -> active transitions: the dates were
// released on cancellation and someone else may hold them now. On success the
// admission lock is still held and the returned release func must be called
// once the reopened status has been persisted.
func (s *serviceImpl) recheckForReopen(ctx context.Context, booking model.Booking) (func(), error) {
	release, err := s.admission.Acquire(ctx)
	if err != nil {
		if errors.Is(err, lock.ErrTimeout) {
			return nil, failure.ServiceUnavailable("could not verify availability in time, please retry") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to acquire admission lock for reopen")

		return nil, fmt.Errorf("failed to acquire admission lock for reopen: %w", err)
	}

	snapshot, err := s.availability.ForceRefresh(ctx)
	if err != nil {
		release()
		log.Error().Err(err).Msg("failed to refresh availability for reopen")

		return nil, fmt.Errorf("failed to refresh availability for reopen: %w", err)
	}

	if occupied, found := snapshot.Conflicts(booking.Range()); found {
		release()

		return nil, failure.Conflict(
			fmt.Sprintf("the booking dates are now held by a %s reservation", occupied.Source)) // nolint:wrapcheck
	}

	return release, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	detached := context.WithoutCancel(ctx)

	go func() {
		if _, err := s.availability.ForceRefresh(detached); err != nil {
			log.Error().Err(err).Msg("availability refresh after delete failed")
		}
	}()

	return nil
}

// completeFinishedStays flips confirmed bookings whose stay has ended to
// completed in the returned slice, and persists the flip asynchronously.
// Running it twice is harmless: the second pass finds nothing eligible.
func (s *serviceImpl) completeFinishedStays(ctx context.Context, bookings []model.Booking) []model.Booking {
	today := timezone.Now()

	finished := []string{}

	for i := range bookings {
		if bookings[i].EligibleForCompletion(today) {
			bookings[i].Status = model.StatusCompleted
			finished = append(finished, bookings[i].ID)
		}
	}

	if len(finished) > 0 {
		go s.persistCompletion(context.WithoutCancel(ctx), finished)
	}

	return bookings
}

func (s *serviceImpl) persistCompletion(ctx context.Context, ids []string) {
	for _, id := range ids {
		patch := map[string]any{
			model.FieldStatus:        model.StatusCompleted,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: systemActor,
		}

		if err := s.repo.Update(ctx, patch, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to persist auto-completion")

			continue
		}

		log.Info().Str("booking_id", id).Msg("booking auto-completed")
	}
}
