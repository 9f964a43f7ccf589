package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seaview/config"
	otelMocks "seaview/infras/otel/mocks"
	availabilityMocks "seaview/internal/domains/availability/mocks"
	availabilityModel "seaview/internal/domains/availability/model"
	bookingMocks "seaview/internal/domains/booking/mocks"
	"seaview/internal/domains/booking/model"
	"seaview/internal/domains/booking/model/dto"
	notificationMocks "seaview/internal/domains/notification/mocks"
	"seaview/internal/domains/booking/service"
	"seaview/shared/daterange"
	gDto "seaview/shared/dto"
	"seaview/shared/failure"
	"seaview/shared/lock"
	lockMocks "seaview/shared/lock/mocks"
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	availability *availabilityMocks.MockAvailability
	admission    *lockMocks.MockLock
	notifier     *notificationMocks.MockNotifier
	service      service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	avail := availabilityMocks.NewMockAvailability(ctrl)
	admission := lockMocks.NewMockLock(ctrl)
	notifier := notificationMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Property.MaxGuests = 6

	return fixture{
		repo:         repo,
		availability: avail,
		admission:    admission,
		notifier:     notifier,
		service:      service.New(repo, avail, admission, notifier, cfg, otelMocks.NewOtel()),
	}
}

func futureDate(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format(daterange.DateLayout)
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		FirstName:  "Maren",
		LastName:   "Holt",
		Email:      "maren@example.com",
		Phone:      "+4711223344",
		CheckIn:    futureDate(30),
		CheckOut:   futureDate(33),
		Guests:     2,
		TotalPrice: 450,
	}
}

func occupiedSnapshot(checkIn, checkOut string) availabilityModel.Snapshot {
	rng, err := daterange.Parse(checkIn, checkOut)
	if err != nil {
		panic(err)
	}

	return availabilityModel.Snapshot{
		Ranges:     []availabilityModel.OccupiedRange{{Range: rng, Source: availabilityModel.SourceAirbnb}},
		ComputedAt: time.Now(),
	}
}

func TestAdmitAcceptsFreeRange(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	released := false
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() { released = true }, nil)
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil)
	fix.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	notified := make(chan struct{})
	fix.notifier.EXPECT().
		BookingCreated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, model.Booking) error {
			close(notified)

			return nil
		})
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil).AnyTimes()

	res, err := fix.service.Admit(ctx, validRequest(), model.OriginGuest)

	assert.NoError(t, err)
	assert.NotEmpty(t, res.BookingID)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.True(t, released)

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("expected the guest notification to fire")
	}
}

func TestAdmitRejectsOccupiedRange(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	released := false
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() { released = true }, nil)
	fix.availability.EXPECT().
		ForceRefresh(gomock.Any()).
		Return(occupiedSnapshot(futureDate(31), futureDate(35)), nil)

	_, err := fix.service.Admit(ctx, validRequest(), model.OriginGuest)

	assert.Error(t, err)
	assert.True(t, failure.IsConflict(err))
	assert.True(t, released)
}

func TestAdmitAllowsCheckoutDayTurnover(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	// an existing stay ends exactly on the requested check-in day
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() {}, nil)
	fix.availability.EXPECT().
		ForceRefresh(gomock.Any()).
		Return(occupiedSnapshot(futureDate(27), futureDate(30)), nil)
	fix.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	fix.notifier.EXPECT().BookingCreated(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil).AnyTimes()

	_, err := fix.service.Admit(ctx, validRequest(), model.OriginGuest)

	assert.NoError(t, err)
}

func TestAdmitReleasesLockOnPersistenceError(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	released := false
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() { released = true }, nil)
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil)
	fix.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(assert.AnError)

	_, err := fix.service.Admit(ctx, validRequest(), model.OriginGuest)

	assert.Error(t, err)
	assert.False(t, failure.IsConflict(err))
	assert.True(t, released, "the admission lock must be released even when persistence fails")
}

func TestAdmitLockTimeout(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	fix.admission.EXPECT().Acquire(gomock.Any()).Return(nil, lock.ErrTimeout)

	_, err := fix.service.Admit(ctx, validRequest(), model.OriginGuest)

	assert.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}

func TestAdmitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateBookingRequest)
	}{
		{
			name: "check-in in the past",
			mutate: func(req *dto.CreateBookingRequest) {
				req.CheckIn = futureDate(-2)
				req.CheckOut = futureDate(1)
			},
		},
		{
			name: "check-out not after check-in",
			mutate: func(req *dto.CreateBookingRequest) {
				req.CheckOut = req.CheckIn
			},
		},
		{
			name: "unparseable date",
			mutate: func(req *dto.CreateBookingRequest) {
				req.CheckIn = "next tuesday"
			},
		},
		{
			name: "too many guests",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Guests = 9
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := newFixture(t)

			req := validRequest()
			tt.mutate(&req)

			_, err := fix.service.Admit(context.Background(), req, model.OriginGuest)

			assert.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

// Two overlapping requests race through a real in-memory lock; the stateful
// availability fake only learns about a booking once it is inserted, so the
// second holder must see the first one's commit and lose.
func TestAdmitSerializesOverlappingRequests(t *testing.T) {
	var (
		mu       sync.Mutex
		admitted []availabilityModel.OccupiedRange
	)

	ctrl := gomock.NewController(t)
	repo := bookingMocks.NewMockBooking(ctrl)
	avail := availabilityMocks.NewMockAvailability(ctrl)
	notifier := notificationMocks.NewMockNotifier(ctrl)

	cfg := &config.Config{}
	cfg.Property.MaxGuests = 6

	svc := service.New(repo, avail, lock.NewMemory(time.Second), notifier, cfg, otelMocks.NewOtel())

	avail.EXPECT().
		ForceRefresh(gomock.Any()).
		DoAndReturn(func(context.Context) (availabilityModel.Snapshot, error) {
			mu.Lock()
			defer mu.Unlock()

			ranges := make([]availabilityModel.OccupiedRange, len(admitted))
			copy(ranges, admitted)

			return availabilityModel.Snapshot{Ranges: ranges, ComputedAt: time.Now()}, nil
		}).
		AnyTimes()

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			mu.Lock()
			defer mu.Unlock()

			admitted = append(admitted, availabilityModel.OccupiedRange{
				Range:  booking.Range(),
				Source: availabilityModel.SourceDirect,
			})

			return nil
		}).
		AnyTimes()

	notifier.EXPECT().BookingCreated(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	first := validRequest()

	second := validRequest()
	second.CheckIn = futureDate(31) // overlaps first's 30..33 stay
	second.CheckOut = futureDate(36)

	var wg sync.WaitGroup

	errs := make([]error, 2)

	for i, req := range []dto.CreateBookingRequest{first, second} {
		wg.Add(1)

		go func(i int, req dto.CreateBookingRequest) {
			defer wg.Done()

			_, errs[i] = svc.Admit(context.Background(), req, model.OriginGuest)
		}(i, req)
	}

	wg.Wait()

	succeeded := 0
	conflicted := 0

	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case failure.IsConflict(err):
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one of the overlapping requests must win")
	assert.Equal(t, 1, conflicted, "the loser must get a conflict, not an internal error")
}

func TestUpdateStatusLegalTransition(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	pending := model.Booking{ID: "booking-1", Status: model.StatusPending, Email: "maren@example.com"}

	fix.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
	fix.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	fix.notifier.EXPECT().StatusChanged(gomock.Any(), gomock.Any(), model.StatusPending).Return(nil).AnyTimes()
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil).AnyTimes()

	err := fix.service.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "booking-1")

	assert.NoError(t, err)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	completed := model.Booking{ID: "booking-1", Status: model.StatusCompleted}

	fix.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)

	err := fix.service.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "booking-1")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestUpdateStatusReopenChecksAvailability(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	cancelled := model.Booking{
		ID:       "booking-1",
		Status:   model.StatusCancelled,
		CheckIn:  time.Now().AddDate(0, 0, 30),
		CheckOut: time.Now().AddDate(0, 0, 33),
	}

	fix.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() {}, nil)
	fix.availability.EXPECT().
		ForceRefresh(gomock.Any()).
		Return(occupiedSnapshot(futureDate(29), futureDate(32)), nil)

	err := fix.service.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "booking-1")

	assert.Error(t, err)
	assert.True(t, failure.IsConflict(err), "reopening over someone else's dates must conflict")
}

func TestUpdateStatusReopenSucceedsWhenRangeFree(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	cancelled := model.Booking{
		ID:       "booking-1",
		Status:   model.StatusCancelled,
		CheckIn:  time.Now().AddDate(0, 0, 30),
		CheckOut: time.Now().AddDate(0, 0, 33),
	}

	fix.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() {}, nil)
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil)
	fix.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	fix.notifier.EXPECT().StatusChanged(gomock.Any(), gomock.Any(), model.StatusCancelled).Return(nil).AnyTimes()
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil).AnyTimes()

	err := fix.service.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusPending}, "booking-1")

	assert.NoError(t, err)
}

func TestUpdateStatusReopenHoldsLockUntilPersisted(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	cancelled := model.Booking{
		ID:       "booking-1",
		Status:   model.StatusCancelled,
		CheckIn:  time.Now().AddDate(0, 0, 30),
		CheckOut: time.Now().AddDate(0, 0, 33),
	}

	released := false

	fix.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() { released = true }, nil)
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil)
	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, map[string]any, gDto.FilterGroup) error {
			assert.False(t, released, "the admission lock must still be held while the reopened status is persisted")

			return nil
		})
	fix.notifier.EXPECT().StatusChanged(gomock.Any(), gomock.Any(), model.StatusCancelled).Return(nil).AnyTimes()
	fix.availability.EXPECT().ForceRefresh(gomock.Any()).Return(availabilityModel.Snapshot{}, nil).AnyTimes()

	err := fix.service.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "booking-1")

	assert.NoError(t, err)
	assert.True(t, released, "the admission lock must be released after the status update completes")
}

func TestUpdateStatusReopenReleasesLockOnConflict(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	cancelled := model.Booking{
		ID:       "booking-1",
		Status:   model.StatusCancelled,
		CheckIn:  time.Now().AddDate(0, 0, 30),
		CheckOut: time.Now().AddDate(0, 0, 33),
	}

	released := false

	fix.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
	fix.admission.EXPECT().Acquire(gomock.Any()).Return(func() { released = true }, nil)
	fix.availability.EXPECT().
		ForceRefresh(gomock.Any()).
		Return(occupiedSnapshot(futureDate(29), futureDate(32)), nil)

	err := fix.service.UpdateStatus(ctx, dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "booking-1")

	assert.Error(t, err)
	assert.True(t, released, "the admission lock must be released when the re-check conflicts")
}

func TestGetAllAutoCompletesFinishedStays(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	finished := model.Booking{
		ID:       "booking-1",
		Status:   model.StatusConfirmed,
		CheckIn:  time.Now().AddDate(0, 0, -10),
		CheckOut: time.Now().AddDate(0, 0, -5),
	}
	upcoming := model.Booking{
		ID:       "booking-2",
		Status:   model.StatusConfirmed,
		CheckIn:  time.Now().AddDate(0, 0, 10),
		CheckOut: time.Now().AddDate(0, 0, 13),
	}

	fix.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	fix.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{finished, upcoming}, nil)

	patched := make(chan struct{})
	fix.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, map[string]any, gDto.FilterGroup) error {
			close(patched)

			return nil
		})

	res, err := fix.service.GetAll(ctx, gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, res.Bookings[0].Status)
	assert.Equal(t, model.StatusConfirmed, res.Bookings[1].Status)

	select {
	case <-patched:
	case <-time.After(time.Second):
		t.Fatal("expected the completion to be persisted")
	}
}

func TestGetNotFound(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	fix.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

	_, err := fix.service.Get(ctx, "missing")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
