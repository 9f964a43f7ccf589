package dto

import (
	"time"

	"github.com/google/uuid"

	"seaview/internal/domains/booking/model"
	"seaview/shared"
	"seaview/shared/daterange"
	gDto "seaview/shared/dto"
	gModel "seaview/shared/model"
	"seaview/shared/timezone"
)

type CreateBookingRequest struct {
	FirstName  string  `json:"first_name"  validate:"required,max=100"`
	LastName   string  `json:"last_name"   validate:"required,max=100"`
	Email      string  `json:"email"       validate:"required,email,max=100"`
	Phone      string  `json:"phone"       validate:"required,max=20"`
	CheckIn    string  `json:"check_in"    validate:"required"`
	CheckOut   string  `json:"check_out"   validate:"required"`
	Guests     int     `json:"guests"      validate:"required,min=1"`
	TotalPrice float64 `json:"total_price" validate:"required,gt=0"`
	Notes      string  `json:"notes"       validate:"omitempty,max=500"`
}

// Range parses the requested stay into a half-open date range.
func (c *CreateBookingRequest) Range() (daterange.DateRange, error) {
	return daterange.Parse(c.CheckIn, c.CheckOut)
}

func (c *CreateBookingRequest) ToModel(stay daterange.DateRange, origin, user string) model.Booking {
	var notes *string
	if c.Notes != "" {
		notes = &c.Notes
	}

	return model.Booking{
		ID:         uuid.NewString(),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		CheckIn:    stay.Start,
		CheckOut:   stay.End,
		Guests:     c.Guests,
		TotalPrice: c.TotalPrice,
		Status:     model.StatusPending,
		Origin:     origin,
		Notes:      notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	Notes  string `db:"notes"  json:"notes"  validate:"omitempty,max=500"`
}

type UpdateBookingRequest struct {
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=100"`
	LastName  string `db:"last_name"  json:"last_name"  validate:"omitempty,max=100"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
	Notes     string `db:"notes"      json:"notes"      validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Nights     int     `json:"nights"`
	Guests     int     `json:"guests"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	Origin     string  `json:"origin"`
	Notes      string  `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.FirstName = mod.FirstName
	r.LastName = mod.LastName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.CheckIn = mod.CheckIn.Format(daterange.DateLayout)
	r.CheckOut = mod.CheckOut.Format(daterange.DateLayout)
	r.Nights = mod.Range().Nights()
	r.Guests = mod.Guests
	r.TotalPrice = mod.TotalPrice
	r.Status = mod.Status
	r.Origin = mod.Origin

	if mod.Notes != nil {
		r.Notes = *mod.Notes
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// AdmitResponse is what a successful public submission returns: just enough
// for the guest UI to show a reference and the pending state.
type AdmitResponse struct {
	BookingID string    `json:"booking_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
