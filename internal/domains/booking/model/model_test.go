package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seaview/internal/domains/booking/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusCancelled, model.StatusPending, true},
		{model.StatusCancelled, model.StatusConfirmed, true},
		{model.StatusCancelled, model.StatusCompleted, false},
		{model.StatusCompleted, model.StatusPending, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCompleted, model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestEligibleForCompletion(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  string
		OutDate time.Time
		want    bool
	}{
		{name: "confirmed past stay", status: model.StatusConfirmed, OutDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), want: true},
		{name: "confirmed checkout today", status: model.StatusConfirmed, OutDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), want: false},
		{name: "confirmed future stay", status: model.StatusConfirmed, OutDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), want: false},
		{name: "pending past stay", status: model.StatusPending, OutDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), want: false},
		{name: "cancelled past stay", status: model.StatusCancelled, OutDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), want: false},
		{name: "already completed", status: model.StatusCompleted, OutDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := model.Booking{Status: tt.status, CheckOut: tt.OutDate}

			assert.Equal(t, tt.want, b.EligibleForCompletion(today))
		})
	}
}

func TestOccupies(t *testing.T) {
	assert.True(t, model.Booking{Status: model.StatusPending}.Occupies())
	assert.True(t, model.Booking{Status: model.StatusConfirmed}.Occupies())
	assert.True(t, model.Booking{Status: model.StatusCompleted}.Occupies())
	assert.False(t, model.Booking{Status: model.StatusCancelled}.Occupies())
}
