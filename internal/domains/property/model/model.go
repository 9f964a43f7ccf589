package model

import "seaview/shared/model"

const (
	TableName  = "property"
	EntityName = "property"

	// SingletonID is the fixed row id: the site rents exactly one property.
	SingletonID = "00000000-0000-0000-0000-000000000001"

	FieldID          = "id"
	FieldName        = "name"
	FieldHeadline    = "headline"
	FieldDescription = "description"
	FieldAddress     = "address"
	FieldMaxGuests   = "max_guests"
	FieldBedrooms    = "bedrooms"
	FieldBathrooms   = "bathrooms"
	FieldNightlyRate = "nightly_rate"
	FieldPhotos      = "photos"
)

type Property struct {
	ID          string   `db:"id"`
	Name        string   `db:"name"`
	Headline    string   `db:"headline"`
	Description string   `db:"description"`
	Address     string   `db:"address"`
	MaxGuests   int      `db:"max_guests"`
	Bedrooms    int      `db:"bedrooms"`
	Bathrooms   int      `db:"bathrooms"`
	NightlyRate float64  `db:"nightly_rate"`
	Photos      []string `db:"photos"`
	model.Metadata
}
