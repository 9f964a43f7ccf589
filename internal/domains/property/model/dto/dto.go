package dto

import (
	"mime/multipart"

	"seaview/internal/domains/property/model"
	gDto "seaview/shared/dto"
)

type UpdatePropertyRequest struct {
	Name        string  `db:"name"         json:"name"         validate:"omitempty,min=3,max=100"`
	Headline    string  `db:"headline"     json:"headline"     validate:"omitempty,max=200"`
	Description string  `db:"description"  json:"description"  validate:"omitempty,max=5000"`
	Address     string  `db:"address"      json:"address"      validate:"omitempty,max=300"`
	MaxGuests   int     `db:"max_guests"   json:"max_guests"   validate:"omitempty,min=1,max=50"`
	Bedrooms    int     `db:"bedrooms"     json:"bedrooms"     validate:"omitempty,min=1,max=50"`
	Bathrooms   int     `db:"bathrooms"    json:"bathrooms"    validate:"omitempty,min=1,max=50"`
	NightlyRate float64 `db:"nightly_rate" json:"nightly_rate" validate:"omitempty,gt=0"`
}

type PropertyResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Headline    string   `json:"headline"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	MaxGuests   int      `json:"max_guests"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	NightlyRate float64  `json:"nightly_rate"`
	Photos      []string `json:"photos"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(mod model.Property) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Headline = mod.Headline
	r.Description = mod.Description
	r.Address = mod.Address
	r.MaxGuests = mod.MaxGuests
	r.Bedrooms = mod.Bedrooms
	r.Bathrooms = mod.Bathrooms
	r.NightlyRate = mod.NightlyRate
	r.Photos = mod.Photos
	r.Metadata.FromModel(mod.Metadata)
}

type UploadPhotoRequest struct {
	Photo     *multipart.FileHeader `json:"photo" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	PhotoFile multipart.File        `json:"-"`
}

type UploadPhotoResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type DeletePhotoRequest struct {
	PhotoURL string `json:"photo_url" validate:"required,url"`
}
