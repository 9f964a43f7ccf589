package dto

import (
	"mime/multipart"
	"seaview/internal/domains/gallery/model"
	gDto "seaview/shared/dto"
	gModel "seaview/shared/model"
	"seaview/shared/timezone"

	"github.com/google/uuid"
)

type CreateAreaRequest struct {
	Area      string `json:"area"       validate:"required,lowercase,min=3,max=50"`
	Title     string `json:"title"      validate:"required,min=3,max=100"`
	Caption   string `json:"caption"    validate:"omitempty,max=300"`
	SortOrder int    `json:"sort_order" validate:"omitempty,gte=0"`
}

func (c *CreateAreaRequest) ToModel(user string) model.Area {
	return model.Area{
		ID:        uuid.NewString(),
		Area:      c.Area,
		Title:     c.Title,
		Caption:   c.Caption,
		SortOrder: c.SortOrder,
		Photos:    []string{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAreaRequest struct {
	Title     string `db:"title"      json:"title"      validate:"omitempty,min=3,max=100"`
	Caption   string `db:"caption"    json:"caption"    validate:"omitempty,max=300"`
	SortOrder *int   `db:"sort_order" json:"sort_order" validate:"omitempty,gte=0"`
}

type AreaResponse struct {
	ID        string   `json:"id"`
	Area      string   `json:"area"`
	Title     string   `json:"title"`
	Caption   string   `json:"caption"`
	SortOrder int      `json:"sort_order"`
	Photos    []string `json:"photos"`
	gDto.Metadata
}

func (r *AreaResponse) FromModel(area model.Area) {
	r.ID = area.ID
	r.Area = area.Area
	r.Title = area.Title
	r.Caption = area.Caption
	r.SortOrder = area.SortOrder
	r.Photos = area.Photos
	r.Metadata.FromModel(area.Metadata)
}

// TourResponse is the full photo tour of the villa, one entry per area
// in display order.
type TourResponse struct {
	Areas      []AreaResponse `json:"areas"`
	PhotoCount int            `json:"photo_count"`
}

func (r *TourResponse) FromModels(areas []model.Area) {
	r.Areas = make([]AreaResponse, len(areas))
	for i, area := range areas {
		r.Areas[i].FromModel(area)
		r.PhotoCount += len(area.Photos)
	}
}

type AddPhotoRequest struct {
	Photo     *multipart.FileHeader `json:"photo"  swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	PhotoFile multipart.File        `json:"-"`
}

type AddPhotoResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type RemovePhotoRequest struct {
	PhotoURL string `json:"photo_url" validate:"required,url"`
}
