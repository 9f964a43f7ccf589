package dto

import (
	"github.com/google/uuid"

	"seaview/internal/domains/block/model"
	"seaview/shared"
	"seaview/shared/daterange"
	gDto "seaview/shared/dto"
	gModel "seaview/shared/model"
	"seaview/shared/timezone"
)

type CreateBlockRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
	Reason    string `json:"reason"     validate:"omitempty,max=200"`
}

// Range validates the inclusive bounds by converting them to the half-open
// convention; the stored model keeps the inclusive dates as submitted.
func (c *CreateBlockRequest) Range() (daterange.DateRange, error) {
	start, err := daterange.ParseDate(c.StartDate)
	if err != nil {
		return daterange.DateRange{}, err
	}

	end, err := daterange.ParseDate(c.EndDate)
	if err != nil {
		return daterange.DateRange{}, err
	}

	return daterange.FromInclusive(start, end)
}

func (c *CreateBlockRequest) ToModel(user string) (model.BlockedRange, error) {
	start, err := daterange.ParseDate(c.StartDate)
	if err != nil {
		return model.BlockedRange{}, err
	}

	end, err := daterange.ParseDate(c.EndDate)
	if err != nil {
		return model.BlockedRange{}, err
	}

	var reason *string
	if c.Reason != "" {
		reason = &c.Reason
	}

	return model.BlockedRange{
		ID:        uuid.NewString(),
		StartDate: daterange.Truncate(start),
		EndDate:   daterange.Truncate(end),
		Reason:    reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BlockResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
	gDto.Metadata
}

func (r *BlockResponse) FromModel(mod model.BlockedRange) {
	r.ID = mod.ID
	r.StartDate = mod.StartDate.Format(daterange.DateLayout)
	r.EndDate = mod.EndDate.Format(daterange.DateLayout)

	if mod.Reason != nil {
		r.Reason = *mod.Reason
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBlocksResponse struct {
	Blocks    []BlockResponse `json:"blocks"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetBlocksResponse) FromModels(models []model.BlockedRange, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Blocks = make([]BlockResponse, len(models))
	for i, mod := range models {
		r.Blocks[i].FromModel(mod)
	}
}
