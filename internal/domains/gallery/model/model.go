package model

import "seaview/shared/model"

const (
	TableName  = "gallery_areas"
	EntityName = "gallery_area"

	FieldID        = "id"
	FieldArea      = "area"
	FieldTitle     = "title"
	FieldCaption   = "caption"
	FieldSortOrder = "sort_order"
	FieldPhotos    = "photos"
)

// Area is one photographed section of the villa (pool, garden, master
// bedroom, ...). Areas are presented as a tour ordered by SortOrder.
type Area struct {
	ID        string   `db:"id"`
	Area      string   `db:"area"`
	Title     string   `db:"title"`
	Caption   string   `db:"caption"`
	SortOrder int      `db:"sort_order"`
	Photos    []string `db:"photos"`
	model.Metadata
}
