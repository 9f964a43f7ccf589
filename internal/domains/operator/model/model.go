package model

import (
	"time"

	"seaview/shared/model"
)

const (
	TableName  = "operators"
	EntityName = "operator"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldFullName  = "full_name"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

// Operator is a staff account with access to the admin surface. There is no
// guest registration; accounts are provisioned by an admin or seeded.
type Operator struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	FullName  *string    `db:"full_name"`
	LastLogin *time.Time `db:"last_login"`
	Active    bool       `db:"active"`
	model.Metadata
}
