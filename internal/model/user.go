package model

const (
	RoleStaff = "staff"
	RoleOwner = "owner"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is a personnel record. The dashboard only projects name/role/status.
type User struct {
	BaseModel
	Name   string `db:"name" json:"name"`
	Email  string `db:"email" json:"email"`
	Role   string `db:"role" json:"role"`
	Status string `db:"status" json:"status"`
}
