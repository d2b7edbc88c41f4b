package models

import "time"

// Request status transitions once: pending -> approved | rejected.
const (
	ReqStatusPending  = "pending"
	ReqStatusApproved = "approved"
	ReqStatusRejected = "rejected"
)

type Business struct {
	ID            int       `json:"business_id"`
	Name          string    `json:"business_name"`
	Industry      string    `json:"industry"`
	Email         string    `json:"email"`
	ContactPerson string    `json:"contact_person"`
	Status        int       `json:"status"`
	ReqStatus     string    `json:"req_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// PendingAdmin is the not-yet-promoted admin credential captured at
// registration time. Approval turns it into a User; rejection discards it.
type PendingAdmin struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"user_email"`
	ContactNo  string `json:"contact_no"`
	Password   string `json:"-"`
	BusinessID int    `json:"business_id"`
}

type RegisterBusinessRequest struct {
	BusinessName  string `json:"business_name"`
	Industry      string `json:"industry"`
	ContactPerson string `json:"contact_person"`
	UserEmail     string `json:"user_email"`
	Username      string `json:"username"`
	ContactNo     string `json:"contact_no"`
	Password      string `json:"password"`
}

type UpdateBusinessRequest struct {
	BusinessName  *string `json:"business_name"`
	Industry      *string `json:"industry"`
	ContactPerson *string `json:"contact_person"`
}

// BusinessDetail is the super-admin view of a single business with
// aggregate counts.
type BusinessDetail struct {
	Business      Business `json:"business"`
	TotalBranches int      `json:"total_branches"`
	TotalUsers    int      `json:"total_users"`
}
