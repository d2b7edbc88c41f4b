package models

import "time"

type Media struct {
	ID            int       `json:"id"`
	Name          string    `json:"media_name"`
	Path          string    `json:"media_path"`
	MediaType     string    `json:"media_type"`
	UploadedBy    int       `json:"uploaded_by"`
	BusinessID    int       `json:"business_id"`
	BranchID      *int      `json:"branch_id"`
	UtilityBillID *int      `json:"utility_bill_id"`
	Status        int       `json:"status"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
