package models

import "time"

type UtilityBill struct {
	ID            int       `json:"id"`
	BranchID      int       `json:"branch_id"`
	UtilityTypeID int       `json:"utility_type_id"`
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	UnitsUsed     float64   `json:"units_used"`
	Amount        float64   `json:"amount"`
	UploadedBy    int       `json:"uploaded_by"`
	UploadedAt    time.Time `json:"uploaded_at"`
	Status        int       `json:"status"`
}

type UtilityType struct {
	ID       int    `json:"id"`
	Name     string `json:"utility_name"`
	Category string `json:"category"`
}

type UploadBillRequest struct {
	BranchID      int     `json:"branch_id"`
	UtilityTypeID int     `json:"utility_type_id"`
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	UnitsUsed     float64 `json:"units_used"`
	Amount        float64 `json:"amount"`
	MediaType     string  `json:"media_type"`
}

type BillFilter struct {
	BranchID      int `json:"branch_id"`
	Year          int `json:"year"`
	Month         int `json:"month"`
	UtilityTypeID int `json:"utility_type_id"`
	Page          int `json:"page"`
	PageSize      int `json:"page_size"`
}

// BillListItem is the list projection with branch and type joined in.
type BillListItem struct {
	ID          int       `json:"id"`
	BranchName  string    `json:"branch_name"`
	UtilityName string    `json:"utility_name"`
	Category    string    `json:"category"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	UnitsUsed   float64   `json:"units_used"`
	Amount      float64   `json:"amount"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UploadedBy  *string   `json:"uploaded_by,omitempty"`
}

type BillPage struct {
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Bills    []*BillListItem `json:"utilities"`
}

type BillDetail struct {
	ID          int       `json:"id"`
	BranchName  string    `json:"branch_name"`
	UtilityName string    `json:"utility_name"`
	Category    string    `json:"category"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	UnitsUsed   float64   `json:"units_used"`
	Amount      float64   `json:"amount"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UploadedBy  string    `json:"uploaded_by"`
}

// BillFilterOptions feeds the expense page's filter dropdowns.
type BillFilterOptions struct {
	Years        []int          `json:"years"`
	Months       []int          `json:"months"`
	UtilityTypes []*UtilityType `json:"utility_types"`
	Branches     []*BranchRef   `json:"branches"`
}

type BranchRef struct {
	BranchID   int    `json:"branch_id"`
	BranchName string `json:"branch_name"`
}
