package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts in requests are strings so malformed input is reported as a
// validation error rather than a decode failure.

// ResidentService

type CreateResidentRequest struct {
	FlatNo      string `json:"flat_no"`
	OwnerName   string `json:"owner_name"`
	MaintAmount string `json:"maint_amount"`
	Status      string `json:"status"`
}

type UpdateResidentRequest struct {
	ID          string `json:"id"`
	FlatNo      string `json:"flat_no"`
	OwnerName   string `json:"owner_name"`
	MaintAmount string `json:"maint_amount"`
	Status      string `json:"status"`
}

type ResidentResponse struct {
	Resident *Resident `json:"resident"`
}

type GetResidentRequest struct {
	ID string `json:"id"`
}

type DeleteResidentRequest struct {
	ID string `json:"id"`
}

type ListResidentsRequest struct{}

type ListResidentsResponse struct {
	Residents []*Resident `json:"residents"`
}

type LookupByFlatRequest struct {
	FlatNo string `json:"flat_no"`
}

type LookupByFlatResponse struct {
	Found       bool            `json:"found"`
	OwnerName   string          `json:"owner_name"`
	MaintAmount decimal.Decimal `json:"maint_amount"`
}

// SheetService

type CreateSheetRequest struct {
	Name string `json:"name"`
}

type GetSheetRequest struct {
	ID string `json:"id"`
}

// SoftDeleteSheetRequest moves a sheet to the recycle bin. Confirm must be
// true; it records that the user acknowledged the prompt.
type SoftDeleteSheetRequest struct {
	ID      string `json:"id"`
	Confirm bool   `json:"confirm"`
}

type RestoreSheetRequest struct {
	ID string `json:"id"`
}

// PurgeSheetRequest permanently deletes a sheet from the recycle bin.
type PurgeSheetRequest struct {
	ID      string `json:"id"`
	Confirm bool   `json:"confirm"`
}

type SheetResponse struct {
	Sheet *Sheet `json:"sheet"`
}

type ListSheetsRequest struct{}

type ListSheetsResponse struct {
	Sheets []*Sheet `json:"sheets"`
}

// LedgerService

type AddCollectionRequest struct {
	SheetID   string `json:"sheet_id"`
	Date      string `json:"date"`
	FlatNo    string `json:"flat_no"`
	OwnerName string `json:"owner_name"`
	Amount    string `json:"amount"`
	Mode      string `json:"mode"`
}

type CollectionResponse struct {
	Collection *Collection `json:"collection"`
}

type AddExpenseRequest struct {
	SheetID     string `json:"sheet_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type ExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteRequest struct {
	ID string `json:"id"`
}

type SheetScopedRequest struct {
	SheetID string `json:"sheet_id"`
}

type ListCollectionsResponse struct {
	Collections []*Collection `json:"collections"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type SheetSummaryResponse struct {
	Summary *SheetSummary `json:"summary"`
}

type GetPaymentStatusRequest struct {
	SheetID string `json:"sheet_id"`
	// Filter is "all", "paid" or "pending". Anything else means all.
	Filter string `json:"filter"`
}

type GetPaymentStatusResponse struct {
	Rows []*PaymentRow `json:"rows"`
}

// SummaryService

type CreateSummaryRequest struct {
	MonthName       string `json:"month_name"`
	TotalCollection string `json:"total_collection"`
	TotalExpense    string `json:"total_expense"`
}

type UpdateSummaryRequest struct {
	ID              string `json:"id"`
	MonthName       string `json:"month_name"`
	TotalCollection string `json:"total_collection"`
	TotalExpense    string `json:"total_expense"`
}

type SummaryResponse struct {
	Summary *MonthlySummary `json:"summary"`
}

type ListSummariesRequest struct{}

type ListSummariesResponse struct {
	Summaries    []*MonthlySummary `json:"summaries"`
	RunningTotal decimal.Decimal   `json:"running_total"`
}

// AuthService

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type SignOutRequest struct{}

type GetCurrentUserRequest struct{}

type UserResponse struct {
	User *User `json:"user"`
}

// ExportService

type ExportSheetRequest struct {
	SheetID string `json:"sheet_id"`
}

type ExportSheetResponse struct {
	Filename string `json:"filename"`
	// Content is the .xlsx workbook, base64 on the wire.
	Content []byte `json:"content"`
}

type Empty struct{}

// DashboardService

// WatchRequest opens a dashboard stream. SheetID is optional; when set
// the stream also carries that sheet's detail view.
type WatchRequest struct {
	SheetID string `json:"sheet_id"`
	Filter  string `json:"filter"`
}
