package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts travel as JSON strings ("1200.50").

type Resident struct {
	ID          string          `json:"id"`
	FlatNo      string          `json:"flat_no"`
	OwnerName   string          `json:"owner_name"`
	MaintAmount decimal.Decimal `json:"maint_amount"`
	Status      string          `json:"status"`
}

type Sheet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	State     string    `json:"state"`
}

type Collection struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	FlatNo    string          `json:"flat_no"`
	OwnerName string          `json:"owner_name"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode"`
	SheetID   string          `json:"sheet_id"`
}

type Expense struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	SheetID     string          `json:"sheet_id"`
}

type MonthlySummary struct {
	ID              string          `json:"id"`
	MonthName       string          `json:"month_name"`
	TotalCollection decimal.Decimal `json:"total_collection"`
	TotalExpense    decimal.Decimal `json:"total_expense"`
	Net             decimal.Decimal `json:"net"`
	CreatedAt       time.Time       `json:"created_at"`
}

type PaymentRow struct {
	FlatNo    string          `json:"flat_no"`
	OwnerName string          `json:"owner_name"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
}

type SheetSummary struct {
	SheetID   string          `json:"sheet_id"`
	Opening   decimal.Decimal `json:"opening"`
	Collected decimal.Decimal `json:"collected"`
	Spent     decimal.Decimal `json:"spent"`
	Closing   decimal.Decimal `json:"closing"`
	Overdrawn bool            `json:"overdrawn"`
}

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardView is one frame of the live dashboard.
type DashboardView struct {
	ActiveSheets  []*Sheet          `json:"active_sheets"`
	DeletedSheets []*Sheet          `json:"deleted_sheets"`
	Residents     []*Resident       `json:"residents"`
	Summaries     []*MonthlySummary `json:"summaries"`
	RunningTotal  decimal.Decimal   `json:"running_total"`

	Sheet        *Sheet        `json:"sheet,omitempty"`
	Payments     []*PaymentRow `json:"payments,omitempty"`
	Collections  []*Collection `json:"collections,omitempty"`
	Expenses     []*Expense    `json:"expenses,omitempty"`
	Summary      *SheetSummary `json:"summary,omitempty"`
	OpeningReady bool          `json:"opening_ready"`

	Error string `json:"error,omitempty"`
}
