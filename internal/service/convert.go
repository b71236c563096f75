package service

import (
	"time"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/dashboard"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/pkg/api"
)

func toAPIResident(r *models.Resident) *api.Resident {
	return &api.Resident{
		ID:          r.ID,
		FlatNo:      r.FlatNo,
		OwnerName:   r.OwnerName,
		MaintAmount: r.MaintAmount,
		Status:      string(r.Status),
	}
}

func toAPIResidents(residents []*models.Resident) []*api.Resident {
	out := make([]*api.Resident, len(residents))
	for i, r := range residents {
		out[i] = toAPIResident(r)
	}
	return out
}

func toAPISheet(s *models.Sheet) *api.Sheet {
	return &api.Sheet{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		State:     string(s.State),
	}
}

func toAPISheets(sheets []*models.Sheet) []*api.Sheet {
	out := make([]*api.Sheet, len(sheets))
	for i, s := range sheets {
		out[i] = toAPISheet(s)
	}
	return out
}

func toAPICollection(c *models.Collection) *api.Collection {
	return &api.Collection{
		ID:        c.ID,
		Date:      c.Date,
		FlatNo:    c.FlatNo,
		OwnerName: c.OwnerName,
		Amount:    c.Amount,
		Mode:      c.Mode,
		SheetID:   c.SheetID,
	}
}

func toAPICollections(collections []*models.Collection) []*api.Collection {
	out := make([]*api.Collection, len(collections))
	for i, c := range collections {
		out[i] = toAPICollection(c)
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		Date:        e.Date,
		Amount:      e.Amount,
		Description: e.Description,
		SheetID:     e.SheetID,
	}
}

func toAPIExpenses(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPISummary(m *models.MonthlySummary) *api.MonthlySummary {
	return &api.MonthlySummary{
		ID:              m.ID,
		MonthName:       m.MonthName,
		TotalCollection: m.TotalCollection,
		TotalExpense:    m.TotalExpense,
		Net:             m.Net(),
		CreatedAt:       m.CreatedAt,
	}
}

func toAPISummaries(summaries []*models.MonthlySummary) []*api.MonthlySummary {
	out := make([]*api.MonthlySummary, len(summaries))
	for i, m := range summaries {
		out[i] = toAPISummary(m)
	}
	return out
}

func toAPIPaymentRows(rows []calculator.PaymentRow) []*api.PaymentRow {
	out := make([]*api.PaymentRow, len(rows))
	for i, r := range rows {
		out[i] = &api.PaymentRow{
			FlatNo:    r.FlatNo,
			OwnerName: r.OwnerName,
			Status:    string(r.Status),
			Amount:    r.Amount,
		}
	}
	return out
}

func toAPISheetSummary(sheetID string, s calculator.SheetSummary) *api.SheetSummary {
	return &api.SheetSummary{
		SheetID:   sheetID,
		Opening:   s.Opening,
		Collected: s.Collected,
		Spent:     s.Spent,
		Closing:   s.Closing,
		Overdrawn: s.Overdrawn,
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   time.Unix(u.CreatedAt, 0).UTC(),
	}
}

func toAPIView(v dashboard.View) *api.DashboardView {
	out := &api.DashboardView{
		ActiveSheets:  toAPISheets(v.ActiveSheets),
		DeletedSheets: toAPISheets(v.DeletedSheets),
		Residents:     toAPIResidents(v.Residents),
		Summaries:     toAPISummaries(v.Summaries),
		RunningTotal:  v.RunningTotal,
		OpeningReady:  v.OpeningReady,
	}
	if v.Err != nil {
		out.Error = v.Err.Error()
	}
	if v.Sheet == nil {
		return out
	}
	out.Sheet = toAPISheet(v.Sheet)
	out.Payments = toAPIPaymentRows(v.Payments)
	out.Collections = toAPICollections(v.Collections)
	out.Expenses = toAPIExpenses(v.Expenses)
	out.Summary = toAPISheetSummary(v.Sheet.ID, v.SheetSummary)
	return out
}
