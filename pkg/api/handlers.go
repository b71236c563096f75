package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

// ResidentServiceHandler is implemented by the server side of ResidentService.
type ResidentServiceHandler interface {
	CreateResident(context.Context, *connect.Request[CreateResidentRequest]) (*connect.Response[ResidentResponse], error)
	UpdateResident(context.Context, *connect.Request[UpdateResidentRequest]) (*connect.Response[ResidentResponse], error)
	DeleteResident(context.Context, *connect.Request[DeleteResidentRequest]) (*connect.Response[Empty], error)
	GetResident(context.Context, *connect.Request[GetResidentRequest]) (*connect.Response[ResidentResponse], error)
	ListResidents(context.Context, *connect.Request[ListResidentsRequest]) (*connect.Response[ListResidentsResponse], error)
	LookupByFlat(context.Context, *connect.Request[LookupByFlatRequest]) (*connect.Response[LookupByFlatResponse], error)
}

// NewResidentServiceHandler builds an HTTP handler from svc. It returns the path
// prefix to mount it on.
func NewResidentServiceHandler(svc ResidentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ResidentServiceCreateResidentProcedure, connect.NewUnaryHandler(ResidentServiceCreateResidentProcedure, svc.CreateResident, opts...))
	mux.Handle(ResidentServiceUpdateResidentProcedure, connect.NewUnaryHandler(ResidentServiceUpdateResidentProcedure, svc.UpdateResident, opts...))
	mux.Handle(ResidentServiceDeleteResidentProcedure, connect.NewUnaryHandler(ResidentServiceDeleteResidentProcedure, svc.DeleteResident, opts...))
	mux.Handle(ResidentServiceGetResidentProcedure, connect.NewUnaryHandler(ResidentServiceGetResidentProcedure, svc.GetResident, opts...))
	mux.Handle(ResidentServiceListResidentsProcedure, connect.NewUnaryHandler(ResidentServiceListResidentsProcedure, svc.ListResidents, opts...))
	mux.Handle(ResidentServiceLookupByFlatProcedure, connect.NewUnaryHandler(ResidentServiceLookupByFlatProcedure, svc.LookupByFlat, opts...))
	return "/" + ResidentServiceName + "/", mux
}

// SheetServiceHandler is implemented by the server side of SheetService.
type SheetServiceHandler interface {
	CreateSheet(context.Context, *connect.Request[CreateSheetRequest]) (*connect.Response[SheetResponse], error)
	GetSheet(context.Context, *connect.Request[GetSheetRequest]) (*connect.Response[SheetResponse], error)
	SoftDeleteSheet(context.Context, *connect.Request[SoftDeleteSheetRequest]) (*connect.Response[SheetResponse], error)
	RestoreSheet(context.Context, *connect.Request[RestoreSheetRequest]) (*connect.Response[SheetResponse], error)
	PurgeSheet(context.Context, *connect.Request[PurgeSheetRequest]) (*connect.Response[Empty], error)
	ListActiveSheets(context.Context, *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error)
	ListDeletedSheets(context.Context, *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error)
}

// NewSheetServiceHandler builds an HTTP handler from svc. It returns the path
// prefix to mount it on.
func NewSheetServiceHandler(svc SheetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SheetServiceCreateSheetProcedure, connect.NewUnaryHandler(SheetServiceCreateSheetProcedure, svc.CreateSheet, opts...))
	mux.Handle(SheetServiceGetSheetProcedure, connect.NewUnaryHandler(SheetServiceGetSheetProcedure, svc.GetSheet, opts...))
	mux.Handle(SheetServiceSoftDeleteSheetProcedure, connect.NewUnaryHandler(SheetServiceSoftDeleteSheetProcedure, svc.SoftDeleteSheet, opts...))
	mux.Handle(SheetServiceRestoreSheetProcedure, connect.NewUnaryHandler(SheetServiceRestoreSheetProcedure, svc.RestoreSheet, opts...))
	mux.Handle(SheetServicePurgeSheetProcedure, connect.NewUnaryHandler(SheetServicePurgeSheetProcedure, svc.PurgeSheet, opts...))
	mux.Handle(SheetServiceListActiveSheetsProcedure, connect.NewUnaryHandler(SheetServiceListActiveSheetsProcedure, svc.ListActiveSheets, opts...))
	mux.Handle(SheetServiceListDeletedSheetsProcedure, connect.NewUnaryHandler(SheetServiceListDeletedSheetsProcedure, svc.ListDeletedSheets, opts...))
	return "/" + SheetServiceName + "/", mux
}

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	AddCollection(context.Context, *connect.Request[AddCollectionRequest]) (*connect.Response[CollectionResponse], error)
	DeleteCollection(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[Empty], error)
	ListCollections(context.Context, *connect.Request[SheetScopedRequest]) (*connect.Response[ListCollectionsResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[ExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[Empty], error)
	ListExpenses(context.Context, *connect.Request[SheetScopedRequest]) (*connect.Response[ListExpensesResponse], error)
	GetSheetSummary(context.Context, *connect.Request[SheetScopedRequest]) (*connect.Response[SheetSummaryResponse], error)
	GetPaymentStatus(context.Context, *connect.Request[GetPaymentStatusRequest]) (*connect.Response[GetPaymentStatusResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from svc. It returns the path
// prefix to mount it on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddCollectionProcedure, connect.NewUnaryHandler(LedgerServiceAddCollectionProcedure, svc.AddCollection, opts...))
	mux.Handle(LedgerServiceDeleteCollectionProcedure, connect.NewUnaryHandler(LedgerServiceDeleteCollectionProcedure, svc.DeleteCollection, opts...))
	mux.Handle(LedgerServiceListCollectionsProcedure, connect.NewUnaryHandler(LedgerServiceListCollectionsProcedure, svc.ListCollections, opts...))
	mux.Handle(LedgerServiceAddExpenseProcedure, connect.NewUnaryHandler(LedgerServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerServiceDeleteExpenseProcedure, connect.NewUnaryHandler(LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(LedgerServiceListExpensesProcedure, connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(LedgerServiceGetSheetSummaryProcedure, connect.NewUnaryHandler(LedgerServiceGetSheetSummaryProcedure, svc.GetSheetSummary, opts...))
	mux.Handle(LedgerServiceGetPaymentStatusProcedure, connect.NewUnaryHandler(LedgerServiceGetPaymentStatusProcedure, svc.GetPaymentStatus, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// SummaryServiceHandler is implemented by the server side of SummaryService.
type SummaryServiceHandler interface {
	CreateSummary(context.Context, *connect.Request[CreateSummaryRequest]) (*connect.Response[SummaryResponse], error)
	UpdateSummary(context.Context, *connect.Request[UpdateSummaryRequest]) (*connect.Response[SummaryResponse], error)
	DeleteSummary(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[Empty], error)
	ListSummaries(context.Context, *connect.Request[ListSummariesRequest]) (*connect.Response[ListSummariesResponse], error)
}

// NewSummaryServiceHandler builds an HTTP handler from svc. It returns the path
// prefix to mount it on.
func NewSummaryServiceHandler(svc SummaryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(SummaryServiceCreateSummaryProcedure, connect.NewUnaryHandler(SummaryServiceCreateSummaryProcedure, svc.CreateSummary, opts...))
	mux.Handle(SummaryServiceUpdateSummaryProcedure, connect.NewUnaryHandler(SummaryServiceUpdateSummaryProcedure, svc.UpdateSummary, opts...))
	mux.Handle(SummaryServiceDeleteSummaryProcedure, connect.NewUnaryHandler(SummaryServiceDeleteSummaryProcedure, svc.DeleteSummary, opts...))
	mux.Handle(SummaryServiceListSummariesProcedure, connect.NewUnaryHandler(SummaryServiceListSummariesProcedure, svc.ListSummaries, opts...))
	return "/" + SummaryServiceName + "/", mux
}

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	SignIn(context.Context, *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error)
	SignOut(context.Context, *connect.Request[SignOutRequest]) (*connect.Response[Empty], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[UserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from svc. It returns the path
// prefix to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceSignInProcedure, connect.NewUnaryHandler(AuthServiceSignInProcedure, svc.SignIn, opts...))
	mux.Handle(AuthServiceSignOutProcedure, connect.NewUnaryHandler(AuthServiceSignOutProcedure, svc.SignOut, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + AuthServiceName + "/", mux
}

// ExportServiceHandler is implemented by the server side of ExportService.
type ExportServiceHandler interface {
	ExportSheet(context.Context, *connect.Request[ExportSheetRequest]) (*connect.Response[ExportSheetResponse], error)
}

// NewExportServiceHandler builds an HTTP handler from svc. It returns the path
// prefix to mount it on.
func NewExportServiceHandler(svc ExportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExportServiceExportSheetProcedure, connect.NewUnaryHandler(ExportServiceExportSheetProcedure, svc.ExportSheet, opts...))
	return "/" + ExportServiceName + "/", mux
}

// DashboardServiceHandler is implemented by the server side of DashboardService.
type DashboardServiceHandler interface {
	Watch(context.Context, *connect.Request[WatchRequest], *connect.ServerStream[DashboardView]) error
}

// NewDashboardServiceHandler builds an HTTP handler from svc. It returns the
// path prefix to mount it on.
func NewDashboardServiceHandler(svc DashboardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(DashboardServiceWatchProcedure, connect.NewServerStreamHandler(DashboardServiceWatchProcedure, svc.Watch, opts...))
	return "/" + DashboardServiceName + "/", mux
}
