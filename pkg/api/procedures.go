package api

// Fully-qualified service names.
const (
	ResidentServiceName  = "society.v1.ResidentService"
	SheetServiceName     = "society.v1.SheetService"
	LedgerServiceName    = "society.v1.LedgerService"
	SummaryServiceName   = "society.v1.SummaryService"
	AuthServiceName      = "society.v1.AuthService"
	ExportServiceName    = "society.v1.ExportService"
	DashboardServiceName = "society.v1.DashboardService"
)

// Procedure paths, "/<service>/<method>".
const (
	ResidentServiceCreateResidentProcedure = "/society.v1.ResidentService/CreateResident"
	ResidentServiceUpdateResidentProcedure = "/society.v1.ResidentService/UpdateResident"
	ResidentServiceDeleteResidentProcedure = "/society.v1.ResidentService/DeleteResident"
	ResidentServiceGetResidentProcedure    = "/society.v1.ResidentService/GetResident"
	ResidentServiceListResidentsProcedure  = "/society.v1.ResidentService/ListResidents"
	ResidentServiceLookupByFlatProcedure   = "/society.v1.ResidentService/LookupByFlat"
	SheetServiceCreateSheetProcedure       = "/society.v1.SheetService/CreateSheet"
	SheetServiceGetSheetProcedure          = "/society.v1.SheetService/GetSheet"
	SheetServiceSoftDeleteSheetProcedure   = "/society.v1.SheetService/SoftDeleteSheet"
	SheetServiceRestoreSheetProcedure      = "/society.v1.SheetService/RestoreSheet"
	SheetServicePurgeSheetProcedure        = "/society.v1.SheetService/PurgeSheet"
	SheetServiceListActiveSheetsProcedure  = "/society.v1.SheetService/ListActiveSheets"
	SheetServiceListDeletedSheetsProcedure = "/society.v1.SheetService/ListDeletedSheets"
	LedgerServiceAddCollectionProcedure    = "/society.v1.LedgerService/AddCollection"
	LedgerServiceDeleteCollectionProcedure = "/society.v1.LedgerService/DeleteCollection"
	LedgerServiceListCollectionsProcedure  = "/society.v1.LedgerService/ListCollections"
	LedgerServiceAddExpenseProcedure       = "/society.v1.LedgerService/AddExpense"
	LedgerServiceDeleteExpenseProcedure    = "/society.v1.LedgerService/DeleteExpense"
	LedgerServiceListExpensesProcedure     = "/society.v1.LedgerService/ListExpenses"
	LedgerServiceGetSheetSummaryProcedure  = "/society.v1.LedgerService/GetSheetSummary"
	LedgerServiceGetPaymentStatusProcedure = "/society.v1.LedgerService/GetPaymentStatus"
	SummaryServiceCreateSummaryProcedure   = "/society.v1.SummaryService/CreateSummary"
	SummaryServiceUpdateSummaryProcedure   = "/society.v1.SummaryService/UpdateSummary"
	SummaryServiceDeleteSummaryProcedure   = "/society.v1.SummaryService/DeleteSummary"
	SummaryServiceListSummariesProcedure   = "/society.v1.SummaryService/ListSummaries"
	AuthServiceSignInProcedure             = "/society.v1.AuthService/SignIn"
	AuthServiceSignOutProcedure            = "/society.v1.AuthService/SignOut"
	AuthServiceGetCurrentUserProcedure     = "/society.v1.AuthService/GetCurrentUser"
	ExportServiceExportSheetProcedure      = "/society.v1.ExportService/ExportSheet"
	DashboardServiceWatchProcedure         = "/society.v1.DashboardService/Watch"
)
