package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// ResidentServiceClient calls ResidentService over Connect.
type ResidentServiceClient struct {
	createResident *connect.Client[CreateResidentRequest, ResidentResponse]
	updateResident *connect.Client[UpdateResidentRequest, ResidentResponse]
	deleteResident *connect.Client[DeleteResidentRequest, Empty]
	getResident    *connect.Client[GetResidentRequest, ResidentResponse]
	listResidents  *connect.Client[ListResidentsRequest, ListResidentsResponse]
	lookupByFlat   *connect.Client[LookupByFlatRequest, LookupByFlatResponse]
}

// NewResidentServiceClient creates a client for the server at baseURL.
func NewResidentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ResidentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ResidentServiceClient{
		createResident: connect.NewClient[CreateResidentRequest, ResidentResponse](httpClient, baseURL+ResidentServiceCreateResidentProcedure, opts...),
		updateResident: connect.NewClient[UpdateResidentRequest, ResidentResponse](httpClient, baseURL+ResidentServiceUpdateResidentProcedure, opts...),
		deleteResident: connect.NewClient[DeleteResidentRequest, Empty](httpClient, baseURL+ResidentServiceDeleteResidentProcedure, opts...),
		getResident:    connect.NewClient[GetResidentRequest, ResidentResponse](httpClient, baseURL+ResidentServiceGetResidentProcedure, opts...),
		listResidents:  connect.NewClient[ListResidentsRequest, ListResidentsResponse](httpClient, baseURL+ResidentServiceListResidentsProcedure, opts...),
		lookupByFlat:   connect.NewClient[LookupByFlatRequest, LookupByFlatResponse](httpClient, baseURL+ResidentServiceLookupByFlatProcedure, opts...),
	}
}

func (c *ResidentServiceClient) CreateResident(ctx context.Context, req *connect.Request[CreateResidentRequest]) (*connect.Response[ResidentResponse], error) {
	return c.createResident.CallUnary(ctx, req)
}

func (c *ResidentServiceClient) UpdateResident(ctx context.Context, req *connect.Request[UpdateResidentRequest]) (*connect.Response[ResidentResponse], error) {
	return c.updateResident.CallUnary(ctx, req)
}

func (c *ResidentServiceClient) DeleteResident(ctx context.Context, req *connect.Request[DeleteResidentRequest]) (*connect.Response[Empty], error) {
	return c.deleteResident.CallUnary(ctx, req)
}

func (c *ResidentServiceClient) GetResident(ctx context.Context, req *connect.Request[GetResidentRequest]) (*connect.Response[ResidentResponse], error) {
	return c.getResident.CallUnary(ctx, req)
}

func (c *ResidentServiceClient) ListResidents(ctx context.Context, req *connect.Request[ListResidentsRequest]) (*connect.Response[ListResidentsResponse], error) {
	return c.listResidents.CallUnary(ctx, req)
}

func (c *ResidentServiceClient) LookupByFlat(ctx context.Context, req *connect.Request[LookupByFlatRequest]) (*connect.Response[LookupByFlatResponse], error) {
	return c.lookupByFlat.CallUnary(ctx, req)
}

// SheetServiceClient calls SheetService over Connect.
type SheetServiceClient struct {
	createSheet       *connect.Client[CreateSheetRequest, SheetResponse]
	getSheet          *connect.Client[GetSheetRequest, SheetResponse]
	softDeleteSheet   *connect.Client[SoftDeleteSheetRequest, SheetResponse]
	restoreSheet      *connect.Client[RestoreSheetRequest, SheetResponse]
	purgeSheet        *connect.Client[PurgeSheetRequest, Empty]
	listActiveSheets  *connect.Client[ListSheetsRequest, ListSheetsResponse]
	listDeletedSheets *connect.Client[ListSheetsRequest, ListSheetsResponse]
}

// NewSheetServiceClient creates a client for the server at baseURL.
func NewSheetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SheetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SheetServiceClient{
		createSheet:       connect.NewClient[CreateSheetRequest, SheetResponse](httpClient, baseURL+SheetServiceCreateSheetProcedure, opts...),
		getSheet:          connect.NewClient[GetSheetRequest, SheetResponse](httpClient, baseURL+SheetServiceGetSheetProcedure, opts...),
		softDeleteSheet:   connect.NewClient[SoftDeleteSheetRequest, SheetResponse](httpClient, baseURL+SheetServiceSoftDeleteSheetProcedure, opts...),
		restoreSheet:      connect.NewClient[RestoreSheetRequest, SheetResponse](httpClient, baseURL+SheetServiceRestoreSheetProcedure, opts...),
		purgeSheet:        connect.NewClient[PurgeSheetRequest, Empty](httpClient, baseURL+SheetServicePurgeSheetProcedure, opts...),
		listActiveSheets:  connect.NewClient[ListSheetsRequest, ListSheetsResponse](httpClient, baseURL+SheetServiceListActiveSheetsProcedure, opts...),
		listDeletedSheets: connect.NewClient[ListSheetsRequest, ListSheetsResponse](httpClient, baseURL+SheetServiceListDeletedSheetsProcedure, opts...),
	}
}

func (c *SheetServiceClient) CreateSheet(ctx context.Context, req *connect.Request[CreateSheetRequest]) (*connect.Response[SheetResponse], error) {
	return c.createSheet.CallUnary(ctx, req)
}

func (c *SheetServiceClient) GetSheet(ctx context.Context, req *connect.Request[GetSheetRequest]) (*connect.Response[SheetResponse], error) {
	return c.getSheet.CallUnary(ctx, req)
}

func (c *SheetServiceClient) SoftDeleteSheet(ctx context.Context, req *connect.Request[SoftDeleteSheetRequest]) (*connect.Response[SheetResponse], error) {
	return c.softDeleteSheet.CallUnary(ctx, req)
}

func (c *SheetServiceClient) RestoreSheet(ctx context.Context, req *connect.Request[RestoreSheetRequest]) (*connect.Response[SheetResponse], error) {
	return c.restoreSheet.CallUnary(ctx, req)
}

func (c *SheetServiceClient) PurgeSheet(ctx context.Context, req *connect.Request[PurgeSheetRequest]) (*connect.Response[Empty], error) {
	return c.purgeSheet.CallUnary(ctx, req)
}

func (c *SheetServiceClient) ListActiveSheets(ctx context.Context, req *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error) {
	return c.listActiveSheets.CallUnary(ctx, req)
}

func (c *SheetServiceClient) ListDeletedSheets(ctx context.Context, req *connect.Request[ListSheetsRequest]) (*connect.Response[ListSheetsResponse], error) {
	return c.listDeletedSheets.CallUnary(ctx, req)
}

// LedgerServiceClient calls LedgerService over Connect.
type LedgerServiceClient struct {
	addCollection    *connect.Client[AddCollectionRequest, CollectionResponse]
	deleteCollection *connect.Client[DeleteRequest, Empty]
	listCollections  *connect.Client[SheetScopedRequest, ListCollectionsResponse]
	addExpense       *connect.Client[AddExpenseRequest, ExpenseResponse]
	deleteExpense    *connect.Client[DeleteRequest, Empty]
	listExpenses     *connect.Client[SheetScopedRequest, ListExpensesResponse]
	getSheetSummary  *connect.Client[SheetScopedRequest, SheetSummaryResponse]
	getPaymentStatus *connect.Client[GetPaymentStatusRequest, GetPaymentStatusResponse]
}

// NewLedgerServiceClient creates a client for the server at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		addCollection:    connect.NewClient[AddCollectionRequest, CollectionResponse](httpClient, baseURL+LedgerServiceAddCollectionProcedure, opts...),
		deleteCollection: connect.NewClient[DeleteRequest, Empty](httpClient, baseURL+LedgerServiceDeleteCollectionProcedure, opts...),
		listCollections:  connect.NewClient[SheetScopedRequest, ListCollectionsResponse](httpClient, baseURL+LedgerServiceListCollectionsProcedure, opts...),
		addExpense:       connect.NewClient[AddExpenseRequest, ExpenseResponse](httpClient, baseURL+LedgerServiceAddExpenseProcedure, opts...),
		deleteExpense:    connect.NewClient[DeleteRequest, Empty](httpClient, baseURL+LedgerServiceDeleteExpenseProcedure, opts...),
		listExpenses:     connect.NewClient[SheetScopedRequest, ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		getSheetSummary:  connect.NewClient[SheetScopedRequest, SheetSummaryResponse](httpClient, baseURL+LedgerServiceGetSheetSummaryProcedure, opts...),
		getPaymentStatus: connect.NewClient[GetPaymentStatusRequest, GetPaymentStatusResponse](httpClient, baseURL+LedgerServiceGetPaymentStatusProcedure, opts...),
	}
}

func (c *LedgerServiceClient) AddCollection(ctx context.Context, req *connect.Request[AddCollectionRequest]) (*connect.Response[CollectionResponse], error) {
	return c.addCollection.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteCollection(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[Empty], error) {
	return c.deleteCollection.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListCollections(ctx context.Context, req *connect.Request[SheetScopedRequest]) (*connect.Response[ListCollectionsResponse], error) {
	return c.listCollections.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[Empty], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[SheetScopedRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetSheetSummary(ctx context.Context, req *connect.Request[SheetScopedRequest]) (*connect.Response[SheetSummaryResponse], error) {
	return c.getSheetSummary.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetPaymentStatus(ctx context.Context, req *connect.Request[GetPaymentStatusRequest]) (*connect.Response[GetPaymentStatusResponse], error) {
	return c.getPaymentStatus.CallUnary(ctx, req)
}

// SummaryServiceClient calls SummaryService over Connect.
type SummaryServiceClient struct {
	createSummary *connect.Client[CreateSummaryRequest, SummaryResponse]
	updateSummary *connect.Client[UpdateSummaryRequest, SummaryResponse]
	deleteSummary *connect.Client[DeleteRequest, Empty]
	listSummaries *connect.Client[ListSummariesRequest, ListSummariesResponse]
}

// NewSummaryServiceClient creates a client for the server at baseURL.
func NewSummaryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SummaryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SummaryServiceClient{
		createSummary: connect.NewClient[CreateSummaryRequest, SummaryResponse](httpClient, baseURL+SummaryServiceCreateSummaryProcedure, opts...),
		updateSummary: connect.NewClient[UpdateSummaryRequest, SummaryResponse](httpClient, baseURL+SummaryServiceUpdateSummaryProcedure, opts...),
		deleteSummary: connect.NewClient[DeleteRequest, Empty](httpClient, baseURL+SummaryServiceDeleteSummaryProcedure, opts...),
		listSummaries: connect.NewClient[ListSummariesRequest, ListSummariesResponse](httpClient, baseURL+SummaryServiceListSummariesProcedure, opts...),
	}
}

func (c *SummaryServiceClient) CreateSummary(ctx context.Context, req *connect.Request[CreateSummaryRequest]) (*connect.Response[SummaryResponse], error) {
	return c.createSummary.CallUnary(ctx, req)
}

func (c *SummaryServiceClient) UpdateSummary(ctx context.Context, req *connect.Request[UpdateSummaryRequest]) (*connect.Response[SummaryResponse], error) {
	return c.updateSummary.CallUnary(ctx, req)
}

func (c *SummaryServiceClient) DeleteSummary(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[Empty], error) {
	return c.deleteSummary.CallUnary(ctx, req)
}

func (c *SummaryServiceClient) ListSummaries(ctx context.Context, req *connect.Request[ListSummariesRequest]) (*connect.Response[ListSummariesResponse], error) {
	return c.listSummaries.CallUnary(ctx, req)
}

// AuthServiceClient calls AuthService over Connect.
type AuthServiceClient struct {
	signIn         *connect.Client[SignInRequest, SignInResponse]
	signOut        *connect.Client[SignOutRequest, Empty]
	getCurrentUser *connect.Client[GetCurrentUserRequest, UserResponse]
}

// NewAuthServiceClient creates a client for the server at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AuthServiceClient{
		signIn:         connect.NewClient[SignInRequest, SignInResponse](httpClient, baseURL+AuthServiceSignInProcedure, opts...),
		signOut:        connect.NewClient[SignOutRequest, Empty](httpClient, baseURL+AuthServiceSignOutProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, UserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
	}
}

func (c *AuthServiceClient) SignIn(ctx context.Context, req *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error) {
	return c.signIn.CallUnary(ctx, req)
}

func (c *AuthServiceClient) SignOut(ctx context.Context, req *connect.Request[SignOutRequest]) (*connect.Response[Empty], error) {
	return c.signOut.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[UserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// ExportServiceClient calls ExportService over Connect.
type ExportServiceClient struct {
	exportSheet *connect.Client[ExportSheetRequest, ExportSheetResponse]
}

// NewExportServiceClient creates a client for the server at baseURL.
func NewExportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ExportServiceClient{
		exportSheet: connect.NewClient[ExportSheetRequest, ExportSheetResponse](httpClient, baseURL+ExportServiceExportSheetProcedure, opts...),
	}
}

func (c *ExportServiceClient) ExportSheet(ctx context.Context, req *connect.Request[ExportSheetRequest]) (*connect.Response[ExportSheetResponse], error) {
	return c.exportSheet.CallUnary(ctx, req)
}

// DashboardServiceClient calls DashboardService over Connect.
type DashboardServiceClient struct {
	watch *connect.Client[WatchRequest, DashboardView]
}

// NewDashboardServiceClient creates a client for the server at baseURL.
func NewDashboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DashboardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &DashboardServiceClient{
		watch: connect.NewClient[WatchRequest, DashboardView](httpClient, baseURL+DashboardServiceWatchProcedure, opts...),
	}
}

// Watch streams dashboard views until ctx is cancelled.
func (c *DashboardServiceClient) Watch(ctx context.Context, req *connect.Request[WatchRequest]) (*connect.ServerStreamForClient[DashboardView], error) {
	return c.watch.CallServerStream(ctx, req)
}
