package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
	"github.com/mmynk/societyledger/pkg/api"
)

// ResidentService implements the Connect ResidentService
type ResidentService struct {
	store storage.ResidentStore
}

// NewResidentService creates a new ResidentService with the given storage backend.
func NewResidentService(store storage.ResidentStore) *ResidentService {
	return &ResidentService{store: store}
}

// residentFromForm builds a validated resident from submitted fields.
func residentFromForm(id, flatNo, ownerName, maintAmount, status string) (*models.Resident, error) {
	amount, err := parseAmount("maint_amount", maintAmount)
	if err != nil {
		return nil, err
	}
	st, err := models.ParseResidentStatus(status)
	if err != nil {
		return nil, err
	}

	r := &models.Resident{
		ID:          id,
		FlatNo:      models.NormalizeFlatNo(flatNo),
		OwnerName:   strings.TrimSpace(ownerName),
		MaintAmount: amount,
		Status:      st,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateResident adds a flat to the roster.
func (s *ResidentService) CreateResident(ctx context.Context, req *connect.Request[api.CreateResidentRequest]) (*connect.Response[api.ResidentResponse], error) {
	slog.Info("CreateResident request received", "flat_no", req.Msg.FlatNo)

	resident, err := residentFromForm("", req.Msg.FlatNo, req.Msg.OwnerName, req.Msg.MaintAmount, req.Msg.Status)
	if err != nil {
		slog.Warn("CreateResident rejected", "flat_no", req.Msg.FlatNo, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.CreateResident(ctx, resident); err != nil {
		slog.Error("CreateResident failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Resident created", "resident_id", resident.ID, "flat_no", resident.FlatNo)
	return connect.NewResponse(&api.ResidentResponse{Resident: toAPIResident(resident)}), nil
}

// UpdateResident overwrites a resident's fields. No history is kept.
func (s *ResidentService) UpdateResident(ctx context.Context, req *connect.Request[api.UpdateResidentRequest]) (*connect.Response[api.ResidentResponse], error) {
	slog.Info("UpdateResident request received", "resident_id", req.Msg.ID)

	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	resident, err := residentFromForm(req.Msg.ID, req.Msg.FlatNo, req.Msg.OwnerName, req.Msg.MaintAmount, req.Msg.Status)
	if err != nil {
		slog.Warn("UpdateResident rejected", "resident_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateResident(ctx, resident); err != nil {
		slog.Error("UpdateResident failed", "resident_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Resident updated", "resident_id", resident.ID)
	return connect.NewResponse(&api.ResidentResponse{Resident: toAPIResident(resident)}), nil
}

// DeleteResident removes a resident. Collections already logged for the
// flat are kept.
func (s *ResidentService) DeleteResident(ctx context.Context, req *connect.Request[api.DeleteResidentRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("DeleteResident request received", "resident_id", req.Msg.ID)

	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteResident(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteResident failed", "resident_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Resident deleted", "resident_id", req.Msg.ID)
	return connect.NewResponse(&api.Empty{}), nil
}

// GetResident retrieves a resident by ID.
func (s *ResidentService) GetResident(ctx context.Context, req *connect.Request[api.GetResidentRequest]) (*connect.Response[api.ResidentResponse], error) {
	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	resident, err := s.store.GetResident(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetResident failed", "resident_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ResidentResponse{Resident: toAPIResident(resident)}), nil
}

// ListResidents returns the roster ordered by flat number.
func (s *ResidentService) ListResidents(ctx context.Context, req *connect.Request[api.ListResidentsRequest]) (*connect.Response[api.ListResidentsResponse], error) {
	residents, err := s.store.ListResidents(ctx)
	if err != nil {
		slog.Error("ListResidents failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListResidents successful", "count", len(residents))
	return connect.NewResponse(&api.ListResidentsResponse{
		Residents: toAPIResidents(calculator.SortResidents(residents)),
	}), nil
}

// LookupByFlat returns the owner and maintenance amount for a flat so a
// payment form can be prefilled. Found is false for an unknown flat.
func (s *ResidentService) LookupByFlat(ctx context.Context, req *connect.Request[api.LookupByFlatRequest]) (*connect.Response[api.LookupByFlatResponse], error) {
	resident, err := findByFlat(ctx, s.store, req.Msg.FlatNo)
	if err != nil {
		slog.Error("LookupByFlat failed", "flat_no", req.Msg.FlatNo, "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.LookupByFlatResponse{}
	if resident != nil {
		resp.Found = true
		resp.OwnerName = resident.OwnerName
		resp.MaintAmount = resident.MaintAmount
	}
	return connect.NewResponse(resp), nil
}

// findByFlat returns the first resident whose normalized flat number
// matches, or nil.
func findByFlat(ctx context.Context, store storage.ResidentStore, flatNo string) (*models.Resident, error) {
	key := models.NormalizeFlatNo(flatNo)
	if key == "" {
		return nil, models.ErrEmptyFlatNo
	}
	residents, err := store.ListResidents(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range calculator.SortResidents(residents) {
		if models.NormalizeFlatNo(r.FlatNo) == key {
			return r, nil
		}
	}
	return nil, nil
}
