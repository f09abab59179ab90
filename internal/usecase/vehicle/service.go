package vehicle

import (
	"context"
	"errors"

	"go.uber.org/zap"

	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/logger"
	appErrors "fleet-mileage-monitor/pkg/errors"
	"fleet-mileage-monitor/pkg/utils"
)

// Service implements vehicle metadata use cases
type Service struct {
	vehicleRepo domainVehicle.Repository
}

// NewService creates a new vehicle service
func NewService(vehicleRepo domainVehicle.Repository) *Service {
	return &Service{vehicleRepo: vehicleRepo}
}

func (s *Service) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*VehicleResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	// Check if a vehicle is already bound to the device
	existing, err := s.vehicleRepo.GetByDeviceID(ctx, req.DeviceID)
	if err != nil && !errors.Is(err, domainVehicle.ErrVehicleNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewAppError("VEHICLE_EXISTS", "A vehicle is already bound to this device", domainVehicle.ErrVehicleAlreadyExists)
	}

	deviceID := req.DeviceID
	v := &domainVehicle.Vehicle{
		DeviceID:         &deviceID,
		Code:             req.Code,
		IMEI:             utils.SanitizeOptional(req.IMEI),
		DisplayName:      utils.SanitizeOptional(req.DisplayName),
		Brand:            utils.SanitizeOptional(req.Brand),
		Class:            utils.SanitizeOptional(req.Class),
		Model:            utils.SanitizeOptional(req.Model),
		Type:             utils.SanitizeOptional(req.Type),
		Year:             req.Year,
		Plate:            sanitizePlate(req.Plate),
		Area:             utils.SanitizeOptional(req.Area),
		ResponsibleParty: utils.SanitizeOptional(req.ResponsibleParty),
		ManagementGroup:  utils.SanitizeOptional(req.ManagementGroup),
	}

	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	logger.Info("Vehicle created",
		zap.Int64("vehicle_id", v.ID),
		zap.Int64("device_id", deviceID),
		zap.String("event", "vehicle_created"),
	)

	return ToVehicleResponse(v), nil
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*VehicleResponse, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToVehicleResponse(v), nil
}

func (s *Service) UpdateVehicle(ctx context.Context, id int64, req *UpdateVehicleRequest) (*VehicleResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DeviceID != nil && (v.DeviceID == nil || *v.DeviceID != *req.DeviceID) {
		other, err := s.vehicleRepo.GetByDeviceID(ctx, *req.DeviceID)
		if err != nil && !errors.Is(err, domainVehicle.ErrVehicleNotFound) {
			return nil, err
		}
		if other != nil && other.ID != v.ID {
			return nil, appErrors.NewAppError("VEHICLE_EXISTS", "A vehicle is already bound to this device", domainVehicle.ErrVehicleAlreadyExists)
		}
		v.DeviceID = req.DeviceID
	}

	if req.Code != nil {
		v.Code = req.Code
	}
	if req.Year != nil {
		v.Year = req.Year
	}
	if req.Plate != nil {
		v.Plate = sanitizePlate(req.Plate)
	}
	applyText(&v.IMEI, req.IMEI)
	applyText(&v.DisplayName, req.DisplayName)
	applyText(&v.Brand, req.Brand)
	applyText(&v.Class, req.Class)
	applyText(&v.Model, req.Model)
	applyText(&v.Type, req.Type)
	applyText(&v.Area, req.Area)
	applyText(&v.ResponsibleParty, req.ResponsibleParty)
	applyText(&v.ManagementGroup, req.ManagementGroup)

	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	logger.Info("Vehicle updated",
		zap.Int64("vehicle_id", v.ID),
		zap.String("event", "vehicle_updated"),
	)

	return ToVehicleResponse(v), nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Vehicle deleted",
		zap.Int64("vehicle_id", id),
		zap.String("event", "vehicle_deleted"),
	)
	return nil
}

func (s *Service) ListVehicles(ctx context.Context, req *VehicleFilterRequest) (*VehicleListResponse, error) {
	if req == nil {
		req = &VehicleFilterRequest{}
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	filter := ToDomainFilter(req)
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	vehicles, total, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		responses[i] = *ToVehicleResponse(v)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &VehicleListResponse{
		Vehicles:   responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// applyText sets a present value; an empty string clears the field.
func applyText(dst **string, value *string) {
	if value == nil {
		return
	}
	*dst = utils.SanitizeOptional(value)
}

func sanitizePlate(plate *string) *string {
	if plate == nil {
		return nil
	}
	p := utils.SanitizePlate(*plate)
	if p == "" {
		return nil
	}
	return &p
}
