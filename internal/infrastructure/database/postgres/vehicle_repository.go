package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	domainVehicle "fleet-mileage-monitor/internal/domain/vehicle"
	"fleet-mileage-monitor/internal/infrastructure/database/postgres/models"
)

// VehicleRepository implements domainVehicle.Repository
type VehicleRepository struct {
	db *DB
}

func NewVehicleRepository(db *DB) domainVehicle.Repository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domainVehicle.Vehicle) error {
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now

	dbModel := toVehicleModel(v)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicate(err) {
			return domainVehicle.ErrVehicleAlreadyExists
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	v.ID = dbModel.ID
	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domainVehicle.Vehicle, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *VehicleRepository) GetByDeviceID(ctx context.Context, deviceID int64) (*domainVehicle.Vehicle, error) {
	return r.first(ctx, "device_id = ?", deviceID)
}

func (r *VehicleRepository) first(ctx context.Context, query string, arg any) (*domainVehicle.Vehicle, error) {
	var dbModel models.VehicleModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainVehicle.ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return toVehicleEntity(&dbModel), nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domainVehicle.Vehicle) error {
	v.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.VehicleModel{}).
		Where("id = ?", v.ID).
		Updates(map[string]interface{}{
			"device_id":         v.DeviceID,
			"code":              v.Code,
			"group_id":          v.GroupID,
			"group_title":       v.GroupTitle,
			"imei":              v.IMEI,
			"display_name":      v.DisplayName,
			"brand":             v.Brand,
			"class":             v.Class,
			"model":             v.Model,
			"type":              v.Type,
			"year":              v.Year,
			"plate":             v.Plate,
			"area":              v.Area,
			"responsible_party": v.ResponsibleParty,
			"management_group":  v.ManagementGroup,
			"updated_at":        v.UpdatedAt,
		})

	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domainVehicle.ErrVehicleAlreadyExists
		}
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainVehicle.ErrVehicleNotFound
	}

	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.VehicleModel{}, id)

	if result.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainVehicle.ErrVehicleNotFound
	}

	return nil
}

func (r *VehicleRepository) List(ctx context.Context, filter *domainVehicle.Filter) ([]*domainVehicle.Vehicle, int64, error) {
	if filter == nil {
		filter = &domainVehicle.Filter{}
	}

	var dbModels []models.VehicleModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.VehicleModel{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		db = db.Where(
			"LOWER(display_name) LIKE ? OR LOWER(plate) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?",
			like, like, like, like,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	err := db.Order("display_name ASC").
		Order("plate ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return toVehicleEntities(dbModels), total, nil
}

func (r *VehicleRepository) ListByDeviceIDs(ctx context.Context, deviceIDs []int64) ([]*domainVehicle.Vehicle, error) {
	if len(deviceIDs) == 0 {
		return []*domainVehicle.Vehicle{}, nil
	}

	var dbModels []models.VehicleModel
	err := r.db.DB.WithContext(ctx).
		Where("device_id IN ?", deviceIDs).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles by device: %w", err)
	}

	return toVehicleEntities(dbModels), nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint")
}

func toVehicleModel(v *domainVehicle.Vehicle) *models.VehicleModel {
	return &models.VehicleModel{
		ID:               v.ID,
		DeviceID:         v.DeviceID,
		Code:             v.Code,
		GroupID:          v.GroupID,
		GroupTitle:       v.GroupTitle,
		IMEI:             v.IMEI,
		DisplayName:      v.DisplayName,
		Brand:            v.Brand,
		Class:            v.Class,
		Model:            v.Model,
		Type:             v.Type,
		Year:             v.Year,
		Plate:            v.Plate,
		Area:             v.Area,
		ResponsibleParty: v.ResponsibleParty,
		ManagementGroup:  v.ManagementGroup,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func toVehicleEntity(m *models.VehicleModel) *domainVehicle.Vehicle {
	return &domainVehicle.Vehicle{
		ID:               m.ID,
		DeviceID:         m.DeviceID,
		Code:             m.Code,
		GroupID:          m.GroupID,
		GroupTitle:       m.GroupTitle,
		IMEI:             m.IMEI,
		DisplayName:      m.DisplayName,
		Brand:            m.Brand,
		Class:            m.Class,
		Model:            m.Model,
		Type:             m.Type,
		Year:             m.Year,
		Plate:            m.Plate,
		Area:             m.Area,
		ResponsibleParty: m.ResponsibleParty,
		ManagementGroup:  m.ManagementGroup,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toVehicleEntities(dbModels []models.VehicleModel) []*domainVehicle.Vehicle {
	vehicles := make([]*domainVehicle.Vehicle, len(dbModels))
	for i := range dbModels {
		vehicles[i] = toVehicleEntity(&dbModels[i])
	}
	return vehicles
}
