package vehicle

import "errors"

var (
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrVehicleAlreadyExists = errors.New("vehicle already exists")
	ErrDeviceIDRequired     = errors.New("device id is required")
)
