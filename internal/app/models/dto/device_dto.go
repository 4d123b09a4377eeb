package dto

import "time"

// CreateDeviceRequest is the body for creating a device
type CreateDeviceRequest struct {
	Name         string     `json:"name" binding:"required"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	PurchaseDate *time.Time `json:"purchase_date"`
	WarrantyInfo string     `json:"warranty_info"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	CategoryID   *int64     `json:"category_id"`
}

// UpdateDeviceRequest is the body for updating a device
type UpdateDeviceRequest struct {
	Name         string     `json:"name" binding:"required"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	PurchaseDate *time.Time `json:"purchase_date"`
	WarrantyInfo string     `json:"warranty_info"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	CategoryID   *int64     `json:"category_id"`
}

// AssignDeviceRequest is the body for assigning a device to a need
type AssignDeviceRequest struct {
	DeviceID       int64      `json:"device_id" binding:"required"`
	AssignmentDate *time.Time `json:"assignment_date"`
	Notes          string     `json:"notes"`
}
