package models

import "time"

// Device represents a physical assistive device that can be loaned against a need
type Device struct {
	ID           int64      `json:"device_id"`
	Name         string     `json:"name"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	PurchaseDate *time.Time `json:"purchase_date"`
	WarrantyInfo string     `json:"warranty_info"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	CategoryID   *int64     `json:"category_id"`
	CategoryName string     `json:"category_name,omitempty"`
}

// NeedDeviceAssignment is the join between a need and a loaned device
type NeedDeviceAssignment struct {
	NeedID         int64      `json:"need_id"`
	DeviceID       int64      `json:"device_id"`
	AssignmentDate *time.Time `json:"assignment_date"`
	Notes          string     `json:"notes"`
}

// AssignedDevice is a device joined with its need assignment, as shown on a
// pupil profile.
type AssignedDevice struct {
	DeviceID       int64      `json:"device_id"`
	DeviceName     string     `json:"device_name"`
	Model          string     `json:"model"`
	SerialNumber   string     `json:"serial_number"`
	NeedID         int64      `json:"need_id"`
	NeedName       string     `json:"need_name"`
	AssignmentDate *time.Time `json:"assignment_date"`
	Notes          string     `json:"notes"`
}
