package transport

import "github.com/qreport/backend/domain"

type ClientRequest struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	VATNumber    string `json:"vat_number"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
}

type ContactRequest struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	MobilePhone string `json:"mobile_phone"`
	Role        string `json:"role"`
	IsPrimary   bool   `json:"is_primary"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type FacilityRequest struct {
	ID          string         `json:"id"`
	ClientID    string         `json:"client_id"`
	Name        string         `json:"name"`
	Code        string         `json:"code"`
	Description string         `json:"description"`
	Address     domain.Address `json:"address"`
	IsPrimary   bool           `json:"is_primary"`
}

type IslandRequest struct {
	ID           string `json:"id"`
	FacilityID   string `json:"facility_id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Model        string `json:"model"`
}

type InterventionRequest struct {
	ID                      string              `json:"id"`
	CustomerData            domain.CustomerData `json:"customer_data"`
	RobotData               domain.RobotData    `json:"robot_data"`
	WorkLocation            domain.WorkLocation `json:"work_location"`
	Technicians             []string            `json:"technicians"`
	InterventionDescription string              `json:"intervention_description"`
	Materials               string              `json:"materials"`
	ExternalReport          string              `json:"external_report"`
	WorkDays                []domain.WorkDay    `json:"work_days"`
	Status                  string              `json:"status"`
}

type StatusChangeRequest struct {
	Status string `json:"status"`
}

type BatchStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type BatchDeleteRequest struct {
	IDs   []string `json:"ids"`
	Force bool     `json:"force"`
}

type EditorOpenRequest struct {
	InterventionID string `json:"intervention_id"`
}

type EditorSwitchRequest struct {
	Target string `json:"target"`
}

type EditorExitRequest struct {
	SaveCurrent bool `json:"save_current"`
}

type EditorDetailViewRequest struct {
	Open bool `json:"open"`
}

// SignatureUploadRequest carries a base64-encoded PNG captured on a device.
type SignatureUploadRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type AuthLoginRequest struct {
	TechnicianID string `json:"technician_id"`
	DeviceName   string `json:"device_name"`
	TTL          int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
