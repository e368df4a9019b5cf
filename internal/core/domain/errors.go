package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupNotEmpty       = errors.New("group still has equipment assigned")
	ErrMaintenanceNotFound = errors.New("maintenance record not found")
	ErrAttachmentNotFound  = errors.New("attachment not found")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidStatus       = errors.New("invalid status")
)
