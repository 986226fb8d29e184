package models

import "time"

// DefaultAssignedStorage is the storage quota, in bytes, granted to every
// newly registered account (1 GiB).
const DefaultAssignedStorage int64 = 1 << 30

// User is an account on the remote side. UsedStorage and AssignedStorage
// carry the byte-level quota accounting state; UsedStorage is maintained
// exclusively through atomic SQL increments and never goes negative.
type User struct {
	UserID          string    `json:"userId" db:"user_id"`
	Login           string    `json:"login" db:"login"`
	Password        string    `json:"password,omitempty" db:"-"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Name            string    `json:"name" db:"name"`
	UsedStorage     int64     `json:"usedStorage" db:"used_storage"`
	AssignedStorage int64     `json:"assignedStorage" db:"assigned_storage"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// StorageUsage is the quota snapshot returned alongside quota errors and by
// the storage listing endpoint.
type StorageUsage struct {
	Used     int64 `json:"used"`
	Assigned int64 `json:"assigned"`
}
