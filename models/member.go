package models

import "time"

// Member represents a portal member.
type Member struct {
	ID           string         `bson:"id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Email        string         `bson:"email" json:"email"`
	PasswordHash string         `bson:"password_hash" json:"-"`
	PhoneNumber  string         `bson:"phone_number" json:"phoneNumber"`
	Devices      []MemberDevice `bson:"devices,omitempty" json:"-"`
	CreatedAt    time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updatedAt"`
}

// MemberDevice records one signed-in device and its active token hash.
type MemberDevice struct {
	DeviceID  string    `bson:"device_id" json:"deviceId"`
	TokenHash string    `bson:"token_hash" json:"-"`
	LastSeen  time.Time `bson:"last_seen" json:"lastSeen"`
}
