package model

import "time"

// Session is an issued __session cookie backing record.
type Session struct {
	ID          int64     `json:"id"`
	Token       string    `json:"-"`
	GuardianUID string    `json:"guardianUid"`
	ExpiresAt   time.Time `json:"expiresAt"`
	CreatedAt   time.Time `json:"createdAt"`
}
