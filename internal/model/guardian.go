package model

import "time"

// Guardian is the registered caregiver account. The uid comes from the
// identity provider; a row exists only after the guardian completed setup.
type Guardian struct {
	UID       string    `json:"uid"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}
