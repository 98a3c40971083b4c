package model

import "time"

// Elder is the profile of the person being protected. Exactly one guardian
// owns it; the owning guardian's managed set holds a weak reference to ID.
type Elder struct {
	ID                      string    `json:"id"`
	GuardianID              string    `json:"guardianId"`
	Name                    string    `json:"name"`
	Age                     int       `json:"age"`
	Prefecture              string    `json:"prefecture"`
	City                    string    `json:"city"`
	NotificationEmail       string    `json:"notificationEmail"`
	MedicalConditions       string    `json:"medicalConditions"`
	PhysicalCharacteristics string    `json:"physicalCharacteristics"`
	ClothingPhotos          []string  `json:"clothingPhotos"`
	QRID                    string    `json:"qrId"`
	CreatedAt               time.Time `json:"createdAt"`
}
