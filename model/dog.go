package model

import "time"

// Dog genders. The gender of the verifying dog gates which outcomes its owner
// may report.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

type Dog struct {
	ID          int64                  `json:"-"`
	DogID       string                 `json:"dog_id"`
	OwnerUserID string                 `json:"owner_user_id"`
	Name        string                 `json:"name"`
	Breed       string                 `json:"breed"`
	Gender      string                 `json:"gender"`
	CreatedAt   time.Time              `json:"created_at"`
	MetaData    map[string]interface{} `json:"meta_data"`
}

// IsValidGender reports whether gender is one of the recognized values.
func IsValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}
