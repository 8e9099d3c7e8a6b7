package model

type CreateMatchRequest struct {
	ContactID       string `json:"contact_id"`
	RequesterDogID  string `json:"requester_dog_id"`
	RequestedDogID  string `json:"requested_dog_id"`
	RequestedUserID string `json:"requested_user_id"`
	Notes           string `json:"notes"`
}

type UpdateMatchStatus struct {
	Status string `json:"status"`
}

type SubmitOutcome struct {
	Outcome        string `json:"outcome"`
	VerifyingDogID string `json:"verifying_dog_id"`
	LitterSize     string `json:"litter_size"`
	Notes          string `json:"notes"`
}

type CreateDog struct {
	Name     string                 `json:"name"`
	Breed    string                 `json:"breed"`
	Gender   string                 `json:"gender"`
	MetaData map[string]interface{} `json:"meta_data"`
}
