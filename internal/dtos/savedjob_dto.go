package dtos

type SaveJobRequest struct {
	Notes string `json:"notes"`
}

type UpdateSavedJobRequest struct {
	Notes string `json:"notes"`
}
