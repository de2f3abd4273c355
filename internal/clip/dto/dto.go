package dto

type CreateClipDTO struct {
	Title     string `json:"title"      validate:"max=255"`
	Content   string `json:"content"    validate:"required"`
	ExpiresIn int64  `json:"expires_in" validate:"omitempty,gt=0"`
}

type UpdateClipDTO struct {
	Title   *string `json:"title"   validate:"omitempty,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}
