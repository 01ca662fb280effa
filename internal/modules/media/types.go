package media

type UploadBase64DTO struct {
	WorkspaceID string `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	// Data is a base64 data URI: data:<mime>;base64,<payload>
	Data        string `json:"data" binding:"required"`
	AltText     string `json:"alt_text"`
	Description string `json:"description"`
}

type UpdateMediaDTO struct {
	Name        *string `json:"name"`
	AltText     *string `json:"alt_text"`
	Description *string `json:"description"`
}

// TransformQuery are the supported delivery transformations.
type TransformQuery struct {
	Width   int    `form:"width"`
	Height  int    `form:"height"`
	Crop    string `form:"crop"`
	Format  string `form:"format"`
	Quality string `form:"quality"`
}
