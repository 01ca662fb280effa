package workspace

type CreateWorkspaceDTO struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

type UpdateWorkspaceDTO struct {
	Name   *string `json:"name"`
	Slug   *string `json:"slug"`
	Status *string `json:"status"`
}

type AddMemberDTO struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}
