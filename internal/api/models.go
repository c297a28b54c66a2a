package api

import (
	"github.com/Fakhri-abraar/taskdeck/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// RegisterResponse defines the successful registration response.
type RegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse defines the successful login response.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// CreateCategoryRequest defines the payload for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// CreateTaskRequest defines the payload for task creation. The
// attachment path is never accepted here; files are linked after upload.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,min=1"`
	Description *string `json:"description" validate:"omitempty"`
	Priority    string  `json:"priority"    validate:"required,oneof=low medium high"`
	DueDate     *string `json:"dueDate"     validate:"omitempty"`
	CategoryID  string  `json:"categoryId"  validate:"required,uuid"`
	IsPublic    *bool   `json:"isPublic"    validate:"omitempty"`
}

// UpdateTaskRequest defines the partial-update payload. Absent fields
// are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate"     validate:"omitempty"`
	CategoryID  *string `json:"categoryId"  validate:"omitempty,uuid"`
	IsCompleted *bool   `json:"isCompleted" validate:"omitempty"`
	IsPublic    *bool   `json:"isPublic"    validate:"omitempty"`
	FilePath    *string `json:"filePath"    validate:"omitempty"`
}

// TaskListResponse is the paginated query envelope. Total is the full
// matching count, independent of the page window.
type TaskListResponse struct {
	Data  []*domain.Task `json:"data"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// DeleteTaskResponse confirms a successful delete.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}

// UploadResponse returns the stored filename of an uploaded attachment.
type UploadResponse struct {
	ImagePath string `json:"imagePath"`
	Message   string `json:"message"`
}
