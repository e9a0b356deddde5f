package dto

import "github.com/bloglist/bloglist/internal/model"

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// UserResponse represents a user in API responses. The credential hash
// never leaves the server.
type UserResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Blogs    []string `json:"blogs"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	blogs := user.BlogIDs
	if blogs == nil {
		blogs = []string{}
	}
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Blogs:    blogs,
	}
}

// ToUserListResponse converts a slice of users.
func ToUserListResponse(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *ToUserResponse(&users[i]))
	}
	return out
}
