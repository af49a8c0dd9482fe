package response

import (
	"drive-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
}

type MeResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: result.Token,
		UserID:      result.UserID,
		Email:       result.Email,
		Name:        result.Name,
		Role:        result.Role.String(),
	}
}
