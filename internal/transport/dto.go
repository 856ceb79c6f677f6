package transport

import (
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/service"
)

type SignUpRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccessResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type BlacklistResponse struct {
	Tokens []string `json:"tokens"`
}

type AccountResponse struct {
	ID        int64         `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Username  string        `json:"username"`
	IsActive  bool          `json:"is_active"`
	Roles     []models.Role `json:"roles"`
}

func NewAccountResponse(acc service.Account) AccountResponse {
	roles := acc.Roles
	if roles == nil {
		roles = []models.Role{}
	}
	return AccountResponse{
		ID:        acc.User.ID,
		FirstName: acc.User.FirstName,
		LastName:  acc.User.LastName,
		Username:  acc.User.Username,
		IsActive:  acc.User.IsActive,
		Roles:     roles,
	}
}

func NewAccountList(accs []service.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, NewAccountResponse(a))
	}
	return out
}

type UpdateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

type CreateUserRequest struct {
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Username  string        `json:"username"`
	Password  string        `json:"password"`
	Roles     []models.Role `json:"roles"`
}

type UpdateUserRequest struct {
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Username  *string       `json:"username"`
	Password  *string       `json:"password"`
	Roles     []models.Role `json:"roles"`
}
