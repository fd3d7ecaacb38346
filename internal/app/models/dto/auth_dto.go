package dto

// SignupRequest represents a new account registration request
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInfo represents the account identity returned to the client,
// excluding the password representation.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse represents a successful signup or login response
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
}

// LogoutResponse represents a successful logout response
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthStatusResponse represents the current session state
type AuthStatusResponse struct {
	Authenticated bool    `json:"authenticated"`
	Username      *string `json:"username"`
}
