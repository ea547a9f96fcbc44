package dto

// RegisterRequest represents a user registration request.
// Presence of required fields is checked by the validation helper so the
// error response can enumerate exactly which fields were missing.
type RegisterRequest struct {
	UserID     string `json:"userId"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents a partial user update. Only non-nil fields are
// applied; any other key in the payload is ignored and the natural key can
// never be changed through an update.
type UpdateUserRequest struct {
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Role       *string `json:"role"`
}

// UserResponse is the sanitized user record: the password hash is never
// part of any response payload.
type UserResponse struct {
	ID         int64  `json:"id,omitempty"`
	UserID     string `json:"userId"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// RegisterResponse wraps the created user
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse carries the sanitized user and the signed session token the
// client must present on protected requests.
type LoginResponse struct {
	Message   string       `json:"message"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
}

// UpdateUserResponse wraps the updated user
type UpdateUserResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
