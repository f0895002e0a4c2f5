package models

// CreateUserRequest is the JSON body of the create-user endpoint.
// Name and Email are required; Phone and Password are optional.
// When Password is set the account becomes able to log in.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

// LoginRequest is the JSON body of the login endpoint.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
