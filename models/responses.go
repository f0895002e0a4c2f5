package models

// Response codes carried in the "code" field of every API response.
// Zero means success; negative values classify the failure.
const (
	CodeSuccess    = 0
	CodeFail       = -1
	CodeAuthFailed = -2
)

// Response is the JSON envelope returned by every API endpoint.
//
// Successful responses carry CodeSuccess and an optional payload in Resp;
// failures carry a negative code and a human-readable message in Msg.
type Response struct {
	// Code classifies the outcome of the request. See the Code* constants.
	Code int `json:"code"`

	// Msg is a short human-readable description of the outcome
	// ("success" for successful requests).
	Msg string `json:"msg"`

	// Resp holds the endpoint-specific payload, when any.
	Resp any `json:"resp,omitempty"`
}

// UserPage is the payload of the list-users endpoint. When the request
// carries no pagination parameters, List holds the full collection and
// Page is 1.
type UserPage struct {
	// List contains the users of the requested page, ordered by ID.
	List []User `json:"list"`

	// Page is the 1-based number of the returned page.
	Page int `json:"page"`

	// TotalCount is the total number of user records in the store,
	// regardless of pagination.
	TotalCount int64 `json:"total_count"`
}

// LoginResponse is the payload of a successful login: a signed access
// token together with the identity attributes of the authenticated user.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
}
