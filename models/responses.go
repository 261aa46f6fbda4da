package models

// SignupResponse is returned by POST /api/user/signup on success.
// Key carries the freshly issued JWT so a client can authenticate
// immediately without a separate signin round trip.
type SignupResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	Key     string `json:"key"`
	Name    string `json:"name"`
	ID      int64  `json:"id"`
}

// SigninResponse is returned by POST /api/user/signin on success.
type SigninResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    int64  `json:"id"`
}

// UserResponse is a single entry of the GET /api/user/bulk listing.
// Only public fields are exposed.
type UserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    int64  `json:"id"`
}

// UsersResponse wraps the GET /api/user/bulk listing.
type UsersResponse struct {
	Users []UserResponse `json:"user"`
}

// UserChangedResponse is returned by password change and user removal.
type UserChangedResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	ID      int64  `json:"id"`
}

// ItemsResponse wraps the GET /api/account/items listing.
type ItemsResponse struct {
	Items []Item `json:"items"`
}

// ItemAddedResponse is returned by POST /api/account/additem.
// ID is the per-user item number assigned by the sequence counter.
type ItemAddedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ItemUpdatedResponse is returned by PUT /api/account/changeitem.
type ItemUpdatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Item    string `json:"item"`
	Cost    int64  `json:"cost"`
}

// ItemDeletedResponse is returned by DELETE /api/account/removeitem.
type ItemDeletedResponse struct {
	Message string `json:"message"`
	ItemNo  int64  `json:"itemNo"`
}

// ErrorResponse is the uniform error body produced by the HTTP error mapper.
type ErrorResponse struct {
	Message string `json:"message"`
}
