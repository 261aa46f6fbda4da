package models

// SignupRequest is the body of POST /api/user/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SigninRequest is the body of POST /api/user/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of PUT /api/user/changePassword.
// UserID carries the email of the account whose password is being changed;
// it must match the identity extracted from the Authorization header.
type ChangePasswordRequest struct {
	UserID      string `json:"userId"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AddItemRequest is the body of POST /api/account/additem.
// UserID carries the owner email and must match the token identity.
type AddItemRequest struct {
	UserID string `json:"userId"`
	Item   string `json:"item"`
	Cost   int64  `json:"cost"`
}

// UpdateItemRequest is the body of PUT /api/account/changeitem.
// ID is the per-user item number of the record being changed and Email the
// declared owner; NewItemName and Cost are the replacement values.
type UpdateItemRequest struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Item        string `json:"item"`
	NewItemName string `json:"newItemName"`
	Cost        int64  `json:"cost"`
}
