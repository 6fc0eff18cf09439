package models

// UpdateProfileRequest carries the user-editable profile fields. Pointer
// fields distinguish "not sent" from "set to empty".
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
}

// UpdateRoleRequest carries a role change issued by an admin.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
