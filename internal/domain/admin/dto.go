package admin

// RejectRequest carries the mandatory reason for a rejection
type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=1000"`
}

// BlockRequest for POST /admin/users/{id}/block
type BlockRequest struct {
	Blocked bool `json:"blocked"`
}

// CreateAdminRequest for POST /admin/users/create-admin
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=200"`
}
