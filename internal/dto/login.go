package dto

type LoginRequest struct {
	// Username accepts either the username or the email address.
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	User      UserDto       `json:"user"`
	Household *HouseholdDto `json:"household"`
}
