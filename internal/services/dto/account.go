package dto

// SignupRequest is the body of POST /accounts.
type SignupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Fname    string `json:"fname" validate:"required"`
	Lname    string `json:"lname" validate:"required"`
}

// LoginRequest is the body of POST /accounts/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse is the public shape of an account. The password hash never
// appears here.
type AccountResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Fname    string `json:"fname"`
	Lname    string `json:"lname"`
	Verified bool   `json:"verified"`
}

// SignupResponse carries the created account and the emailed verification
// link.
type SignupResponse struct {
	Account          AccountResponse `json:"account"`
	Message          string          `json:"message"`
	VerificationLink string          `json:"verification_link"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// VerifyEmailResponse reports the outcome of a verification attempt.
type VerifyEmailResponse struct {
	Message  string          `json:"message"`
	Account  AccountResponse `json:"account"`
	Verified bool            `json:"verified"`
}
