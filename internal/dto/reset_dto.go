package dto

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

// ForgotPasswordResponse acknowledges a code request. Code is only populated
// in development, mirroring the original on-screen code display.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ResetPasswordResponse surfaces the temporary password exactly once; it is
// never stored in plaintext.
type ResetPasswordResponse struct {
	Message           string `json:"message"`
	TemporaryPassword string `json:"temporaryPassword"`
}
