package model

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsVerified   bool   `json:"is_verified"`
	// Verification code state. Hash and expiry are set and cleared together;
	// zero values mean no live code.
	OTPHash       string `json:"-"`
	OTPExpiresAt  int64  `json:"-"`
	LastOTPSentAt int64  `json:"-"`
	// Password reset code state, independent of the verification code.
	ResetOTPHash      string `json:"-"`
	ResetOTPExpiresAt int64  `json:"-"`
	Ctime             int64  `json:"ctime"`
	Mtime             int64  `json:"mtime"`
}
