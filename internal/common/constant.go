package common

// Storage keys used by key/value backends. Every backend uses the same
// names, so a stored archive moves between backends unchanged.
const (
	DocumentKey               = "sce_foundation_data"
	CurrentUserKey            = "sce_current_user"
	PasswordKeyPrefix         = "sce_user_password_"
	VerificationCodeKeyPrefix = "sce_verification_code_"
)

// VerificationCodeAlphabet is the character set verification codes are drawn from.
const VerificationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// VerificationCodeLength is the number of characters in a verification code.
const VerificationCodeLength = 6

// SessionSecretKey holds the generated session signing secret when none is
// configured.
const SessionSecretKey = "sce_session_secret"
