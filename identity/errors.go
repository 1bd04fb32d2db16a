package identity

import "strings"

// GenericAuthMessage is shown for provider errors with no mapped message.
const GenericAuthMessage = "An error occurred. Please try again."

// providerMessages maps provider error codes to the user-facing copy shown
// in the login and registration forms. Codes missing from the table fall
// back to GenericAuthMessage.
var providerMessages = map[string]string{
	"EMAIL_EXISTS":                "This email is already registered. Please login instead.",
	"INVALID_EMAIL":               "Invalid email address.",
	"OPERATION_NOT_ALLOWED":       "Email/password accounts are not enabled. Please contact support.",
	"WEAK_PASSWORD":               "Password should be at least 6 characters long.",
	"USER_DISABLED":               "This account has been disabled. Please contact support.",
	"EMAIL_NOT_FOUND":             "No account found with this email.",
	"INVALID_PASSWORD":            "Invalid password.",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "Too many failed attempts. Please try again later.",
}

// ProviderError is a failed provider call. Code is the provider's error
// identifier, Status the HTTP status the provider answered with.
type ProviderError struct {
	Code   string
	Status int
}

func (e *ProviderError) Error() string {
	return "identity provider: " + e.Code
}

// UserMessage returns the copy to show the user for this failure.
func (e *ProviderError) UserMessage() string {
	if msg, ok := providerMessages[e.Code]; ok {
		return msg
	}
	return GenericAuthMessage
}

// normalizeProviderCode strips the detail suffix some provider responses
// append ("WEAK_PASSWORD : Password should be ...").
func normalizeProviderCode(code string) string {
	if i := strings.IndexAny(code, " :"); i >= 0 {
		code = code[:i]
	}
	return strings.TrimSpace(code)
}
