// Package httperr maps internal auth and store error codes to the fixed
// human-readable strings shown on login and signup forms.
package httperr

// Error codes attached to auth and store failures.
const (
	CodeEmailInUse         = "auth/email-already-in-use"
	CodeInvalidEmail       = "auth/invalid-email"
	CodeUserDisabled       = "auth/user-disabled"
	CodeUserNotFound       = "auth/user-not-found"
	CodeWrongPassword      = "auth/wrong-password"
	CodeWeakPassword       = "auth/weak-password"
	CodeNotAllowed         = "auth/operation-not-allowed"
	CodeTooManyRequests    = "auth/too-many-requests"
	CodeNetworkFailed      = "auth/network-request-failed"
	CodeRecentLoginNeeded  = "auth/requires-recent-login"
	CodeInvalidCredentials = "auth/invalid-credential"
	CodePermissionDenied   = "permission-denied"
	CodeUnavailable        = "unavailable"
)

var messages = map[string]string{
	CodeEmailInUse:         "This email is already registered. Please login instead.",
	CodeInvalidEmail:       "Please enter a valid email address.",
	CodeUserDisabled:       "This account has been disabled. Please contact support.",
	CodeUserNotFound:       "No account found with this email.",
	CodeWrongPassword:      "Incorrect password. Please try again.",
	CodeWeakPassword:       "Password should be at least 6 characters.",
	CodeNotAllowed:         "This operation is not currently allowed.",
	CodeTooManyRequests:    "Too many failed attempts. Please try again later.",
	CodeNetworkFailed:      "Network error. Please check your connection.",
	CodeRecentLoginNeeded:  "Please login again to verify your identity.",
	CodeInvalidCredentials: "Invalid credentials. Please check your email and password.",
	CodePermissionDenied:   "You do not have permission to perform this action.",
	CodeUnavailable:        "Service unavailable. Please check your connection.",
}

const genericMessage = "Something went wrong. Please try again."

// Message returns the user-facing string for a code, or a generic fallback
// for anything unrecognized.
func Message(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return genericMessage
}
