package session

// Callback error codes emitted by the backend's OAuth callback redirect.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeNoCode             = "no_code"
	CodeTokenFailed        = "token_failed"
	CodeUserInfoFailed     = "user_info_failed"
	CodeUserCreationFailed = "user_creation_failed"
	CodeInvalidParams      = "invalid_callback_parameters"
)

var callbackMessages = map[string]string{
	CodeInvalidRequest:     "The authorization request was invalid. Please try logging in again.",
	CodeNoCode:             "The identity provider did not return an authorization code.",
	CodeTokenFailed:        "Exchanging the authorization code for a token failed.",
	CodeUserInfoFailed:     "Fetching your 42 profile failed.",
	CodeUserCreationFailed: "Your account could not be created on the backend.",
	CodeInvalidParams:      "Invalid callback parameters",
}

const genericCallbackMessage = "Authentication failed for an unknown reason. Please try again."

// MessageForCode maps a callback error code to its fixed user-facing
// message. Unrecognized codes get the generic fallback.
func MessageForCode(code string) string {
	if msg, ok := callbackMessages[code]; ok {
		return msg
	}
	return genericCallbackMessage
}
