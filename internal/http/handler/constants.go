package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgInvalidCredentials      = "invalid email or password"
	msgInvalidRequestBody      = "invalid request body"
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgResetAccepted           = "if the email is registered, a new password has been sent"
	msgInvalidAccountID        = "invalid account id"
	msgEmailRequired           = "email is required"
	msgAccountNotFound         = "account not found"
	msgGenerateTokenFail       = "failed to generate token"
)
