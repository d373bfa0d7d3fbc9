package middleware

// Context keys used to store authentication metadata.
const (
	ContextKeySubject   = "subject"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorPayload(message string) errorBody {
	return errorBody{Status: "error", Message: message}
}
