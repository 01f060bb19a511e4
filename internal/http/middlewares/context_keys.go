package middlewares

// gin context keys
const (
	CtxRequestID = "request_id"
	CtxSession   = "admin_session"
	CtxToken     = "admin_session_token"
)
