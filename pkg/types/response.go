package types

// SuccessEnvelope wraps every successful API payload under a data key so
// clients can tell it apart from the error shape without checking status
// codes.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public projection of an internal error. Details is only
// populated for codes that permit it, such as exclusivity conflicts carrying
// the branch already holding the staff member.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
