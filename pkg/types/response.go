package types

// SuccessEnvelope wraps every successful API payload so clients always
// unmarshal the same top-level shape.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public projection of an error: a stable machine code, a
// human message, and optional structured details when the code allows them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
