// Package commons holds the small surface shared across layers: the JSON
// envelope every HTTP endpoint writes and the cross-layer sentinel errors.
package commons

// Response is the uniform envelope for every endpoint. Data is a pointer so
// error responses omit it entirely instead of emitting a zero value.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}
