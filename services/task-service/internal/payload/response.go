package payload

// BaseResponse is the envelope every API response is wrapped in.
type BaseResponse[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message,omitempty"`
	IsSuccess  bool   `json:"isSuccess"`
}

func Success[T any](statusCode int, data T, message string) BaseResponse[T] {
	return BaseResponse[T]{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		IsSuccess:  true,
	}
}

func Fail(statusCode int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		StatusCode: statusCode,
		Message:    message,
	}
}
