package response

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response конверт успешного ответа API. Data содержит запись, состояние
// архива, изображение или список хотспотов.
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse конверт ошибки: Error машинный код, Details пояснение
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{
		Status: statusSuccess,
		Data:   data,
	}
}

// MessageResponse ответ без данных, например после удаления записи
func MessageResponse(message string) Response {
	return Response{
		Status:  statusSuccess,
		Message: message,
	}
}

func ErrorResponseWithDetails(code, details string) ErrorResponse {
	return ErrorResponse{
		Status:  statusError,
		Error:   code,
		Details: details,
	}
}
