package gadomain

import "net/http"

// ErrorResponse representa a estrutura de erro das APIs do Google
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// IsRateLimited indica se o erro é de cota esgotada
func (e *ErrorResponse) IsRateLimited() bool {
	return e.Error.Code == http.StatusTooManyRequests || e.Error.Status == "RESOURCE_EXHAUSTED"
}
