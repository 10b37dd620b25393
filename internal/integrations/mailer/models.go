package mailer

// EmailRequest запрос на отправку письма почтовому сервису
type EmailRequest struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// EmailResponse ответ почтового сервиса
type EmailResponse struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки почтового сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
