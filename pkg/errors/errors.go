package errors

import (
	"fmt"
	"net/http"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Удаление
	ErrConfirmationRequired = fmt.Errorf("удаление требует подтверждения")

	// Форма
	ErrFormClosed = fmt.Errorf("форма филиала не открыта")

	// Импорт / экспорт
	ErrUnsupportedFile    = fmt.Errorf("недопустимый формат файла")
	ErrUnreadableWorkbook = fmt.Errorf("не удалось прочитать книгу Excel")
	ErrEmptyWorkbook      = fmt.Errorf("в книге нет ни одного листа")
)

// HttpError несёт код ответа и сообщение для клиента; Err остаётся для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, nil)
}
