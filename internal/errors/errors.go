// errors стандартизирует ответы об ошибках HTTP-слоя шлюза.
// На вход он принимает ошибку апстрима (HTTP-статус + message либо
// строковый RPC-код + message), а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Маппинг тотальный: любой вход даёт ровно один Kind, дефолт — KindInternal
// (в том числе сетевые сбои без структурированного ответа). Таблицы вместо
// цепочек условий, чтобы тотальность проверялась перечислением.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Kind — закрытое множество ошибок, видимых клиентам шлюза.
type Kind string

const (
	KindBadRequest     Kind = "bad_request"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindNotFound       Kind = "not_found"
	KindGatewayTimeout Kind = "gateway_timeout"
	KindInternal       Kind = "internal"
)

// Error — транслированная ошибка апстрима (или локальная ошибка шлюза).
// Message хранится для логов; наружу уходит только safeMessage по Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return string(e.Kind) + ": " + e.Message
}

// E — конструктор локальной ошибки шлюза заданного вида.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// httpKinds — HTTP-статус апстрима -> Kind.
var httpKinds = map[int]Kind{
	http.StatusBadRequest:     KindBadRequest,
	http.StatusUnauthorized:   KindUnauthorized,
	http.StatusForbidden:      KindForbidden,
	http.StatusNotFound:       KindNotFound,
	http.StatusGatewayTimeout: KindGatewayTimeout,
}

// rpcKinds — строковый код RPC-транспорта -> Kind.
var rpcKinds = map[string]Kind{
	"BAD_REQUEST":     KindBadRequest,
	"UNAUTHORIZED":    KindUnauthorized,
	"FORBIDDEN":       KindForbidden,
	"NOT_FOUND":       KindNotFound,
	"GATEWAY_TIMEOUT": KindGatewayTimeout,
}

// FromHTTPStatus транслирует структурированный HTTP-ответ апстрима.
// Незнакомый статус — internal.
func FromHTTPStatus(status int, message string) *Error {
	kind, ok := httpKinds[status]
	if !ok {
		kind = KindInternal
	}

	return &Error{Kind: kind, Message: message}
}

// FromRPCCode транслирует ошибку RPC-транспорта по строковому коду.
func FromRPCCode(code, message string) *Error {
	kind, ok := rpcKinds[code]
	if !ok {
		kind = KindInternal
	}

	return &Error{Kind: kind, Message: message}
}

// FromTransport транслирует сбой без структурированного ответа:
// таймаут -> gateway_timeout, прочее (сеть, обрыв) -> internal.
func FromTransport(err error) *Error {
	if err == nil {
		return &Error{Kind: KindInternal, Message: "internal error"}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindGatewayTimeout, Message: err.Error()}
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return &Error{Kind: KindGatewayTimeout, Message: err.Error()}
	}

	return &Error{Kind: KindInternal, Message: err.Error()}
}

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// httpStatuses — Kind -> исходящий HTTP-статус.
var httpStatuses = map[Kind]int{
	KindBadRequest:     http.StatusBadRequest,
	KindUnauthorized:   http.StatusUnauthorized,
	KindForbidden:      http.StatusForbidden,
	KindNotFound:       http.StatusNotFound,
	KindGatewayTimeout: http.StatusGatewayTimeout,
	KindInternal:       http.StatusInternalServerError,
}

// safeMessages — Kind -> безопасное сообщение. Текст апстрима наружу не уходит.
var safeMessages = map[Kind]string{
	KindBadRequest:     "invalid argument",
	KindUnauthorized:   "unauthorized",
	KindForbidden:      "forbidden",
	KindNotFound:       "not found",
	KindGatewayTimeout: "upstream timeout",
	KindInternal:       "internal error",
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal, чтобы не
//     послать "200 OK" с телом ошибки и не маскировать баг;
//   - err — не *Error - 500/internal (без утечки деталей);
//   - err — *Error - статус и код по таблицам.
func ToHTTP(err error) (int, ErrorResponse) {
	kind := KindInternal

	var gwErr *Error
	if errors.As(err, &gwErr) {
		kind = gwErr.Kind
	}

	return httpStatuses[kind], ErrorResponse{
		Error: APIError{
			Code:    string(kind),
			Message: safeMessages[kind],
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
