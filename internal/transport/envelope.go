package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// StatusInternalError подставляется в Envelope при сбоях транспорта и таймауте.
	StatusInternalError = 500

	defaultSuccessMessage = "Success"
	defaultFailureMessage = "Request failed"
)

var (
	// ErrTimeout означает, что запрос не уложился в отведённое время.
	ErrTimeout = errors.New("request timeout")
	// ErrNetwork означает сетевой сбой: DNS, отказ в соединении, отмена.
	ErrNetwork = errors.New("network error")
	// ErrDecode означает, что тело ответа не является корректным JSON.
	ErrDecode = errors.New("malformed response")
	// ErrRequest означает, что запрос не удалось собрать.
	ErrRequest = errors.New("invalid request")
)

// Envelope содержит нормализованный результат вызова бэкенда.
// Наличие Data означает успех независимо от Status.
type Envelope struct {
	Data    json.RawMessage
	Message string
	Status  int
	Errors  []string
	// Cause заполняется для сбоев, не пришедших от сервера.
	Cause error
}

// OK сообщает, что вызов вернул полезную нагрузку.
func (e *Envelope) OK() bool {
	return e != nil && e.Data != nil
}

// Decode разбирает полезную нагрузку в v. Без Data возвращает ошибку Err("").
func (e *Envelope) Decode(v any) error {
	if !e.OK() {
		return e.Err("")
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return &Error{Status: e.Status, Message: "Invalid response from server", Cause: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	return nil
}

// Err строит ошибку из неуспешного Envelope. Сообщение сервера имеет приоритет,
// fallback заменяет только сообщение по умолчанию.
func (e *Envelope) Err(fallback string) error {
	if e == nil {
		return &Error{Status: StatusInternalError, Message: fallback, Cause: ErrNetwork}
	}
	msg := e.Message
	if (msg == "" || msg == defaultFailureMessage) && fallback != "" {
		msg = fallback
	}
	if msg == "" {
		msg = defaultFailureMessage
	}
	return &Error{Status: e.Status, Message: msg, Errors: e.Errors, Cause: e.Cause}
}

// Error описывает неуспешный вызов бэкенда.
type Error struct {
	Status  int
	Message string
	Errors  []string
	Cause   error
}

func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Errors, "; ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Timeout сообщает, что ошибка вызвана истечением таймаута запроса.
func (e *Error) Timeout() bool {
	return errors.Is(e.Cause, ErrTimeout)
}

type wireEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func normalize(status int, body []byte) *Envelope {
	raw := bytes.TrimSpace(body)
	// Пустое тело считается пустым объектом: статус сервера сохраняется.
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if !json.Valid(raw) {
		return &Envelope{
			Message: "Invalid response from server",
			Status:  StatusInternalError,
			Cause:   ErrDecode,
		}
	}

	var w wireEnvelope
	if raw[0] == '{' {
		// Поля неожиданных типов пропускаются, остальные заполняются.
		_ = json.Unmarshal(raw, &w)
	}

	message := ""
	if w.Message != nil {
		message = *w.Message
	}

	if status >= 200 && status < 300 {
		data := w.Data
		if isNull(data) {
			data = raw
		}
		if message == "" {
			message = defaultSuccessMessage
		}
		return &Envelope{Data: data, Message: message, Status: status}
	}

	if message == "" {
		message = defaultFailureMessage
	}
	return &Envelope{Message: message, Status: status, Errors: parseErrors(w.Errors)}
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func parseErrors(raw json.RawMessage) []string {
	out := []string{}
	if isNull(raw) {
		return out
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return append(out, single)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return append(out, string(raw))
	}

	for _, it := range items {
		var s string
		if err := json.Unmarshal(it, &s); err == nil {
			out = append(out, s)
			continue
		}
		var fe fieldError
		if err := json.Unmarshal(it, &fe); err == nil && fe.Message != "" {
			if fe.Field != "" {
				out = append(out, fe.Field+": "+fe.Message)
			} else {
				out = append(out, fe.Message)
			}
			continue
		}
		out = append(out, string(it))
	}
	return out
}
