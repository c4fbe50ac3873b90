package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody - тело ответа с ошибкой
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, ErrorBody{Error: message})
}

// Kind - ошибка с машинно-читаемым типом, чтобы клиент мог отличить дубль от пустого поля
func Kind(w http.ResponseWriter, r *http.Request, code int, kind, message string) {
	JSON(w, r, code, ErrorBody{Error: message, Kind: kind})
}

func NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
