package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable no hubo respuesta del back-office
	ErrUnavailable = errors.New("sin conexión")

	// ErrUnexpectedEnvelope la respuesta no tiene ninguna de las formas aceptadas
	ErrUnexpectedEnvelope = errors.New("unexpected response envelope")
)

// APIError respuesta de error del back-office con su mensaje
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backoffice returned status %d: %s", e.Status, e.Message)
}

// newAPIError toma el mensaje del cuerpo ({"message": ...}) o uno por defecto según el status
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return &APIError{Status: status, Message: payload.Message}
	}

	message := "Error inesperado"
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusForbidden:
		message = "Acceso denegado"
	case http.StatusConflict, http.StatusUnprocessableEntity:
		message = "Datos inválidos"
	}
	return &APIError{Status: status, Message: message}
}

// unwrapList acepta {data:{data:[...]}}, {data:[...]} o [...]
func unwrapList(body []byte) (json.RawMessage, error) {
	raw := bytes.TrimSpace(body)
	for depth := 0; depth <= 2; depth++ {
		if len(raw) > 0 && raw[0] == '[' {
			return raw, nil
		}
		data, ok := dataField(raw)
		if !ok {
			break
		}
		raw = data
	}
	return nil, fmt.Errorf("%w: expected a list", ErrUnexpectedEnvelope)
}

// unwrapObject acepta {data:{data:{...}}}, {data:{...}} o {...}
func unwrapObject(body []byte) (json.RawMessage, error) {
	raw := bytes.TrimSpace(body)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrUnexpectedEnvelope)
	}
	for depth := 0; depth < 2; depth++ {
		data, ok := dataField(raw)
		if !ok || data[0] != '{' {
			break
		}
		raw = data
	}
	return raw, nil
}

// dataField retorna el campo "data" de un objeto JSON si existe y no es null
func dataField(raw []byte) (json.RawMessage, bool) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	data := bytes.TrimSpace(env["data"])
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, false
	}
	return data, true
}
