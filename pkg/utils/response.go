package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the {success, data, message} body every JSON endpoint returns
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Success writes data wrapped in a success envelope
func Success(w http.ResponseWriter, status int, data interface{}, message string) {
	JSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// Error writes a failure envelope
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// Attachment writes a downloadable file
func Attachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
