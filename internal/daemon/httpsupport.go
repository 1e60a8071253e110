// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package daemon

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/golang/gddo/httputil/header"

	"github.com/lirios/ostree-sync/internal/logger"
)

// MalformedRequest represents a malformed request error and contains
// the HTTP status code and message
type MalformedRequest struct {
	Status  int
	Message string
}

func (mr *MalformedRequest) Error() string {
	return mr.Message
}

// DecodeJSONBody decodes the body and returns an error or nil if it succeeds
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	// If the Content-Type header is present, check that it has the value application/json
	if r.Header.Get("Content-Type") != "" {
		value, _ := header.ParseValueAndParams(r.Header, "Content-Type")
		if value != "application/json" {
			msg := "Content-Type header is not application/json"
			return &MalformedRequest{Status: http.StatusUnsupportedMediaType, Message: msg}
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &MalformedRequest{Status: http.StatusBadRequest, Message: "Request body must not be empty"}
		}
		return &MalformedRequest{Status: http.StatusBadRequest, Message: "Request body contains malformed JSON"}
	}

	// Only a single JSON object is allowed in the body
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		msg := "Request body must only contain a single JSON object"
		return &MalformedRequest{Status: http.StatusBadRequest, Message: msg}
	}

	return nil
}

// EncodeJSONReply encodes a JSON reply
func EncodeJSONReply(w http.ResponseWriter, r *http.Request, object interface{}) {
	js, err := json.Marshal(object)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// HandleDecodeError sends the error to the client
func HandleDecodeError(w http.ResponseWriter, err error) {
	var mr *MalformedRequest
	if errors.As(err, &mr) {
		http.Error(w, mr.Message, mr.Status)
	} else {
		logger.Error(err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
