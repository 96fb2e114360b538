package main

import (
	"net/http"

	"github.com/go-faster/errors"
)

var (
	ErrMalformedPrice  = errors.New("malformed price")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrNoActiveEdit    = errors.New("no active edit")
	ErrProductNotFound = errors.New("product not found")
)

// statusFor traduz um erro de domínio para o código HTTP correspondente
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMalformedPrice), errors.Is(err, ErrNegativePrice):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNoActiveEdit):
		return http.StatusConflict
	case errors.Is(err, ErrProductNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
