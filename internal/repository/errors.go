package repository

import "errors"

// ErrNotFound se devuelve cuando el registro pedido no existe.
var ErrNotFound = errors.New("not found")
