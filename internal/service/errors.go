package service

import "errors"

// Sentinel errors the handlers map to HTTP status codes. Services wrap them
// with %w so callers can match with errors.Is.
var (
	ErrNoEncontrado       = errors.New("recurso no encontrado")
	ErrEstadoInvalido     = errors.New("transicion de estado invalida")
	ErrPermisoDenegado    = errors.New("permiso denegado")
	ErrValidacion         = errors.New("error de validacion")
	ErrDocumentoDuplicado = errors.New("ya existe un documento vivo de ese tipo")
	ErrNoEnPapelera       = errors.New("el recurso no esta en la papelera")
	ErrTipoDesconocido    = errors.New("tipo de entidad desconocido")
	ErrNoConfirmado       = errors.New("la restauracion requiere confirmacion")
)
