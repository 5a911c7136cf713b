package ports

import "errors"

// Taxonomía de fallos de las fuentes. El orquestador no inspecciona el tipo
// de fallo para decidir — cualquier error avanza a la siguiente etapa — pero
// la clase se conserva con errors.Is para logging y tests.
var (
	// ErrNetworkTimeout: la fuente remota no respondió dentro del budget.
	ErrNetworkTimeout = errors.New("network timeout")

	// ErrNetwork: fallo de transporte o respuesta non-2xx.
	ErrNetwork = errors.New("network error")

	// ErrEmptyResult: payload estructuralmente válido pero inutilizable
	// (cero eventos, o ningún mercado transformable al schema interno).
	ErrEmptyResult = errors.New("empty result")

	// ErrMissingHeader: input tabular sin fila de header. Es el único fallo
	// del parser — las filas malformadas degradan a defaults, no abortan.
	ErrMissingHeader = errors.New("missing header row")
)
