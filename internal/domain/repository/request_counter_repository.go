package repository

// RequestCounterRepository asigna secuencias monótonas por año para la
// numeración de solicitudes. La atomicidad la garantiza el almacenamiento
// (upsert con RETURNING sobre la fila del año), no el código de aplicación.
type RequestCounterRepository interface {
	// Next incrementa y devuelve la siguiente secuencia del año indicado.
	Next(year int) (int64, error)
}
