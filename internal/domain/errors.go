package domain

import "errors"

// Errores base del backtest. Se envuelven con fmt.Errorf("%w: ...") para dar contexto
// y se comparan con errors.Is.
var (
	// ErrInvalidConfiguration: ventanas no positivas, fast >= slow, porcentajes fuera de rango.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidInputData: serie vacía, timestamps fuera de orden, precios no positivos.
	ErrInvalidInputData = errors.New("invalid input data")
	// ErrArithmeticDegenerate: la corrida produjo un resultado no finito (overflow o base cero).
	ErrArithmeticDegenerate = errors.New("arithmetic degenerate")
)
