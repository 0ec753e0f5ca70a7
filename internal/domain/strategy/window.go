package strategy

import "math"

// SlidingWindow es un buffer circular acotado de precios (FIFO).
// Nunca contiene más de `length` valores; al llenarse, cada Push expulsa el más viejo.
type SlidingWindow struct {
	buf  []float64
	head int // índice del valor más viejo
	size int
}

// NewSlidingWindow crea una ventana de la longitud dada. Panic si length <= 0:
// las longitudes se validan en domain.Params antes de llegar aquí.
func NewSlidingWindow(length int) *SlidingWindow {
	if length <= 0 {
		panic("strategy.NewSlidingWindow: length must be positive")
	}
	return &SlidingWindow{buf: make([]float64, length)}
}

// Push agrega un valor al final, expulsando el más viejo si la ventana está llena.
func (w *SlidingWindow) Push(v float64) {
	n := len(w.buf)
	if w.size < n {
		w.buf[(w.head+w.size)%n] = v
		w.size++
		return
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % n
}

// Len devuelve la cantidad de valores actualmente en la ventana.
func (w *SlidingWindow) Len() int { return w.size }

// Full devuelve true cuando la ventana recibió al menos `length` valores.
func (w *SlidingWindow) Full() bool { return w.size == len(w.buf) }

// Average devuelve la media aritmética de la ventana, o (NaN, false) si todavía no está llena.
// La suma se recalcula completa del más viejo al más nuevo en cada llamada, así el
// redondeo coincide con el de un re-escaneo completo (no hay resta incremental).
func (w *SlidingWindow) Average() (float64, bool) {
	if !w.Full() {
		return math.NaN(), false
	}
	n := len(w.buf)
	var sum float64
	for i := 0; i < n; i++ {
		sum += w.buf[(w.head+i)%n]
	}
	return sum / float64(n), true
}

// Base devuelve el valor más viejo, o (NaN, false) si la ventana no está llena.
func (w *SlidingWindow) Base() (float64, bool) {
	if !w.Full() {
		return math.NaN(), false
	}
	return w.buf[w.head], true
}

// Values devuelve una copia de los valores en orden de llegada.
func (w *SlidingWindow) Values() []float64 {
	out := make([]float64, w.size)
	for i := range out {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}
