package ptr

// Ptr возвращает указатель на копию значения
func Ptr[T any](v T) *T {
	return &v
}

// Value разыменовывает указатель, для nil возвращает нулевое значение
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// ValueOr разыменовывает указатель, для nil возвращает def
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
