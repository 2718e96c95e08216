package gvf

import "fmt"

// ShapeError describes an input tensor whose rank or dimensions violate
// the shape contract of a pseudo-reward transform.
type ShapeError struct {
	msg string
}

func (e *ShapeError) Error() string {
	return e.msg
}

func shapeErrorf(format string, args ...interface{}) error {
	return &ShapeError{msg: fmt.Sprintf(format, args...)}
}

// ArgumentError describes an invalid non-tensor argument, such as a
// non-positive pooling cell size or a potential cumulant without a
// discount.
type ArgumentError struct {
	msg string
}

func (e *ArgumentError) Error() string {
	return e.msg
}

func argumentErrorf(format string, args ...interface{}) error {
	return &ArgumentError{msg: fmt.Sprintf(format, args...)}
}
