package matrix

import "errors"

// ErrTooManyRows is returned when a matrix's row count exceeds MaxRows.
var ErrTooManyRows = errors.New("matrix: row count exceeds maximum")

// ErrColumnOutOfRange is returned when a row references a column index
// outside [0, numCols).
var ErrColumnOutOfRange = errors.New("matrix: column index out of range")

// ErrDuplicateCellInRow is returned when a row lists the same column twice.
var ErrDuplicateCellInRow = errors.New("matrix: duplicate column in row")

// MaxRows is the largest row count the dancing matrix supports (see spec
// §7, Input-format errors).
const MaxRows = 250_000
