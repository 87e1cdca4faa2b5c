package parse

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// parseFormat1 reads the "c n = <cols>, m = <rows>" header format: a header
// line, a skipped second line, then one "s c1 c2 ..." line per row.
func parseFormat1(scanner *bufio.Scanner, limits Limits) (numCols, numRows int, rows [][]int32, err error) {
	line := 0

	if !scanner.Scan() {
		return 0, 0, nil, &ParseError{Format: Format1, Line: 1, Err: fmt.Errorf("%w: missing header", ErrMalformedHeader)}
	}
	line++
	header := scanner.Text()
	if _, err := fmt.Sscanf(header, "c n = %d, m = %d", &numCols, &numRows); err != nil {
		return 0, 0, nil, &ParseError{Format: Format1, Line: line, Err: fmt.Errorf("%w: %q: %v", ErrMalformedHeader, header, err)}
	}
	if numCols < 0 || numRows < 0 {
		return 0, 0, nil, &ParseError{Format: Format1, Line: line, Err: fmt.Errorf("%w: negative dimensions", ErrMalformedHeader)}
	}

	if !scanner.Scan() { // skipped line
		return 0, 0, nil, &ParseError{Format: Format1, Line: line + 1, Err: fmt.Errorf("%w: missing skipped line", ErrMalformedHeader)}
	}
	line++

	rows = make([][]int32, 0, numRows)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) == 0 || fields[0] != "s" {
			return 0, 0, nil, &ParseError{Format: Format1, Line: line, Err: fmt.Errorf("%w: expected leading 's'", ErrMalformedRow)}
		}
		row, err := parseColumns(fields[1:], numCols, Format1, line)
		if err != nil {
			return 0, 0, nil, err
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, nil, &ParseError{Format: Format1, Line: line, Err: err}
	}
	return numCols, numRows, rows, nil
}

// parseColumns converts 1-indexed column tokens to 0-indexed column ids,
// bounds-checking each against numCols.
func parseColumns(tokens []string, numCols int, format Format, line int) ([]int32, error) {
	cols := make([]int32, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &ParseError{Format: format, Line: line, Err: fmt.Errorf("%w: %q", ErrMalformedRow, tok)}
		}
		if v < 1 || v > numCols {
			return nil, &ParseError{Format: format, Line: line, Err: fmt.Errorf("%w: column %d not in [1,%d]", ErrColumnOutOfRange, v, numCols)}
		}
		cols = append(cols, int32(v-1))
	}
	return cols, nil
}
