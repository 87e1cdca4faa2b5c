package parse

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFormat1(t *testing.T) {
	input := "c n = 3, m = 2\n" +
		"0\n" +
		"s 1 2\n" +
		"s 2 3\n"
	m, err := Parse(Format1, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.NumCols != 3 || m.NumRows != 2 {
		t.Fatalf("dims = (%d,%d), want (3,2)", m.NumCols, m.NumRows)
	}
}

func TestParseFormat1MalformedHeader(t *testing.T) {
	_, err := Parse(Format1, strings.NewReader("garbage header\n"))
	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader ParseError, got %v", err)
	}
}

func TestParseFormat2(t *testing.T) {
	input := "3 2\n" +
		"0 2 1 2\n" +
		"1 2 2 3\n"
	m, err := Parse(Format2, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.NumCols != 3 || m.NumRows != 2 {
		t.Fatalf("dims = (%d,%d), want (3,2)", m.NumCols, m.NumRows)
	}
}

func TestParseFormat2RowLengthMismatch(t *testing.T) {
	input := "3 1\n0 5 1 2\n"
	_, err := Parse(Format2, strings.NewReader(input))
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestParseFormat3(t *testing.T) {
	input := "3 2\n" +
		"2 1 2\n" +
		"2 2 3\n"
	m, err := Parse(Format3, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.NumCols != 3 || m.NumRows != 2 {
		t.Fatalf("dims = (%d,%d), want (3,2)", m.NumCols, m.NumRows)
	}
}

func TestParseFormat3ColumnOutOfRange(t *testing.T) {
	input := "3 1\n1 7\n"
	_, err := Parse(Format3, strings.NewReader(input))
	if !errors.Is(err, ErrColumnOutOfRange) {
		t.Fatalf("expected ErrColumnOutOfRange, got %v", err)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse(Format(99), strings.NewReader("anything\n"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestParseWithLimitsRejectsOversizedMatrix(t *testing.T) {
	input := "3 2\n2 1 2\n2 2 3\n"
	_, err := ParseWithLimits(Format3, strings.NewReader(input), Limits{MaxRows: 1, MaxCols: 100})
	if !errors.Is(err, ErrMatrixTooLarge) {
		t.Fatalf("expected ErrMatrixTooLarge, got %v", err)
	}
}

func TestParseErrorMessageIncludesLineAndFormat(t *testing.T) {
	_, err := Parse(Format1, strings.NewReader("garbage\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Format != Format1 || pe.Line != 1 {
		t.Fatalf("ParseError = %+v, want Format=1 Line=1", pe)
	}
	if !strings.Contains(pe.Error(), "format 1 line 1") {
		t.Fatalf("Error() = %q, missing format/line", pe.Error())
	}
}
