package physics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// GeometrySource is a sequential record stream of segment data
type GeometrySource interface {
	ReadInt() (int, error)
	ReadVector2D() (Vector2D, error)
}

// TextSource reads whitespace-separated tokens. A '#' starts a comment that
// runs to the end of the line.
type TextSource struct {
	lines  *bufio.Scanner
	tokens []string
	line   int
}

// NewTextSource wraps r as a GeometrySource
func NewTextSource(r io.Reader) *TextSource {
	return &TextSource{lines: bufio.NewScanner(r)}
}

func (s *TextSource) next() (string, error) {
	for len(s.tokens) == 0 {
		if !s.lines.Scan() {
			if err := s.lines.Err(); err != nil {
				return "", fmt.Errorf("line %d: %w", s.line, errors.Join(ErrFormat, err))
			}
			return "", fmt.Errorf("line %d: unexpected end of stream: %w", s.line, ErrFormat)
		}
		s.line++
		text := s.lines.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		s.tokens = strings.Fields(text)
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, nil
}

// ReadInt implements GeometrySource
func (s *TextSource) ReadInt() (int, error) {
	tok, err := s.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("line %d: integer %q: %w", s.line, tok, ErrFormat)
	}
	return n, nil
}

func (s *TextSource) readFloat() (float64, error) {
	tok, err := s.next()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("line %d: number %q: %w", s.line, tok, ErrFormat)
	}
	return f, nil
}

// ReadVector2D implements GeometrySource
func (s *TextSource) ReadVector2D() (Vector2D, error) {
	x, err := s.readFloat()
	if err != nil {
		return Vector2D{}, err
	}
	y, err := s.readFloat()
	if err != nil {
		return Vector2D{}, err
	}
	return Vector2D{X: x, Y: y}, nil
}
