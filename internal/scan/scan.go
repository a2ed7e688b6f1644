// Package scan is the optical text recognition collaborator. A Scanner turns
// a captured frame into raw recognized text; nothing here parses nutrition
// fields out of that text.
package scan

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saadjs/caltrack/internal/common"
)

type Scanner interface {
	ScanFrame(ctx context.Context, frame []byte) (string, error)
}

// TextScanner treats the frame as already-recognized UTF-8 text, as produced
// by an external OCR tool piped into the CLI.
type TextScanner struct {
	// MaxBytes bounds the frame size; 0 means DefaultMaxBytes.
	MaxBytes int
}

const DefaultMaxBytes = 1 << 20

func (s TextScanner) ScanFrame(ctx context.Context, frame []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if len(frame) > limit {
		return "", fmt.Errorf("%w: frame is %d bytes, limit is %d", common.ErrInvalidInput, len(frame), limit)
	}
	if !utf8.Valid(frame) {
		return "", fmt.Errorf("%w: frame is not UTF-8 text", common.ErrInvalidInput)
	}
	return strings.TrimSpace(strings.ReplaceAll(string(frame), "\r\n", "\n")), nil
}
