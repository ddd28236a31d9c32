package reservation

import (
	"strings"
	"unicode/utf8"
)

const (
	maxDescriptionLen = 500
	maxNotesLen       = 500
)

// NewDescription trims the input; blank input means no description.
func NewDescription(s *string) (*string, error) {
	return optionalText(s, maxDescriptionLen, ErrDescriptionTooLong)
}

func NewNotes(s *string) (*string, error) {
	return optionalText(s, maxNotesLen, ErrNotesTooLong)
}

func optionalText(s *string, maxLen int, tooLong error) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > maxLen {
		return nil, tooLong
	}
	return &v, nil
}

func ValidateKilos(kilos int) error {
	if kilos < 1 {
		return ErrInvalidKilos
	}
	return nil
}
