package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length limits enforced at the form boundary (API, CLI).
// The study store itself accepts whatever it is given.
const (
	MaxDeckNameLen        = 100
	MaxDeckDescriptionLen = 500
	MaxQuestionLen        = 1000
	MaxAnswerLen          = 2000
)

// ValidateDeckForm checks name/description against the form limits.
func ValidateDeckForm(name string, description *string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: deck name is required", ErrValidation)
	}
	if utf8.RuneCountInString(name) > MaxDeckNameLen {
		return fmt.Errorf("%w: deck name must be %d characters or less", ErrValidation, MaxDeckNameLen)
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxDeckDescriptionLen {
		return fmt.Errorf("%w: description must be %d characters or less", ErrValidation, MaxDeckDescriptionLen)
	}
	return nil
}

// ValidateFlashcardForm checks question/answer against the form limits.
func ValidateFlashcardForm(question, answer string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("%w: question is required", ErrValidation)
	}
	if utf8.RuneCountInString(question) > MaxQuestionLen {
		return fmt.Errorf("%w: question must be %d characters or less", ErrValidation, MaxQuestionLen)
	}
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: answer is required", ErrValidation)
	}
	if utf8.RuneCountInString(answer) > MaxAnswerLen {
		return fmt.Errorf("%w: answer must be %d characters or less", ErrValidation, MaxAnswerLen)
	}
	return nil
}
