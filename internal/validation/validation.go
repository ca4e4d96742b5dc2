package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Error marks a user-input validation failure. Handlers map it to a
// 400 response instead of a generic server error.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a validation Error from a format string
func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a validation Error
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// ValidateRequired checks that a field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMinLength checks the minimum length of a string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return Errorf("%s must be at least %d characters long", fieldName, minLength)
	}
	return nil
}

// ValidateMaxLength checks the maximum length of a string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return Errorf("%s must be at most %d characters long", fieldName, maxLength)
	}
	return nil
}

// ValidateUUID checks that a string is a valid UUID
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return Errorf("%s must be a valid UUID", fieldName)
	}
	return nil
}

// ValidateSlug checks that a string is a valid lowercase URL slug
func ValidateSlug(value, fieldName string) error {
	if !slugPattern.MatchString(value) {
		return Errorf("%s must contain only lowercase letters, digits and hyphens", fieldName)
	}
	return nil
}

// ElectionValidation groups election-specific validations
type ElectionValidation struct{}

// ValidateElectionName checks the name of an election
func (v ElectionValidation) ValidateElectionName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 3, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 100, "name"); err != nil {
		return err
	}
	return nil
}

// ValidateElectionSlug checks the external identifier of an election
func (v ElectionValidation) ValidateElectionSlug(slug string) error {
	if err := ValidateRequired(slug, "election_id"); err != nil {
		return err
	}
	if err := ValidateMaxLength(slug, 64, "election_id"); err != nil {
		return err
	}
	return ValidateSlug(slug, "election_id")
}

// ContestantValidation groups contestant-specific validations
type ContestantValidation struct{}

// ValidateContestantName checks the name of a contestant
func (v ContestantValidation) ValidateContestantName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 2, "name"); err != nil {
		return err
	}
	if err := ValidateMaxLength(name, 100, "name"); err != nil {
		return err
	}
	return nil
}

// ValidateContestantBio checks the biography text of a contestant
func (v ContestantValidation) ValidateContestantBio(bio string) error {
	return ValidateMaxLength(bio, 2000, "bio")
}
