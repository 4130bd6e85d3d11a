package validation

import "fmt"

type Kind int

const (
	KindMissingField Kind = iota + 1
	KindInvalidText
	KindInvalidURL
	KindInvalidRating
	KindEmptyPatch
)

// Error is the single rejection reason for a payload.
type Error struct {
	Kind  Kind
	Field string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("Missing '%s' in request body", e.Field)
	case KindInvalidText:
		return fmt.Sprintf("'%s' must be a string", e.Field)
	case KindInvalidURL:
		return fmt.Sprintf("'%s' must be a valid URL", e.Field)
	case KindInvalidRating:
		return fmt.Sprintf("'%s' must be a number between %v and %v", e.Field, MinRating, MaxRating)
	case KindEmptyPatch:
		return "Request body must contain either 'title', 'url', 'description' or 'rating'"
	default:
		return "invalid bookmark"
	}
}
