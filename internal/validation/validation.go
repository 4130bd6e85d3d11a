// Package validation decides whether a bookmark payload may be persisted.
//
// Rules run in a fixed order and the first failure is reported, so a payload
// with several problems always yields the same error.
package validation

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/Rogue-Bear-Innovations/bookmarks-server/internal/models"
)

const (
	FieldTitle       = "title"
	FieldURL         = "url"
	FieldDescription = "description"
	FieldRating      = "rating"

	MinRating = 0
	MaxRating = 5
)

// Fields lists the bookmark payload keys in validation order.
var Fields = []string{FieldTitle, FieldURL, FieldDescription, FieldRating}

var validate = validator.New()

type rule struct {
	field string
	check func(v interface{}) bool
	kind  Kind
}

var rules = []rule{
	{field: FieldTitle, check: isPresent, kind: KindMissingField},
	{field: FieldURL, check: isPresent, kind: KindMissingField},
	{field: FieldDescription, check: isPresent, kind: KindMissingField},
	{field: FieldRating, check: isPresent, kind: KindMissingField},
	{field: FieldTitle, check: isText, kind: KindInvalidText},
	{field: FieldDescription, check: isText, kind: KindInvalidText},
	{field: FieldURL, check: isWebURL, kind: KindInvalidURL},
	{field: FieldRating, check: isRating, kind: KindInvalidRating},
}

// ValidateNewBookmark checks a create payload and returns the four bookmark
// fields. Keys other than the bookmark fields are ignored.
func ValidateNewBookmark(payload map[string]interface{}) (models.NewBookmark, error) {
	for _, r := range rules {
		if !r.check(payload[r.field]) {
			return models.NewBookmark{}, &Error{Kind: r.kind, Field: r.field}
		}
	}

	rating, _ := toFloat(payload[FieldRating])
	return models.NewBookmark{
		Title:       payload[FieldTitle].(string),
		URL:         payload[FieldURL].(string),
		Description: payload[FieldDescription].(string),
		Rating:      rating,
	}, nil
}

// ValidateBookmarkPatch checks an update payload. At least one bookmark field
// must be present; present fields go through the same rules as on create.
func ValidateBookmarkPatch(payload map[string]interface{}) (models.BookmarkPatch, error) {
	present := false
	for _, f := range Fields {
		if isPresent(payload[f]) {
			present = true
			break
		}
	}
	if !present {
		return models.BookmarkPatch{}, &Error{Kind: KindEmptyPatch}
	}

	for _, r := range rules {
		v := payload[r.field]
		if r.kind == KindMissingField || !isPresent(v) {
			continue
		}
		if !r.check(v) {
			return models.BookmarkPatch{}, &Error{Kind: r.kind, Field: r.field}
		}
	}

	patch := models.BookmarkPatch{}
	if v, ok := payload[FieldTitle].(string); ok {
		patch.Title = &v
	}
	if v, ok := payload[FieldURL].(string); ok {
		patch.URL = &v
	}
	if v, ok := payload[FieldDescription].(string); ok {
		patch.Description = &v
	}
	if v, ok := toFloat(payload[FieldRating]); ok {
		patch.Rating = &v
	}
	return patch, nil
}

// isPresent treats only a missing key or JSON null as absent.
func isPresent(v interface{}) bool {
	return v != nil
}

func isText(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

func isWebURL(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	if validate.Var(s, "http_url") != nil {
		return false
	}
	// http_url only requires a non-empty authority, so "http://:80" passes it.
	u, err := url.Parse(s)
	return err == nil && u.Hostname() != ""
}

func isRating(v interface{}) bool {
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	return validate.Var(f, fmt.Sprintf("gte=%d,lte=%d", MinRating, MaxRating)) == nil
}

// toFloat accepts the numeric types a decoded payload can carry.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
