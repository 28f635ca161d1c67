// service/evaluator.go
package service

import (
	"fmt"
	"strings"
	"time"

	sub_errors "github.com/dev-mohitbeniwal/subexpiry/errors"
	"github.com/dev-mohitbeniwal/subexpiry/model"
)

// Layouts tried in order for zone-aware values.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// Layouts without an offset; interpreted in the evaluator's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
}

const dateOnlyLayout = "2006-01-02"

// Evaluator classifies raw cache values. It holds no state besides its settings.
type Evaluator struct {
	sentinel string
	location *time.Location
}

func NewEvaluator(sentinel string, location *time.Location) *Evaluator {
	if sentinel == "" {
		sentinel = model.ExpiredSentinel
	}
	if location == nil {
		location = time.Local
	}
	return &Evaluator{sentinel: sentinel, location: location}
}

// Evaluate decides what to do with one entry at instant now.
func (e *Evaluator) Evaluate(id, raw string, now time.Time) model.Decision {
	decision := model.Decision{ID: id}

	if raw == e.sentinel {
		decision.Kind = model.DecisionAlreadyExpired
		return decision
	}

	datePart, annotation := splitAnnotation(raw)
	decision.Annotation = annotation

	expireAt, err := e.parseExpireDate(datePart)
	if err != nil {
		decision.Kind = model.DecisionMalformed
		decision.Err = err
		return decision
	}

	decision.ExpireAt = expireAt
	if !expireAt.After(now) {
		decision.Kind = model.DecisionDueNow
		return decision
	}

	decision.Kind = model.DecisionDueLater
	decision.Delay = expireAt.Sub(now)
	return decision
}

// splitAnnotation separates the " (specific)" marker from the date.
func splitAnnotation(raw string) (string, string) {
	if strings.HasSuffix(raw, model.AnnotationSpecific) {
		annotation := strings.TrimSuffix(strings.TrimPrefix(model.AnnotationSpecific, " ("), ")")
		return strings.TrimSuffix(raw, model.AnnotationSpecific), annotation
	}
	return raw, ""
}

func (e *Evaluator) parseExpireDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", sub_errors.ErrMalformedExpiry)
	}

	// Date.toString() output carries a zone name after the offset.
	if strings.Contains(value, " GMT") {
		if i := strings.LastIndex(value, " ("); i > 0 && strings.HasSuffix(value, ")") {
			value = value[:i]
		}
	}

	// Bare dates are UTC midnight, matching how the writers produce them.
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t, nil
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, e.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", sub_errors.ErrMalformedExpiry, value)
}
