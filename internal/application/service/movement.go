package service

import (
	"strings"
	"time"

	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
)

// movementDate validates a YYYY-MM-DD date, defaulting to today's UTC date
func movementDate(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC().Format(saleform.DateLayout), nil
	}
	if _, err := time.Parse(saleform.DateLayout, raw); err != nil {
		return "", apperror.NewFieldError("date", "Date must be formatted as YYYY-MM-DD")
	}
	return raw, nil
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
