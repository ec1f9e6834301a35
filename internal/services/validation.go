package service

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	expiryPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// NewValidator returns the request validator with the checkout tags registered.
// now decides which expiry dates are already in the past.
func NewValidator(now func() time.Time) *validator.Validate {
	v := utils.NewValidator()

	_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		digits := NormalizeCardNumber(fl.Field().String())
		if len(digits) != 16 {
			return false
		}

		for _, r := range digits {
			if r < '0' || r > '9' {
				return false
			}
		}

		return true
	})

	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return validExpiry(fl.Field().String(), now())
	})

	_ = v.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})

	return v
}

// NormalizeCardNumber drops the spaces and dashes people type between digit groups.
func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

// validExpiry accepts MM/YY with a month in 01-12 that is not before the current month.
func validExpiry(expiry string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return false
	}

	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}

	year += 2000
	current := now.Year()*12 + int(now.Month())

	return year*12+month >= current
}

// plainText strips markup from user text. The policy escapes what it keeps, so the
// result is unescaped again; the backend stores text, not HTML.
func plainText(policy *bluemonday.Policy, text string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(text)))
}
