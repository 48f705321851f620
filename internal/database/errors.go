// internal/database/errors.go
package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/i18n"
)

// TranslateError maps raw persistence errors onto the fixed set of
// user-facing messages by substring matching, hiding driver detail from end
// users. The full error stays available to callers for logging.
func TranslateError(lang string, err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return i18n.T(lang, i18n.KeyErrNotFound)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return i18n.T(lang, i18n.KeyErrDuplicate)
	case strings.Contains(msg, "foreign key"):
		return i18n.T(lang, i18n.KeyErrForeignKey)
	case strings.Contains(msg, "not found"):
		return i18n.T(lang, i18n.KeyErrNotFound)
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "row-level security"):
		return i18n.T(lang, i18n.KeyErrPermission)
	default:
		return i18n.T(lang, i18n.KeyErrUnknown)
	}
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
