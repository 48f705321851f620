// internal/database/errors_test.go
package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/alluracouro/allura-backend/internal/i18n"
)

// Without loaded locales i18n.T echoes the key, which is exactly what these
// assertions pin down: the mapping from raw errors to message keys.
func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"gorm not found", gorm.ErrRecordNotFound, i18n.KeyErrNotFound},
		{"wrapped not found", errors.New("brand not found"), i18n.KeyErrNotFound},
		{"duplicate key", errors.New(`pq: duplicate key value violates unique constraint "idx_products_slug"`), i18n.KeyErrDuplicate},
		{"foreign key", errors.New(`pq: update or delete on table "brands" violates foreign key constraint`), i18n.KeyErrForeignKey},
		{"permission", errors.New("pq: permission denied for table orders"), i18n.KeyErrPermission},
		{"anything else", errors.New("dial tcp: connection refused"), i18n.KeyErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateError("pt_BR", tt.err))
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(errors.New("ERROR: duplicate key value violates unique constraint")))
	assert.True(t, IsDuplicate(errors.New(`UNIQUE constraint failed: users.email`)))
	assert.False(t, IsDuplicate(errors.New("record not found")))
	assert.False(t, IsDuplicate(nil))
}
