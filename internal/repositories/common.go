package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Pagination - параметры постраничной выборки
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) normalized() Pagination {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	return p
}

func (p Pagination) Offset() int {
	n := p.normalized()
	return (n.Page - 1) * n.PageSize
}

func (p Pagination) Limit() int {
	return p.normalized().PageSize
}

// isUniqueViolation распознает нарушение уникального индекса.
// С TranslateError=true драйверы возвращают gorm.ErrDuplicatedKey,
// текстовая проверка - запасной вариант для драйверов без переводчика ошибок.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
