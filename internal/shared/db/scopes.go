// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"strings"

	"gorm.io/gorm"
)

// NotDeleted filters out soft-deleted rows. Needed on Table()/raw joins where
// gorm does not add the deleted_at predicate itself.
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}

// NotDeletedWithAlias is NotDeleted for an aliased table in a join.
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}

// Paginate applies LIMIT/OFFSET for a 1-indexed page. A non-positive size
// leaves the query unpaginated.
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if size <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}

// likeEscape is the LIKE escape character. Backslash would need doubling in
// MySQL string literals, so a neutral character is used on every dialect.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// EscapeLike makes text match literally inside a LIKE pattern.
func EscapeLike(text string) string {
	return likeEscaper.Replace(text)
}

// ContainsFold keeps rows whose column contains text, ignoring case.
// Wildcards in text are matched literally.
func ContainsFold(column, text string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		pattern := "%" + EscapeLike(strings.ToLower(text)) + "%"
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	}
}
