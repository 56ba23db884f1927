// Package query holds the list-query wire contract shared by tickets, topics
// and holidays, and its translation into whitelisted column conditions.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/deskhub/deskhub/internal/shared/constants"
	"github.com/deskhub/deskhub/internal/shared/errors"
)

// Params is the body the front-end posts as "queryParams". Field names are
// part of the wire contract.
type Params struct {
	Filter       map[string]any `json:"filter"`
	PageNumber   int            `json:"pageNumber"`
	PageSize     int            `json:"pageSize"`
	SortField    string         `json:"sortField"`
	SortOrder    string         `json:"sortOrder"`
	AccessEntity []uint         `json:"access_entity"`
	AccessTeam   []uint         `json:"access_team"`
	Read         uint           `json:"read"`
	TypeUser     string         `json:"typeUser"`
	AssignedTo   *uint          `json:"assigned_to,omitempty"`
	Month        int            `json:"month,omitempty"`
}

// Page returns the 1-indexed page, defaulting to 1.
func (p Params) Page() int {
	if p.PageNumber < 1 {
		return constants.DefaultPage
	}
	return p.PageNumber
}

// Size returns the page size, defaulting to 10 and capped at MaxPageSize.
func (p Params) Size() int {
	switch {
	case p.PageSize < 1:
		return constants.DefaultPageSize
	case p.PageSize > constants.MaxPageSize:
		return constants.MaxPageSize
	default:
		return p.PageSize
	}
}

// Paginated reports whether the caller asked for a page at all. Topic lists
// without paging fields return everything.
func (p Params) Paginated() bool {
	return p.PageNumber > 0 || p.PageSize > 0
}

// Descending is true unless sortOrder is "asc".
func (p Params) Descending() bool {
	return !strings.EqualFold(p.SortOrder, "asc")
}

// Kind is the column type a filter value is coerced to.
type Kind int

const (
	KindUint Kind = iota
	KindString
	KindBool
)

// Field maps a wire filter key onto a column.
type Field struct {
	Column string
	Kind   Kind
}

// Condition is one sparse, already-coerced filter term. When In is set,
// Value is a []any matched with IN.
type Condition struct {
	Column string
	Value  any
	In     bool
}

// Conditions coerces the sparse filter against the whitelist. Empty, zero
// and false values are skipped; unknown keys are ignored. The result is
// ordered by key so generated SQL is stable.
func (p Params) Conditions(fields map[string]Field) ([]Condition, error) {
	keys := make([]string, 0, len(p.Filter))
	for k := range p.Filter {
		if _, ok := fields[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	conds := make([]Condition, 0, len(keys))
	for _, k := range keys {
		f := fields[k]
		if list, ok := asList(p.Filter[k]); ok {
			values, err := coerceAll(list, f.Kind)
			if err != nil {
				return nil, errors.NewValidationError("invalid filter value", fmt.Sprintf("%s: %v", k, err))
			}
			if len(values) > 0 {
				conds = append(conds, Condition{Column: f.Column, Value: values, In: true})
			}
			continue
		}

		v, present, err := coerce(p.Filter[k], f.Kind)
		if err != nil {
			return nil, errors.NewValidationError("invalid filter value", fmt.Sprintf("%s: %v", k, err))
		}
		if present {
			conds = append(conds, Condition{Column: f.Column, Value: v})
		}
	}
	return conds, nil
}

// OrderBy resolves sortField through the whitelist. Unknown or empty fields
// fall back to fallback (a full ORDER BY expression).
func (p Params) OrderBy(allowed map[string]string, fallback string) string {
	col, ok := allowed[p.SortField]
	if !ok {
		return fallback
	}
	if p.Descending() {
		return col + " DESC"
	}
	return col + " ASC"
}

// asList recognises both a plain array and the ["In", [...]] form.
func asList(raw any) ([]any, bool) {
	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	if len(list) == 2 {
		if op, isOp := list[0].(string); isOp && strings.EqualFold(op, "in") {
			inner, _ := list[1].([]any)
			return inner, true
		}
	}
	return list, true
}

func coerceAll(list []any, kind Kind) ([]any, error) {
	out := make([]any, 0, len(list))
	for _, raw := range list {
		v, present, err := coerce(raw, kind)
		if err != nil {
			return nil, err
		}
		if present {
			out = append(out, v)
		}
	}
	return out, nil
}

func coerce(raw any, kind Kind) (any, bool, error) {
	if m, ok := raw.(map[string]any); ok {
		raw = m["id"]
	}
	if raw == nil {
		return nil, false, nil
	}

	switch kind {
	case KindUint:
		n, err := toUint(raw)
		if err != nil {
			return nil, false, err
		}
		return n, n != 0, nil
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, false, fmt.Errorf("expected boolean")
		}
		return b, b, nil
	default:
		s := strings.TrimSpace(fmt.Sprint(raw))
		return s, s != "", nil
	}
}

func toUint(raw any) (uint, error) {
	switch v := raw.(type) {
	case float64:
		if v < 0 || v != float64(uint(v)) {
			return 0, fmt.Errorf("expected positive integer")
		}
		return uint(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("expected positive integer")
		}
		return uint(v), nil
	case uint:
		return v, nil
	case string:
		if v == "" {
			return 0, nil
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("expected positive integer")
		}
		return uint(n), nil
	default:
		return 0, fmt.Errorf("expected positive integer")
	}
}
