package schema

import (
	"math"
	"strconv"
	"strings"

	"github.com/yndnr/migrations-go/internal/core/domain"
)

func stringOp(op Operation) func(string, any) ([]Call, error) {
	return func(key string, value any) ([]Call, error) {
		s, ok := asString(value)
		if !ok {
			return nil, domain.InvalidConfigurationValue(key, "a string", value)
		}
		return []Call{{Key: key, Op: op, String: s}}, nil
	}
}

func columnLength(key string, value any) ([]Call, error) {
	n, ok := asInt(value)
	if !ok || n <= 0 {
		return nil, domain.InvalidConfigurationValue(key, "a positive integer", value)
	}
	return []Call{{Key: key, Op: OpSetMigrationsColumnLength, Int: n}}, nil
}

// organizeMigrations only ever enables the year/month layout; other values
// are accepted and ignored.
func organizeMigrations(key string, value any) ([]Call, error) {
	s, ok := value.(string)
	if !ok || !strings.EqualFold(strings.TrimSpace(s), OrganizeByYearAndMonth) {
		return nil, nil
	}
	return []Call{{Key: key, Op: OpSetMigrationsAreOrganizedByYearAndMonth}}, nil
}

func migrationsDirectory(key string, value any) ([]Call, error) {
	dir, ok := asString(value)
	if !ok {
		return nil, domain.InvalidConfigurationValue(key, "a directory path", value)
	}
	return []Call{
		{Key: key, Op: OpSetMigrationsDirectory, String: dir},
		{Key: key, Op: OpRegisterMigrationsFromDirectory, String: dir},
	}, nil
}

func migrationList(key string, value any) ([]Call, error) {
	var items []any
	switch v := value.(type) {
	case []any:
		items = v
	case []map[string]any:
		items = make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
	default:
		return nil, domain.InvalidConfigurationValue(key, "a list of migrations", value)
	}

	calls := make([]Call, 0, len(items))
	for i, item := range items {
		m, err := migrationEntry(i+1, item)
		if err != nil {
			return nil, err
		}
		calls = append(calls, Call{Key: key, Op: OpRegisterMigration, Migration: m})
	}
	return calls, nil
}

func migrationEntry(n int, item any) (domain.Migration, error) {
	record, ok := item.(map[string]any)
	if !ok {
		return domain.Migration{}, domain.ErrInvalidMigrationEntry.WithMessage(
			"Migration entry #%d must be a record with %q and %q, got %T.", n, migrationFieldVersion, migrationFieldClass, item)
	}
	for field := range record {
		if field != migrationFieldVersion && field != migrationFieldClass {
			return domain.Migration{}, domain.ErrInvalidMigrationEntry.WithMessage(
				"Migration entry #%d has unknown field %q.", n, field)
		}
	}

	var m domain.Migration
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{migrationFieldVersion, &m.Version},
		{migrationFieldClass, &m.Class},
	} {
		raw, present := record[f.name]
		if !present || raw == nil {
			return domain.Migration{}, domain.ErrInvalidMigrationEntry.WithMessage(
				"Migration entry #%d is missing required field %q.", n, f.name)
		}
		s, ok := asString(raw)
		if !ok || s == "" {
			return domain.Migration{}, domain.ErrInvalidMigrationEntry.WithMessage(
				"Migration entry #%d field %q must be a non-empty string.", n, f.name)
		}
		*f.dst = s
	}
	return m, nil
}

func allOrNothing(key string, value any) ([]Call, error) {
	b, ok := asBool(value)
	if !ok {
		return nil, domain.InvalidConfigurationValue(key, "a boolean", value)
	}
	return []Call{{Key: key, Op: OpSetAllOrNothing, Bool: b}}, nil
}

// asString accepts strings and integral numbers. Text formats hand out
// numbers for unquoted versions such as 20240101120000.
func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return asString(float64(v))
	}
	if n, ok := asInt64(value); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// asInt accepts integers, integral floats (JSON) and decimal strings (XML, env).
func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return int(v), true
	case float32:
		return asInt(float64(v))
	}
	n, ok := asInt64(value)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), uint64(v) <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	default:
		return 0, false
	}
}

// asBool accepts booleans, strconv.ParseBool strings and the integers 0 and 1.
func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	}
	if n, ok := asInt(value); ok && (n == 0 || n == 1) {
		return n == 1, true
	}
	return false, false
}
