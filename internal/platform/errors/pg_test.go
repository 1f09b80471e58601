package errors

import (
	stderrs "errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code}
}

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},    // unique violation
		{"23503", ErrorCodeInvalidArgument}, // fk violation maps to bad input
		{"23502", ErrorCodeValidation},      // not null
		{"23514", ErrorCodeValidation},      // check
		{"22001", ErrorCodeInvalidArgument}, // string truncation
		{"22P02", ErrorCodeInvalidArgument}, // invalid text representation
		{"40001", ErrorCodeDB},              // serialization failure
		{"40P01", ErrorCodeDB},              // deadlock
		{"55P03", ErrorCodeDB},              // lock not available
		{"25006", ErrorCodeUnavailable},     // read-only
		{"57P03", ErrorCodeUnavailable},     // cannot connect now
		{"XXXXX", ErrorCodeDB},              // default branch
	}
	for _, c := range cases {
		got, ok := DBErrorCode(pg(c.code))
		if !ok {
			t.Fatalf("expected ok for PgError code %s", c.code)
		}
		if got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v, want %v", c.code, got, c.want)
		}
	}

	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("DBErrorCode should return ok=false for non-pg error")
	}
}

func TestFromPostgresVariants(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("FromPostgres(nil) should be nil")
	}
	if FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatalf("FromPostgresf(nil) should be nil")
	}

	err := FromPostgres(pg("23505"), "insert audit")
	if CodeOf(err) != ErrorCodeDuplicateKey {
		t.Fatalf("FromPostgres map code = %v", CodeOf(err))
	}
	errf := FromPostgresf(pg("22P02"), "bad: %s", "audit_id")
	if CodeOf(errf) != ErrorCodeInvalidArgument {
		t.Fatalf("FromPostgresf code = %v, want %v", CodeOf(errf), ErrorCodeInvalidArgument)
	}

	// foreign errors still wrap as generic DB errors
	other := FromPostgres(stderrs.New("boom"), "query")
	if CodeOf(other) != ErrorCodeDB {
		t.Fatalf("FromPostgres(foreign) code = %v", CodeOf(other))
	}

	// a no-rows result becomes a not found
	noRows := FromPostgres(pgx.ErrNoRows, "get audit")
	if CodeOf(noRows) != ErrorCodeNotFound {
		t.Fatalf("FromPostgres(ErrNoRows) code = %v", CodeOf(noRows))
	}
	sentinel := FromPostgres(ErrNotFound, "get audit")
	if CodeOf(sentinel) != ErrorCodeNotFound {
		t.Fatalf("FromPostgres(ErrNotFound) code = %v", CodeOf(sentinel))
	}

	// an already coded error keeps its code
	coded := FromPostgres(New(ErrorCodeValidation, "bad phrase"), "insert phrase")
	if CodeOf(coded) != ErrorCodeValidation {
		t.Fatalf("FromPostgres(coded) code = %v", CodeOf(coded))
	}
}

func TestExtractAndPredicates(t *testing.T) {
	wrapped := Wrap(pg("23505"), ErrorCodeDuplicateKey, "dup")

	pe, ok := ExtractPgError(wrapped)
	if !ok || pe.Code != "23505" {
		t.Fatalf("ExtractPgError failed: %v %v", pe, ok)
	}
	if _, ok := ExtractPgError(stderrs.New("x")); ok {
		t.Fatalf("ExtractPgError true for foreign error")
	}

	if !IsSQLState(wrapped, "23505") || IsSQLState(wrapped, "40001") {
		t.Fatalf("IsSQLState mismatch")
	}
	if !IsDuplicateKey(wrapped) || IsDuplicateKey(stderrs.New("x")) {
		t.Fatalf("IsDuplicateKey mismatch")
	}
}
