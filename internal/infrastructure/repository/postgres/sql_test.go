package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected true for sql.ErrNoRows")
	}
	if isNotFound(errors.New("pq: relation picks does not exist")) {
		t.Fatal("expected false for unrelated error")
	}
}

func TestNullIntRoundTrip(t *testing.T) {
	if got := nullIntToPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null value, got %v", got)
	}

	v := 3
	asNull := ptrToNullInt(&v)
	if !asNull.Valid || asNull.Int64 != 3 {
		t.Fatalf("unexpected null int: %+v", asNull)
	}
	back := nullIntToPtr(asNull)
	if back == nil || *back != 3 {
		t.Fatalf("unexpected round trip: %v", back)
	}
}

func TestNullTimeRoundTrip(t *testing.T) {
	if got := nullTimeToPtr(sql.NullTime{}); got != nil {
		t.Fatalf("expected nil for null time, got %v", got)
	}
	if got := ptrToNullTime(nil); got.Valid {
		t.Fatalf("expected invalid null time, got %+v", got)
	}

	loc := time.FixedZone("WIB", 7*3600)
	in := time.Date(2026, 3, 7, 19, 0, 0, 0, loc)
	out := nullTimeToPtr(ptrToNullTime(&in))
	if out == nil || !out.Equal(in) || out.Location() != time.UTC {
		t.Fatalf("expected UTC-normalized round trip, got %v", out)
	}
}
