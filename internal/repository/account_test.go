package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Evgen-Mutagen/go-ledger/internal/model"
	"github.com/shopspring/decimal"
)

func TestAccountRowRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		variant   model.Variant
		wantKind  string
		wantLevel sql.NullString
		wantLimit decimal.NullDecimal
	}{
		{"plain", model.Plain{}, "PLAIN", sql.NullString{}, decimal.NullDecimal{}},
		{"saving vip", model.Saving{Level: model.LevelVIP}, "SAVING",
			sql.NullString{String: "VIP", Valid: true}, decimal.NullDecimal{}},
		{"credit", model.Credit{Limit: decimal.RequireFromString("200.50")}, "CREDIT",
			sql.NullString{}, decimal.NullDecimal{Decimal: decimal.RequireFromString("200.50"), Valid: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := toRow(model.NewAccount(1, "A", decimal.Zero, tt.variant))
			if row.kind != tt.wantKind || row.level != tt.wantLevel {
				t.Fatalf("row=%+v", row)
			}
			if row.limit.Valid != tt.wantLimit.Valid || !row.limit.Decimal.Equal(tt.wantLimit.Decimal) {
				t.Fatalf("limit=%+v want %+v", row.limit, tt.wantLimit)
			}

			v, err := row.variant()
			if err != nil {
				t.Fatal(err)
			}
			switch want := tt.variant.(type) {
			case model.Credit:
				got, ok := v.(model.Credit)
				if !ok || !got.Limit.Equal(want.Limit) {
					t.Fatalf("variant=%#v want %#v", v, want)
				}
			default:
				if v != tt.variant {
					t.Fatalf("variant=%#v want %#v", v, tt.variant)
				}
			}
		})
	}
}

// fakeRow fills Scan destinations from a fixed list of column values.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *string:
			*d = v.(string)
		case *time.Time:
			*d = v.(time.Time)
		case *decimal.Decimal:
			*d = v.(decimal.Decimal)
		case *sql.NullString:
			*d = v.(sql.NullString)
		case *decimal.NullDecimal:
			*d = v.(decimal.NullDecimal)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func columns(kind string, level sql.NullString, limit decimal.NullDecimal) []any {
	return []any{
		int64(102), int64(7), "Mary", decimal.RequireFromString("-150"),
		kind, level, limit, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestScanAccount(t *testing.T) {
	limit := decimal.NullDecimal{Decimal: decimal.RequireFromString("200"), Valid: true}
	a, err := scanAccount(fakeRow{values: columns("CREDIT", sql.NullString{}, limit)})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != 102 || a.UserID != 7 || a.Name != "Mary" || !a.Balance.Equal(decimal.RequireFromString("-150")) {
		t.Fatalf("account=%+v", a)
	}
	if !a.Available().Equal(decimal.RequireFromString("50")) {
		t.Fatalf("available=%s want 50", a.Available())
	}

	tests := []struct {
		name    string
		row     fakeRow
		wantErr error
	}{
		{"unknown kind", fakeRow{values: columns("LOAN", sql.NullString{}, decimal.NullDecimal{})}, model.ErrInvalidKind},
		{"unknown level", fakeRow{values: columns("SAVING", sql.NullString{String: "GOLD", Valid: true}, decimal.NullDecimal{})}, model.ErrInvalidLevel},
		{"negative limit", fakeRow{values: columns("CREDIT", sql.NullString{}, decimal.NullDecimal{Decimal: decimal.RequireFromString("-1"), Valid: true})}, model.ErrInvalidLimit},
		{"no rows", fakeRow{err: sql.ErrNoRows}, sql.ErrNoRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := scanAccount(tt.row)
			if !errors.Is(err, tt.wantErr) || a != nil {
				t.Fatalf("a=%v err=%v want %v", a, err, tt.wantErr)
			}
		})
	}
}
