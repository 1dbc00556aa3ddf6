package model

import (
	"errors"
	"testing"
)

func TestParseAccountOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    AccountOrder
		wantErr error
	}{
		{"", OrderByID, nil},
		{"id", OrderByID, nil},
		{"Balance", OrderByBalance, nil},
		{"name", "", ErrInvalidOrder},
	}
	for _, tt := range tests {
		got, err := ParseAccountOrder(tt.in)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("ParseAccountOrder(%q)=(%q,%v) want (%q,%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestSortAccounts(t *testing.T) {
	accounts := []*Account{
		NewAccount(3, "C", d("50"), nil),
		NewAccount(1, "A", d("200"), nil),
		NewAccount(4, "D", d("-20"), Credit{Limit: d("100")}),
		NewAccount(2, "B", d("50"), nil),
	}

	SortAccounts(accounts, OrderByBalance)
	if got := ids(accounts); got != [4]int64{4, 2, 3, 1} {
		t.Fatalf("by balance=%v", got)
	}

	SortAccounts(accounts, OrderByID)
	if got := ids(accounts); got != [4]int64{1, 2, 3, 4} {
		t.Fatalf("by id=%v", got)
	}
}

func ids(accounts []*Account) [4]int64 {
	var out [4]int64
	for i, a := range accounts {
		out[i] = a.ID
	}
	return out
}
