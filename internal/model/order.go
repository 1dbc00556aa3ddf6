package model

import (
	"sort"
	"strings"
)

// AccountOrder selects how account lists are sorted.
type AccountOrder string

const (
	OrderByID      AccountOrder = "id"
	OrderByBalance AccountOrder = "balance"
)

// ParseAccountOrder treats an empty value as OrderByID.
func ParseAccountOrder(s string) (AccountOrder, error) {
	switch o := AccountOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrderByID, nil
	case OrderByID, OrderByBalance:
		return o, nil
	default:
		return "", ErrInvalidOrder
	}
}

// SortAccounts orders accounts in place. Balance order is ascending and
// falls back to ID for equal balances.
func SortAccounts(accounts []*Account, order AccountOrder) {
	switch order {
	case OrderByBalance:
		sort.SliceStable(accounts, func(i, j int) bool {
			if c := accounts[i].Balance.Cmp(accounts[j].Balance); c != 0 {
				return c < 0
			}
			return accounts[i].ID < accounts[j].ID
		})
	default:
		sort.SliceStable(accounts, func(i, j int) bool {
			return accounts[i].ID < accounts[j].ID
		})
	}
}
