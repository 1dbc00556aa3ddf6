package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Evgen-Mutagen/go-ledger/internal/model"
	"github.com/shopspring/decimal"
)

func newAccount(t *testing.T, repo AccountRepository, userID, id int64, balance string, v model.Variant) {
	t.Helper()
	a := model.NewAccount(id, "acc", decimal.RequireFromString(balance), v)
	a.UserID = userID
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create(%d): %v", id, err)
	}
}

func TestMemoryAccountsCreateAndOwnership(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Accounts()

	newAccount(t, repo, 1, 101, "100", nil)
	newAccount(t, repo, 1, 100, "5", model.Saving{Level: model.LevelVIP})
	newAccount(t, repo, 2, 200, "0", nil)

	dup := model.NewAccount(101, "other", decimal.Zero, nil)
	dup.UserID = 2
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("err=%v want ErrAccountExists", err)
	}

	if a, err := repo.GetByID(ctx, 2, 101); err != nil || a != nil {
		t.Fatalf("foreign account visible: a=%v err=%v", a, err)
	}

	list, err := repo.GetByUserID(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != 100 || list[1].ID != 101 {
		t.Fatalf("list=%v want ids [100 101]", list)
	}
	if list[0].Kind() != model.KindSaving {
		t.Fatalf("kind=%s want SAVING", list[0].Kind())
	}
}

func TestMemoryAccountsUpdateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	accounts, ops := store.Accounts(), store.Operations()
	newAccount(t, accounts, 1, 101, "100", nil)

	_, err := accounts.Update(ctx, 1, 101, model.OperationWithdraw, model.WithdrawMutation(decimal.RequireFromString("500")))
	if !errors.Is(err, model.ErrInsufficientFunds) {
		t.Fatalf("err=%v want ErrInsufficientFunds", err)
	}
	a, _ := accounts.GetByID(ctx, 1, 101)
	if !a.Balance.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("balance=%s want 100", a.Balance)
	}
	if got, _ := ops.GetByAccountID(ctx, 101); len(got) != 0 {
		t.Fatalf("rejected mutation recorded %d operations", len(got))
	}

	if _, err := accounts.Update(ctx, 1, 101, model.OperationDeposit, model.DepositMutation(decimal.RequireFromString("50"))); err != nil {
		t.Fatal(err)
	}
	if _, err := accounts.Update(ctx, 1, 101, model.OperationWithdraw, model.WithdrawMutation(decimal.RequireFromString("30"))); err != nil {
		t.Fatal(err)
	}

	got, _ := ops.GetByAccountID(ctx, 101)
	if len(got) != 2 {
		t.Fatalf("operations=%d want 2", len(got))
	}
	if got[0].Kind != model.OperationWithdraw || !got[0].Amount.Equal(decimal.RequireFromString("-30")) || !got[0].BalanceAfter.Equal(decimal.RequireFromString("120")) {
		t.Fatalf("newest operation=%+v", got[0])
	}

	if _, err := accounts.Update(ctx, 2, 101, model.OperationDeposit, model.DepositMutation(decimal.NewFromInt(1))); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err=%v want ErrAccountNotFound", err)
	}
}

func TestMemoryConcurrentWithdrawalsKeepFloor(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Accounts()
	newAccount(t, repo, 1, 102, "150", model.Credit{Limit: decimal.NewFromInt(200)})

	const n = 500
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, 1, 102, model.OperationWithdraw, model.WithdrawMutation(decimal.NewFromInt(1)))
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else if !errors.Is(err, model.ErrInsufficientFunds) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 350 {
		t.Fatalf("successful withdrawals=%d want 350", ok)
	}
	a, _ := repo.GetByID(ctx, 1, 102)
	if !a.Balance.Equal(decimal.NewFromInt(-200)) {
		t.Fatalf("balance=%s want -200", a.Balance)
	}
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	u := &model.User{Login: "simon", PasswordHash: "x"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	if u.ID == 0 {
		t.Fatal("id not assigned")
	}
	if err := users.Create(ctx, &model.User{Login: "simon"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("err=%v want ErrUserExists", err)
	}
	got, err := users.GetByLogin(ctx, "simon")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("GetByLogin=%v err=%v", got, err)
	}
	if got, _ := users.GetByLogin(ctx, "mary"); got != nil {
		t.Fatalf("unknown login returned %v", got)
	}
}
