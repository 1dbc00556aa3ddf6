package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Evgen-Mutagen/go-ledger/internal/model"
)

// MemoryStore keeps users, accounts and operations in process memory behind
// a single mutex. It backs every repository interface and is used when no
// database is configured. Data is lost on restart.
type MemoryStore struct {
	mu         sync.Mutex
	nextUserID int64
	nextOpID   int64
	users      map[int64]*model.User
	accounts   map[int64]*model.Account
	operations map[int64][]*model.Operation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]*model.User),
		accounts:   make(map[int64]*model.Account),
		operations: make(map[int64][]*model.Operation),
	}
}

func (s *MemoryStore) Users() UserRepository           { return memoryUsers{s} }
func (s *MemoryStore) Accounts() AccountRepository     { return memoryAccounts{s} }
func (s *MemoryStore) Operations() OperationRepository { return memoryOperations{s} }

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Login == user.Login {
			return ErrUserExists
		}
	}
	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = time.Now()
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r memoryUsers) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Login == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memoryUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type memoryAccounts struct{ s *MemoryStore }

func (r memoryAccounts) Create(ctx context.Context, account *model.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[account.ID]; ok {
		return ErrAccountExists
	}
	account.CreatedAt = time.Now()
	cp := *account
	r.s.accounts[account.ID] = &cp
	return nil
}

func (r memoryAccounts) GetByID(ctx context.Context, userID, id int64) (*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r memoryAccounts) GetByUserID(ctx context.Context, userID int64) ([]*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*model.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryAccounts) Update(ctx context.Context, userID, id int64, kind model.OperationKind, fn model.Mutation) (*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.accounts[id]
	if !ok || stored.UserID != userID {
		return nil, ErrAccountNotFound
	}

	// Mutate a copy so a failed mutation leaves the stored account untouched.
	work := *stored
	amount, err := fn(&work)
	if err != nil {
		return nil, err
	}
	*stored = work

	r.s.nextOpID++
	r.s.operations[id] = append(r.s.operations[id], &model.Operation{
		ID:           r.s.nextOpID,
		AccountID:    id,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: work.Balance,
		ProcessedAt:  time.Now(),
	})

	cp := work
	return &cp, nil
}

type memoryOperations struct{ s *MemoryStore }

func (r memoryOperations) GetByAccountID(ctx context.Context, accountID int64) ([]*model.Operation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ops := r.s.operations[accountID]
	out := make([]*model.Operation, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		cp := *ops[i]
		out = append(out, &cp)
	}
	return out, nil
}
