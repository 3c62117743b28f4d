package wallet

import (
	"context"
	"testing"
	"time"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWalletRepo is an in-memory ledger. ExecuteInTransaction snapshots state
// and restores it when fn fails, matching rollback semantics.
type fakeWalletRepo struct {
	wallets      map[string]*models.Wallet // by wallet ID
	byUser       map[string]string         // userID -> wallet ID
	transactions []models.Transaction

	dupOnCreate     bool
	createCalls     int
	forUpdateMisses int
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets: make(map[string]*models.Wallet),
		byUser:  make(map[string]string),
	}
}

func (f *fakeWalletRepo) CreateWallet(_ context.Context, w *models.Wallet) error {
	f.createCalls++
	if f.dupOnCreate {
		return repositories.ErrDuplicateWallet
	}
	if _, exists := f.byUser[w.UserID]; exists {
		return repositories.ErrDuplicateWallet
	}
	w.ID = uuid.NewString()
	w.Balance = decimal.Zero
	w.Points = 0
	w.CreatedAt = time.Now().UTC()
	cp := *w
	f.wallets[w.ID] = &cp
	f.byUser[w.UserID] = w.ID
	return nil
}

func (f *fakeWalletRepo) GetWalletByUserID(_ context.Context, userID string) (*models.Wallet, error) {
	id, ok := f.byUser[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *f.wallets[id]
	return &cp, nil
}

func (f *fakeWalletRepo) GetWalletByUserIDForUpdate(ctx context.Context, userID string) (*models.Wallet, error) {
	if f.forUpdateMisses > 0 {
		f.forUpdateMisses--
		return nil, repositories.ErrWalletNotFound
	}
	return f.GetWalletByUserID(ctx, userID)
}

func (f *fakeWalletRepo) GetWalletByID(_ context.Context, walletID string) (*models.Wallet, error) {
	w, ok := f.wallets[walletID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWalletRepo) GetWalletByIDForUpdate(ctx context.Context, walletID string) (*models.Wallet, error) {
	return f.GetWalletByID(ctx, walletID)
}

func (f *fakeWalletRepo) UpdateWallet(_ context.Context, w *models.Wallet) error {
	if _, ok := f.wallets[w.ID]; !ok {
		return repositories.ErrWalletNotFound
	}
	cp := *w
	f.wallets[w.ID] = &cp
	return nil
}

func (f *fakeWalletRepo) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeWalletRepo) GetTransactionByExternalRef(_ context.Context, ref string) (*models.Transaction, error) {
	for i := range f.transactions {
		if f.transactions[i].ExternalReference == ref {
			cp := f.transactions[i]
			return &cp, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (f *fakeWalletRepo) GetTransactionByExternalRefForUpdate(ctx context.Context, ref string) (*models.Transaction, error) {
	return f.GetTransactionByExternalRef(ctx, ref)
}

func (f *fakeWalletRepo) UpdateTransactionStatus(_ context.Context, txID, status string) error {
	for i := range f.transactions {
		if f.transactions[i].ID == txID {
			f.transactions[i].Status = status
			return nil
		}
	}
	return repositories.ErrTransactionNotFound
}

func (f *fakeWalletRepo) ListTransactions(_ context.Context, walletID string, limit, offset int) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := range f.transactions {
		if f.transactions[i].WalletID == walletID {
			out = append(out, f.transactions[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeWalletRepo) ListPendingOlderThan(_ context.Context, kind string, cutoff time.Time, limit int) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := range f.transactions {
		tx := f.transactions[i]
		if tx.Kind == kind && tx.Status == models.TransactionStatusPending && tx.CreatedAt.Before(cutoff) {
			out = append(out, tx)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeWalletRepo) ExecuteInTransaction(fn func(tx repositories.WalletRepository) error) error {
	snapWallets := make(map[string]*models.Wallet, len(f.wallets))
	for id, w := range f.wallets {
		cp := *w
		snapWallets[id] = &cp
	}
	snapByUser := make(map[string]string, len(f.byUser))
	for k, v := range f.byUser {
		snapByUser[k] = v
	}
	snapTxs := append([]models.Transaction(nil), f.transactions...)

	if err := fn(f); err != nil {
		f.wallets = snapWallets
		f.byUser = snapByUser
		f.transactions = snapTxs
		return err
	}
	return nil
}

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) GetWallet(context.Context, string) (*models.Wallet, error) {
	return nil, repositories.ErrWalletNotFound
}
func (c *recordingCache) SetWallet(context.Context, *models.Wallet) error { return nil }
func (c *recordingCache) InvalidateWallet(_ context.Context, userID string) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func TestGetOrCreateWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("creates wallet on first access", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil)

		w, err := svc.GetOrCreateWallet(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", w.UserID)
		assert.True(t, w.Balance.IsZero())
		assert.Zero(t, w.Points)
	})

	t.Run("returns the same wallet on repeated calls", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil)

		first, err := svc.GetOrCreateWallet(ctx, "user-1")
		require.NoError(t, err)
		second, err := svc.GetOrCreateWallet(ctx, "user-1")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, repo.createCalls)
	})

	t.Run("losing a concurrent create race returns the winner's wallet", func(t *testing.T) {
		repo := newFakeWalletRepo()
		winner := &models.Wallet{UserID: "user-1"}
		require.NoError(t, repo.CreateWallet(ctx, winner))
		repo.dupOnCreate = true

		svc := NewService(repo, nil)
		w, err := svc.GetOrCreateWallet(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, winner.ID, w.ID)
	})
}

func TestApplyTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("credit increases balance and records a completed entry", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil)

		ok, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(50), models.TransactionKindCredit, "top-up", 0)
		require.NoError(t, err)
		assert.True(t, ok)

		w, err := repo.GetWalletByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, w.Balance.Equal(decimal.NewFromInt(50)))

		require.Len(t, repo.transactions, 1)
		assert.Equal(t, models.TransactionStatusCompleted, repo.transactions[0].Status)
		assert.Equal(t, w.ID, repo.transactions[0].WalletID)
	})

	t.Run("overdraft is refused and leaves the wallet untouched", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil)

		ok, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(30), models.TransactionKindCredit, "seed", 0)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(-100), models.TransactionKindDebit, "too much", 0)
		require.NoError(t, err)
		assert.False(t, ok)

		w, err := repo.GetWalletByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, w.Balance.Equal(decimal.NewFromInt(30)))
		assert.Len(t, repo.transactions, 1, "refused debit must not add a ledger entry")
	})

	t.Run("debit up to the full balance succeeds", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil)

		_, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(30), models.TransactionKindCredit, "seed", 0)
		require.NoError(t, err)

		ok, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(-30), models.TransactionKindDebit, "drain", 0)
		require.NoError(t, err)
		assert.True(t, ok)

		w, err := repo.GetWalletByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, w.Balance.IsZero())
	})

	t.Run("spending more points than held is refused", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil)

		_, err := svc.ApplyTransaction(ctx, "user-1", decimal.Zero, models.TransactionKindPointExchange, "earn", 10)
		require.NoError(t, err)

		ok, err := svc.ApplyTransaction(ctx, "user-1", decimal.Zero, models.TransactionKindPointExchange, "spend", -11)
		require.NoError(t, err)
		assert.False(t, ok)

		w, err := repo.GetWalletByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(10), w.Points)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		repo := newFakeWalletRepo()
		svc := NewService(repo, nil)

		_, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(1), "lottery", "nope", 0)
		assert.ErrorIs(t, err, ErrInvalidKind)
		assert.Empty(t, repo.transactions)
	})

	t.Run("losing the first-touch race still applies against the winner's row", func(t *testing.T) {
		repo := newFakeWalletRepo()
		winner := &models.Wallet{UserID: "user-1"}
		require.NoError(t, repo.CreateWallet(ctx, winner))

		// The locked read misses the row the concurrent creator just
		// committed, and the insert then hits the unique index.
		repo.forUpdateMisses = 1
		repo.dupOnCreate = true

		svc := NewService(repo, nil)
		ok, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(5), models.TransactionKindCredit, "seed", 0)
		require.NoError(t, err)
		assert.True(t, ok)

		w, err := repo.GetWalletByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, winner.ID, w.ID)
		assert.True(t, w.Balance.Equal(decimal.NewFromInt(5)))
	})

	t.Run("invalidates the cached wallet after a successful write", func(t *testing.T) {
		repo := newFakeWalletRepo()
		cache := &recordingCache{}
		svc := NewService(repo, cache)

		_, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(5), models.TransactionKindCredit, "seed", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"user-1"}, cache.invalidated)
	})
}

// The balance must always equal the sum of completed transaction amounts.
func TestBalanceMatchesLedger(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWalletRepo()
	svc := NewService(repo, nil)

	ops := []struct {
		amount int64
		kind   string
	}{
		{100, models.TransactionKindCredit},
		{-40, models.TransactionKindDebit},
		{25, models.TransactionKindLiveTip},
		{-90, models.TransactionKindDebit}, // refused, balance is 85
		{-85, models.TransactionKindMusicRequest},
		{10, models.TransactionKindCredit},
	}
	for _, op := range ops {
		_, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(op.amount), op.kind, "", 0)
		require.NoError(t, err)
	}

	w, err := repo.GetWalletByUserID(ctx, "user-1")
	require.NoError(t, err)

	sum := decimal.Zero
	for _, tx := range repo.transactions {
		if tx.Status == models.TransactionStatusCompleted {
			sum = sum.Add(tx.Amount)
		}
	}
	assert.True(t, w.Balance.Equal(sum), "balance %s != ledger sum %s", w.Balance, sum)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(10)))
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeWalletRepo()
	svc := NewService(repo, nil)

	_, err := svc.ApplyTransaction(ctx, "user-1", decimal.NewFromInt(1), models.TransactionKindCredit, "", 0)
	require.NoError(t, err)
	w, err := repo.GetWalletByUserID(ctx, "user-1")
	require.NoError(t, err)

	t.Run("clamps out-of-range paging", func(t *testing.T) {
		txs, err := svc.ListTransactions(ctx, w.ID, -5, -3)
		require.NoError(t, err)
		assert.Len(t, txs, 1)

		txs, err = svc.ListTransactions(ctx, w.ID, MaxPageSize+1, 0)
		require.NoError(t, err)
		assert.Len(t, txs, 1)
	})
}
