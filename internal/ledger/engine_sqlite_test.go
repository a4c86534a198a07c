package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/ruralpay/expense-tracker/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_BalanceScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := NewEngine(db)
	ctx := context.Background()

	userID := testutil.CreateUser(t, db, "somchai")
	wallet := testutil.CreateAccount(t, db, userID, "Wallet", 100000)
	savings := testutil.CreateAccount(t, db, userID, "Savings", 50000)
	food := testutil.CategoryID(t, db, "Food")

	_, err := engine.RecordExpense(ctx, userID, EntryRequest{
		AccountID:  wallet,
		CategoryID: food,
		Amount:     decimal.RequireFromString("150.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(84950), testutil.Balance(t, db, wallet))
	assert.Equal(t, 1, testutil.CountTransactions(t, db, "Expense"))

	before := testutil.Balance(t, db, wallet) + testutil.Balance(t, db, savings)

	txn, err := engine.RecordTransfer(ctx, userID, TransferRequest{
		AccountID:   wallet,
		ToAccountID: savings,
		Amount:      decimal.RequireFromString("200.00"),
	})
	require.NoError(t, err)
	assert.NotZero(t, txn.TransactionID)

	assert.Equal(t, int64(64950), testutil.Balance(t, db, wallet))
	assert.Equal(t, int64(70000), testutil.Balance(t, db, savings))
	assert.Equal(t, before, testutil.Balance(t, db, wallet)+testutil.Balance(t, db, savings))
	assert.Equal(t, 1, testutil.CountTransactions(t, db, "Transfer_Out"))

	var toAccount int64
	var category any
	require.NoError(t, db.QueryRow(
		`SELECT to_account_id, category_id FROM transactions WHERE transaction_id = $1`, txn.TransactionID,
	).Scan(&toAccount, &category))
	assert.Equal(t, savings, toAccount)
	assert.Nil(t, category)
}

func TestEngine_IncomeIncrementsBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := NewEngine(db)

	userID := testutil.CreateUser(t, db, "malee")
	account := testutil.CreateAccount(t, db, userID, "Bank", 1000)

	_, err := engine.RecordIncome(context.Background(), userID, EntryRequest{
		AccountID:  account,
		CategoryID: testutil.CategoryID(t, db, "Salary"),
		Amount:     decimal.RequireFromString("0.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1099), testutil.Balance(t, db, account))
}

func TestEngine_FailedTransferLeavesNoTrace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := NewEngine(db)

	owner := testutil.CreateUser(t, db, "owner")
	stranger := testutil.CreateUser(t, db, "stranger")
	source := testutil.CreateAccount(t, db, owner, "Wallet", 10000)
	foreign := testutil.CreateAccount(t, db, stranger, "Theirs", 10000)

	_, err := engine.RecordTransfer(context.Background(), owner, TransferRequest{
		AccountID:   source,
		ToAccountID: foreign,
		Amount:      decimal.NewFromInt(50),
	})

	var rerr *ReferentialError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, foreign, rerr.ID)
	assert.Equal(t, int64(10000), testutil.Balance(t, db, source))
	assert.Equal(t, int64(10000), testutil.Balance(t, db, foreign))
	assert.Equal(t, 0, testutil.CountTransactions(t, db, "Transfer_Out"))
}

func TestEngine_CancelledContextPersistsNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := NewEngine(db)

	userID := testutil.CreateUser(t, db, "late")
	account := testutil.CreateAccount(t, db, userID, "Wallet", 10000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.RecordExpense(ctx, userID, EntryRequest{
		AccountID:  account,
		CategoryID: testutil.CategoryID(t, db, "Food"),
		Amount:     decimal.NewFromInt(10),
	})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, int64(10000), testutil.Balance(t, db, account))
	assert.Equal(t, 0, testutil.CountTransactions(t, db, "Expense"))
}

func TestEngine_BalanceStaysWithinStorableRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := NewEngine(db)
	ctx := context.Background()

	userID := testutil.CreateUser(t, db, "whale")
	account := testutil.CreateAccount(t, db, userID, "Vault", 100)
	salary := testutil.CategoryID(t, db, "Salary")
	food := testutil.CategoryID(t, db, "Food")

	t.Run("amount beyond the money range", func(t *testing.T) {
		_, err := engine.RecordIncome(ctx, userID, EntryRequest{
			AccountID:  account,
			CategoryID: salary,
			Amount:     decimal.RequireFromString("92233720368547758.07"),
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Violations, "amount")
	})

	t.Run("income that would push the balance past the maximum", func(t *testing.T) {
		_, err := engine.RecordIncome(ctx, userID, EntryRequest{
			AccountID:  account,
			CategoryID: salary,
			Amount:     decimal.RequireFromString("9999999999999.99"),
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Violations, "amount")
	})

	t.Run("expense down to the minimum and one cent past it", func(t *testing.T) {
		_, err := engine.RecordExpense(ctx, userID, EntryRequest{
			AccountID:  account,
			CategoryID: food,
			Amount:     decimal.RequireFromString("9999999999999.99"),
		})
		require.NoError(t, err)

		_, err = engine.RecordExpense(ctx, userID, EntryRequest{
			AccountID:  account,
			CategoryID: food,
			Amount:     decimal.RequireFromString("1.01"),
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	var storage string
	require.NoError(t, db.QueryRow(`SELECT typeof(current_balance) FROM accounts WHERE account_id = $1`, account).Scan(&storage))
	assert.Equal(t, "integer", storage)
	assert.Equal(t, int64(100)-999_999_999_999_999, testutil.Balance(t, db, account))
	assert.Equal(t, 0, testutil.CountTransactions(t, db, "Income"))
	assert.Equal(t, 1, testutil.CountTransactions(t, db, "Expense"))
}

// With a single sqlite connection these goroutines are serialized by the pool, so this only
// checks that interleaved deltas net out. The relative UPDATE itself is pinned by the
// balanceUpdate expectation in engine_test.go.
func TestEngine_ConcurrentDeltasDoNotLoseUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	engine := NewEngine(db)
	ctx := context.Background()

	userID := testutil.CreateUser(t, db, "busy")
	account := testutil.CreateAccount(t, db, userID, "Shared", 100000)
	food := testutil.CategoryID(t, db, "Food")
	salary := testutil.CategoryID(t, db, "Salary")
	amount := decimal.RequireFromString("25.00")

	const pairs = 20
	var wg sync.WaitGroup
	errs := make(chan error, pairs*2)

	for i := 0; i < pairs; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := engine.RecordExpense(ctx, userID, EntryRequest{AccountID: account, CategoryID: food, Amount: amount})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := engine.RecordIncome(ctx, userID, EntryRequest{AccountID: account, CategoryID: salary, Amount: amount})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(100000), testutil.Balance(t, db, account))
	assert.Equal(t, pairs, testutil.CountTransactions(t, db, "Expense"))
	assert.Equal(t, pairs, testutil.CountTransactions(t, db, "Income"))
}
