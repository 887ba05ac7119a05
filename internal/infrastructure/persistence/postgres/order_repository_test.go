package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/persistence/postgres"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	repo   *postgres.OrderRepository
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

// SetupSuite runs once before all tests
func (suite *OrderRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewOrderRepository(suite.testDB.DB.Pool)
}

// TearDownSuite runs once after all tests
func (suite *OrderRepositoryTestSuite) TearDownSuite() {
	if suite.testDB != nil {
		suite.testDB.Cleanup(suite.T())
	}
}

// SetupTest runs before each test
func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *OrderRepositoryTestSuite) Test_Save_InsertAssignsID() {
	t := suite.T()
	ctx := context.Background()
	order := testhelpers.NewCompletedOrder(t, "gw_auth_abc")

	saved, err := suite.repo.Save(ctx, order)

	require.NoError(t, err)
	assert.Same(t, order, saved)
	assert.Equal(t, int64(1), order.ID())

	found, err := suite.repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, found.Status())
	assert.True(t, found.Amount().Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "USD", found.Currency())
	assert.Equal(t, "gw_auth_abc", found.GatewayTransactionID())
	assert.WithinDuration(t, order.CreatedAt(), found.CreatedAt(), time.Millisecond)
}

func (suite *OrderRepositoryTestSuite) Test_Save_StoresOnlyLastFourDigits() {
	t := suite.T()
	ctx := context.Background()
	order := testhelpers.NewCompletedOrder(t, "gw_auth_abc")

	_, err := suite.repo.Save(ctx, order)
	require.NoError(t, err)

	var stored string
	err = suite.testDB.DB.Pool.QueryRow(ctx, "SELECT card_number_last4 FROM orders WHERE id = $1", order.ID()).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, "1111", stored)
}

func (suite *OrderRepositoryTestSuite) Test_Save_UpdatesExistingOrder() {
	t := suite.T()
	ctx := context.Background()
	order := testhelpers.NewPendingOrder(t)

	_, err := suite.repo.Save(ctx, order)
	require.NoError(t, err)
	id := order.ID()

	require.NoError(t, order.MarkGatewayFailed())
	_, err = suite.repo.Save(ctx, order)
	require.NoError(t, err)

	assert.Equal(t, id, order.ID())
	found, err := suite.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailedGateway, found.Status())
	assert.Empty(t, found.GatewayTransactionID())
}

func (suite *OrderRepositoryTestSuite) Test_Save_ConcurrentInsertsGetDistinctIDs() {
	t := suite.T()
	ctx := context.Background()

	const n = 20
	orders := make([]*domain.Order, n)
	for i := range orders {
		orders[i] = testhelpers.NewCompletedOrder(t, "gw_auth_abc")
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, order := range orders {
		wg.Add(1)
		go func(o *domain.Order) {
			defer wg.Done()
			_, err := suite.repo.Save(ctx, o)
			errs <- err
		}(order)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := make(map[int64]bool)
	for _, o := range orders {
		assert.False(t, seen[o.ID()], "duplicate id %d", o.ID())
		seen[o.ID()] = true
	}
}

func (suite *OrderRepositoryTestSuite) Test_Save_UpdateMissingRowIsStorageError() {
	t := suite.T()
	order := domain.Reconstitute(999, decimal.NewFromInt(5), "USD", "1111",
		domain.StatusAuthorized, "gw_auth_x", time.Now(), time.Now())

	_, err := suite.repo.Save(context.Background(), order)

	storageErr, ok := application.IsStorageError(err)
	require.True(t, ok)
	assert.ErrorIs(t, storageErr, postgres.ErrOrderNotFound)
}

func (suite *OrderRepositoryTestSuite) Test_FindByID_NotFound() {
	_, err := suite.repo.FindByID(context.Background(), 42)

	assert.ErrorIs(suite.T(), err, postgres.ErrOrderNotFound)
}

func (suite *OrderRepositoryTestSuite) Test_FindStale() {
	t := suite.T()
	ctx := context.Background()
	old := time.Now().Add(-2 * time.Hour)

	pending := domain.Reconstitute(0, decimal.NewFromInt(10), "USD", "4242",
		domain.StatusPendingAuthorization, "", old, old)
	authorized := domain.Reconstitute(0, decimal.NewFromInt(10), "USD", "4242",
		domain.StatusAuthorized, "gw_auth_1", old, old.Add(time.Minute))
	done := domain.Reconstitute(0, decimal.NewFromInt(10), "USD", "4242",
		domain.StatusCompleted, "gw_auth_2", old, old)
	fresh := testhelpers.NewPendingOrder(t)

	for _, o := range []*domain.Order{pending, authorized, done, fresh} {
		_, err := suite.repo.Save(ctx, o)
		require.NoError(t, err)
	}

	stale, err := suite.repo.FindStale(ctx,
		[]domain.OrderStatus{domain.StatusPendingAuthorization, domain.StatusAuthorized},
		time.Now().Add(-time.Hour), 10)

	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, pending.ID(), stale[0].ID())
	assert.Equal(t, authorized.ID(), stale[1].ID())
}

func (suite *OrderRepositoryTestSuite) Test_UpdateLocked() {
	t := suite.T()
	ctx := context.Background()
	order := testhelpers.NewAuthorizedOrder(t, "gw_auth_1")
	_, err := suite.repo.Save(ctx, order)
	require.NoError(t, err)

	updated, err := suite.repo.UpdateLocked(ctx, order.ID(), func(o *domain.Order) error {
		return o.MarkUnexpectedFailure()
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailedUnexpected, updated.Status())
	found, err := suite.repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailedUnexpected, found.Status())
}

func (suite *OrderRepositoryTestSuite) Test_UpdateLocked_CallbackErrorRollsBack() {
	t := suite.T()
	ctx := context.Background()
	order := testhelpers.NewAuthorizedOrder(t, "gw_auth_1")
	_, err := suite.repo.Save(ctx, order)
	require.NoError(t, err)
	skip := errors.New("skip")

	_, err = suite.repo.UpdateLocked(ctx, order.ID(), func(o *domain.Order) error {
		_ = o.MarkUnexpectedFailure()
		return skip
	})

	assert.ErrorIs(t, err, skip)
	found, err := suite.repo.FindByID(ctx, order.ID())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorized, found.Status())
}
