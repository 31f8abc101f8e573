package memory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vendorbot/internal/adapters/out/memory"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/core/ports"
	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	factory *memory.UnitOfWorkFactory
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	s.factory = memory.NewUnitOfWorkFactory(memory.NewStore())
}

func (s *UnitOfWorkTestSuite) newOrder(ctx context.Context, repo ports.OrderRepository) *order.Order {
	id, err := repo.NextID(ctx)
	s.Require().NoError(err)
	line, err := order.NewLine("Surmai", decimal.NewFromInt(1), decimal.NewFromInt(850), "kg")
	s.Require().NoError(err)
	o, err := order.NewOrder(id, []order.Line{line}, "John", kernel.MustContact("+919876543210"), "", time.Now())
	s.Require().NoError(err)
	return o
}

func (s *UnitOfWorkTestSuite) saveItem(ctx context.Context, repo ports.MenuRepository, name string, price int64) {
	item, err := menu.NewItem(name, decimal.NewFromInt(price), "kg", menu.Available)
	s.Require().NoError(err)
	s.Require().NoError(repo.Save(ctx, item))
}

func (s *UnitOfWorkTestSuite) TestTransactionErrors() {
	ctx := s.T().Context()
	uow := s.factory.Create()

	s.Require().ErrorIs(uow.Commit(ctx), memory.ErrNoTransaction)
	s.Require().ErrorIs(uow.Rollback(ctx), memory.ErrNoTransaction)

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Commit(ctx))
	s.Require().ErrorIs(uow.Rollback(ctx), memory.ErrNoTransaction)
}

func (s *UnitOfWorkTestSuite) TestWritesBecomeVisibleOnCommit() {
	ctx := s.T().Context()

	// Given
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	o := s.newOrder(ctx, uow.OrderRepository())
	n, err := notification.NewNotification(o.ID(), notification.OrderPlaced, kernel.MustContact("+919999999999"), "New order", time.Now())
	s.Require().NoError(err)

	// When
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.OutboxRepository().Add(ctx, n))

	// Then
	inTx, err := uow.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(o.ID(), inTx.ID())

	_, err = s.factory.Create().OrderRepository().Get(ctx, o.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	s.Require().NoError(uow.Commit(ctx))

	reader := s.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	s.Require().NoError(err)
	notes, err := reader.OutboxRepository().ListByOrder(ctx, o.ID())
	s.Require().NoError(err)
	s.Len(notes, 1)
}

func (s *UnitOfWorkTestSuite) TestRollbackDiscardsWrites() {
	ctx := s.T().Context()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	o := s.newOrder(ctx, uow.OrderRepository())
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.saveItem(ctx, uow.MenuRepository(), "Squid", 500)
	s.Require().NoError(uow.Rollback(ctx))

	reader := s.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.MenuRepository().Get(ctx, "squid")
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	next, err := reader.OrderRepository().NextID(ctx)
	s.Require().NoError(err)
	s.Greater(next, o.ID())
}

func (s *UnitOfWorkTestSuite) TestReturnedAggregatesAreCopies() {
	ctx := s.T().Context()
	repo := s.factory.Create().OrderRepository()
	o := s.newOrder(ctx, repo)
	s.Require().NoError(repo.Add(ctx, o))

	s.Require().NoError(o.Accept(time.Now()))

	stored, err := repo.Get(ctx, o.ID())
	s.Require().NoError(err)
	s.Equal(order.Pending, stored.Status())
}

func (s *UnitOfWorkTestSuite) TestOrderAddAndUpdateChecks() {
	ctx := s.T().Context()
	repo := s.factory.Create().OrderRepository()
	o := s.newOrder(ctx, repo)

	s.Require().ErrorIs(repo.Update(ctx, o), errs.ErrObjectNotFound)
	s.Require().NoError(repo.Add(ctx, o))
	s.Require().ErrorIs(repo.Add(ctx, o), errs.ErrValueIsInvalid)
}

func (s *UnitOfWorkTestSuite) TestMenuKeepsInsertionOrderAndFirstName() {
	ctx := s.T().Context()
	repo := s.factory.Create().MenuRepository()
	s.saveItem(ctx, repo, "Pomfret (White)", 650)
	s.saveItem(ctx, repo, "Tiger Prawns", 1200)
	s.saveItem(ctx, repo, "POMFRET (WHITE)", 700)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.saveItem(ctx, uow.MenuRepository(), "Pomfret (Black)", 550)

	items, err := uow.MenuRepository().List(ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal("Pomfret (White)", items[0].Name())
	s.True(items[0].Price().Equal(decimal.NewFromInt(700)))
	s.Equal("Tiger Prawns", items[1].Name())
	s.Equal("Pomfret (Black)", items[2].Name())

	found, err := uow.MenuRepository().Search(ctx, "pomfret")
	s.Require().NoError(err)
	s.Len(found, 2)

	committed, err := s.factory.Create().MenuRepository().List(ctx)
	s.Require().NoError(err)
	s.Len(committed, 2)
}

func (s *UnitOfWorkTestSuite) TestListOrdersFiltersAndSorts() {
	ctx := s.T().Context()
	repo := s.factory.Create().OrderRepository()
	var ids []int64
	for range 3 {
		o := s.newOrder(ctx, repo)
		s.Require().NoError(repo.Add(ctx, o))
		ids = append(ids, o.ID())
	}
	second, err := repo.Get(ctx, ids[1])
	s.Require().NoError(err)
	s.Require().NoError(second.Reject(time.Now()))
	s.Require().NoError(repo.Update(ctx, second))

	all, err := repo.List(ctx, ports.OrderFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(ids[0], all[0].ID())
	s.Equal(ids[2], all[2].ID())

	rejected, err := repo.List(ctx, ports.OrderFilter{Status: order.Rejected})
	s.Require().NoError(err)
	s.Require().Len(rejected, 1)
	s.Equal(ids[1], rejected[0].ID())
}

func (s *UnitOfWorkTestSuite) TestOutboxListDue() {
	ctx := s.T().Context()
	repo := s.factory.Create().OutboxRepository()
	now := time.Now()
	newNote := func(at time.Time) *notification.Notification {
		n, err := notification.NewNotification(1, notification.OrderAccepted, kernel.MustContact("+919876543210"), "ok", at)
		s.Require().NoError(err)
		return n
	}

	stale := newNote(now.Add(-time.Hour))
	fresh := newNote(now)
	done := newNote(now.Add(-time.Hour))
	done.MarkDelivered(now.Add(-time.Hour))
	s.Require().NoError(repo.Add(ctx, stale, fresh, done))

	due, err := repo.ListDue(ctx, now.Add(-time.Minute), 5, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 1)
	s.True(stale.ID().IsEqual(due[0].ID()))

	stale.RecordFailure(errors.New("down"), 5, now.Add(-time.Hour))
	s.Require().NoError(repo.Update(ctx, stale))
	due, err = repo.ListDue(ctx, now.Add(-time.Minute), 1, 10)
	s.Require().NoError(err)
	s.Empty(due)

	_, err = repo.Get(ctx, kernel.NewUUID())
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepository_NextID_ConcurrentIDsAreUniqueAndGapless(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	const workers = 50

	var (
		mu  sync.Mutex
		ids []int64
	)
	g, ctx := errgroup.WithContext(t.Context())
	for range workers {
		g.Go(func() error {
			id, err := factory.Create().OrderRepository().NextID(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			ids = append(ids, id)
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		assert.Equal(t, int64(i+1), id)
	}
}

func TestOrderRepository_GetForUpdate_SerializesAccepts(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	ctx := t.Context()

	repo := factory.Create().OrderRepository()
	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	line, err := order.NewLine("Surmai", decimal.NewFromInt(1), decimal.NewFromInt(850), "kg")
	require.NoError(t, err)
	o, err := order.NewOrder(id, []order.Line{line}, "John", kernel.MustContact("+919876543210"), "", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, o))

	const workers = 20
	var succeeded, rejected atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			uow := factory.Create()
			if err := uow.Begin(gctx); err != nil {
				return err
			}
			defer func() { _ = uow.Rollback(gctx) }()

			locked, err := uow.OrderRepository().GetForUpdate(gctx, id)
			if err != nil {
				return err
			}
			if err = locked.Accept(time.Now()); err != nil {
				if errors.Is(err, errs.ErrInvalidTransition) {
					rejected.Add(1)
					return nil
				}
				return err
			}
			if err = uow.OrderRepository().Update(gctx, locked); err != nil {
				return err
			}
			succeeded.Add(1)
			return uow.Commit(gctx)
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(workers-1), rejected.Load())
}
