package commands_test

import (
	"errors"
	"testing"

	"vendorbot/internal/core/application/usecases/commands"
	"vendorbot/internal/core/domain/model/menu"
	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateMenuItemCommandHandler_Handle_CreatesItem(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewUpdateMenuItemCommand("Surmai", decimal.NewFromInt(850), "", "available")

	repo := new(MockMenuRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MenuRepository").Return(repo).Once(),
		repo.On("Get", ctx, "surmai").Return(nil, errs.NewObjectNotFoundError("menu item", "surmai")).Once(),
		repo.On("Save", ctx, mock.AnythingOfType("*menu.Item")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMenuUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateMenuItemCommandHandler(factory)
	item, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Surmai", item.Name())
	assert.Equal(t, menu.DefaultUnit, item.Unit())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateMenuItemCommandHandler_Handle_UpdatesExistingItem(t *testing.T) {
	ctx := t.Context()
	existing, _ := menu.NewItem("Seer Fish (Surmai)", decimal.NewFromInt(800), "piece", menu.Available)
	cmd, _ := commands.NewUpdateMenuItemCommand("seer fish (SURMAI)", decimal.NewFromInt(850), "", "unavailable")

	repo := new(MockMenuRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("MenuRepository").Return(repo)
	repo.On("Get", ctx, "seer fish (surmai)").Return(existing, nil)
	repo.On("Save", ctx, existing).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockMenuUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewUpdateMenuItemCommandHandler(factory)
	item, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Seer Fish (Surmai)", item.Name(), "display name keeps first casing")
	assert.Equal(t, "piece", item.Unit(), "blank unit keeps stored unit")
	assert.True(t, item.Price().Equal(decimal.NewFromInt(850)))
	assert.False(t, item.IsAvailable())
	repo.AssertExpectations(t)
}

func TestUpdateMenuItemCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewUpdateMenuItemCommand("Surmai", decimal.NewFromInt(850), "", "available")

	repo := new(MockMenuRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("MenuRepository").Return(repo)
	repo.On("Get", ctx, "surmai").Return(nil, errors.New("connection reset"))
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockMenuUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewUpdateMenuItemCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "connection reset")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateMenuItemCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockMenuUoWFactory)
	h := commands.NewUpdateMenuItemCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.UpdateMenuItemCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateMenuItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
