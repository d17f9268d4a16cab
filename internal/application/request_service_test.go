package application

import (
	"context"
	"testing"
	"time"

	"github.com/shareit-hub/service-shareit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestService(t *testing.T) {
	f := newItemFixture(t)
	ctx := context.Background()
	svc := NewRequestService(f.requests, f.users, f.items, zap.NewNop())

	clock := f.now
	svc.clock = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first, err := svc.CreateRequest(ctx, f.booker.ID(), CreateItemRequestRequest{Description: "Need a ladder"})
	require.NoError(t, err)
	second, err := svc.CreateRequest(ctx, f.booker.ID(), CreateItemRequestRequest{Description: "Need a tent"})
	require.NoError(t, err)
	assert.Empty(t, first.Items)

	offered, err := f.itemSvc.CreateItem(ctx, f.owner.ID(), CreateItemRequest{
		Name: "Ladder", Description: "Tall", Available: ptr(true), RequestID: &first.ID,
	})
	require.NoError(t, err)

	own, err := svc.ListOwnRequests(ctx, f.booker.ID())
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID, "newest first")
	assert.Equal(t, first.ID, own[1].ID)
	require.Len(t, own[1].Items, 1)
	assert.Equal(t, offered.ID, own[1].Items[0].ID)
	assert.Empty(t, own[0].Items)

	others, err := svc.ListOtherRequests(ctx, f.owner.ID())
	require.NoError(t, err)
	assert.Len(t, others, 2)

	mine, err := svc.ListOtherRequests(ctx, f.booker.ID())
	require.NoError(t, err)
	assert.Empty(t, mine)

	got, err := svc.GetRequest(ctx, f.stranger.ID(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Need a ladder", got.Description)
	assert.Len(t, got.Items, 1)

	_, err = svc.GetRequest(ctx, f.stranger.ID(), 999)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.CreateRequest(ctx, 999, CreateItemRequestRequest{Description: "x"})
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.CreateRequest(ctx, f.booker.ID(), CreateItemRequestRequest{Description: " "})
	assert.True(t, domain.IsValidation(err))
}
