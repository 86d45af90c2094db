package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
	"github.com/andrescamacho/hideout-go/internal/domain/progress"
	"github.com/andrescamacho/hideout-go/internal/domain/shared"
)

// AdjustItemCountsCommand adds deltas to the owned counts of one item.
// Results are clamped to zero.
type AdjustItemCountsCommand struct {
	ProfileRef   string `validate:"required"`
	ItemID       string `validate:"required"`
	DeltaHave    int
	DeltaHaveFir int
}

// SetItemCountsCommand overwrites the owned counts of one item
type SetItemCountsCommand struct {
	ProfileRef string `validate:"required"`
	ItemID     string `validate:"required"`
	Have       int    `validate:"min=0"`
	HaveFir    int    `validate:"min=0"`
}

// ItemCountsResponse reports the counts stored for an item
type ItemCountsResponse struct {
	ItemID string
	Counts hideout.ItemCount
}

// AdjustItemCountsHandler handles the AdjustItemCounts command
type AdjustItemCountsHandler struct {
	mutator profileMutator
}

// NewAdjustItemCountsHandler creates a new AdjustItemCountsHandler
func NewAdjustItemCountsHandler(profileRepo progress.ProfileRepository, clock shared.Clock) *AdjustItemCountsHandler {
	return &AdjustItemCountsHandler{mutator: newProfileMutator(profileRepo, clock)}
}

// Handle executes the AdjustItemCounts command
func (h *AdjustItemCountsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdjustItemCountsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdjustItemCountsCommand")
	}

	var counts hideout.ItemCount
	_, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		var err error
		counts, err = p.AdjustItemCounts(cmd.ItemID, cmd.DeltaHave, cmd.DeltaHaveFir)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ItemCountsResponse{ItemID: cmd.ItemID, Counts: counts}, nil
}

// SetItemCountsHandler handles the SetItemCounts command
type SetItemCountsHandler struct {
	mutator profileMutator
}

// NewSetItemCountsHandler creates a new SetItemCountsHandler
func NewSetItemCountsHandler(profileRepo progress.ProfileRepository, clock shared.Clock) *SetItemCountsHandler {
	return &SetItemCountsHandler{mutator: newProfileMutator(profileRepo, clock)}
}

// Handle executes the SetItemCounts command
func (h *SetItemCountsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SetItemCountsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SetItemCountsCommand")
	}

	var counts hideout.ItemCount
	_, err := h.mutator.mutate(ctx, cmd.ProfileRef, func(p *progress.Profile) error {
		var err error
		counts, err = p.SetItemCounts(cmd.ItemID, cmd.Have, cmd.HaveFir)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &ItemCountsResponse{ItemID: cmd.ItemID, Counts: counts}, nil
}
