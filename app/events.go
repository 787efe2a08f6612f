package app

import (
	"strconv"

	"github.com/bnb-chain/tokenvote/pubsub"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/voting"
)

// toPubsubEvents translates committed voting events into bus events. Events
// of other modules are not published.
func toPubsubEvents(height int64, events sdk.Events) []pubsub.Event {
	out := make([]pubsub.Event, 0, len(events))
	for _, e := range events {
		switch e.Type {
		case voting.EventTypeProposalCreated:
			out = append(out, pubsub.ProposalCreatedEvent{
				Height:        height,
				ProposalID:    intAttr(e, voting.AttributeKeyProposalID),
				Creator:       strAttr(e, voting.AttributeKeyCreator),
				SnapshotPoint: intAttr(e, voting.AttributeKeySnapshotPoint),
				Metadata:      strAttr(e, voting.AttributeKeyMetadata),
			})
		case voting.EventTypeVoteCast:
			supports, _ := strconv.ParseBool(strAttr(e, voting.AttributeKeySupports))
			out = append(out, pubsub.VoteCastEvent{
				Height:     height,
				ProposalID: intAttr(e, voting.AttributeKeyProposalID),
				Voter:      strAttr(e, voting.AttributeKeyVoter),
				Supports:   supports,
				Weight:     intAttr(e, voting.AttributeKeyWeight),
			})
		case voting.EventTypeExecuted:
			out = append(out, pubsub.ProposalExecutedEvent{
				Height:     height,
				ProposalID: intAttr(e, voting.AttributeKeyProposalID),
			})
		case voting.EventTypeQuorumChanged:
			out = append(out, pubsub.ThresholdChangedEvent{
				Height: height,
				Topic:  pubsub.QuorumChangedTopic,
				Pct:    intAttr(e, voting.AttributeKeyPct),
			})
		case voting.EventTypeSupportChanged:
			out = append(out, pubsub.ThresholdChangedEvent{
				Height: height,
				Topic:  pubsub.SupportChangedTopic,
				Pct:    intAttr(e, voting.AttributeKeyPct),
			})
		}
	}
	return out
}

func strAttr(e sdk.Event, key string) string {
	v, _ := e.GetAttribute(key)
	return v
}

func intAttr(e sdk.Event, key string) int64 {
	v, _ := strconv.ParseInt(strAttr(e, key), 10, 64)
	return v
}
