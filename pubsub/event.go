package pubsub

type Topic string

const (
	ProposalCreatedTopic  = Topic("proposal-created")
	VoteCastTopic         = Topic("vote-cast")
	ProposalExecutedTopic = Topic("proposal-executed")
	QuorumChangedTopic    = Topic("quorum-changed")
	SupportChangedTopic   = Topic("support-changed")
)

type Event interface {
	GetTopic() Topic
}

type Handler func(Event)

type ProposalCreatedEvent struct {
	Height        int64
	ProposalID    int64
	Creator       string
	SnapshotPoint int64
	Metadata      string
}

func (event ProposalCreatedEvent) GetTopic() Topic {
	return ProposalCreatedTopic
}

type VoteCastEvent struct {
	Height     int64
	ProposalID int64
	Voter      string
	Supports   bool
	Weight     int64
}

func (event VoteCastEvent) GetTopic() Topic {
	return VoteCastTopic
}

type ProposalExecutedEvent struct {
	Height     int64
	ProposalID int64
}

func (event ProposalExecutedEvent) GetTopic() Topic {
	return ProposalExecutedTopic
}

// ThresholdChangedEvent reports a new quorum or support percentage, scaled by 10^18.
type ThresholdChangedEvent struct {
	Height int64
	Topic  Topic
	Pct    int64
}

func (event ThresholdChangedEvent) GetTopic() Topic {
	return event.Topic
}
