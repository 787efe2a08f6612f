package voting

const (
	EventTypeProposalCreated = "proposal_created"
	EventTypeVoteCast        = "vote_cast"
	EventTypeExecuted        = "proposal_executed"
	EventTypeQuorumChanged   = "quorum_changed"
	EventTypeSupportChanged  = "support_changed"

	AttributeKeyProposalID    = "proposal_id"
	AttributeKeyCreator       = "creator"
	AttributeKeySnapshotPoint = "snapshot_point"
	AttributeKeyMetadata      = "metadata"
	AttributeKeyVoter         = "voter"
	AttributeKeySupports      = "supports"
	AttributeKeyWeight        = "weight"
	AttributeKeyPct           = "pct"
)
