package token

const (
	EventTypeMint     = "mint"
	EventTypeBurn     = "burn"
	EventTypeTransfer = "transfer"

	AttributeKeySender    = "sender"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
)
