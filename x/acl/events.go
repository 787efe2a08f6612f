package acl

const (
	EventTypeGrant  = "grant"
	EventTypeRevoke = "revoke"

	AttributeKeyGrantee    = "grantee"
	AttributeKeyCapability = "capability"
)
