package voting

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	// ModuleName is the name of the module
	ModuleName = "voting"

	// StoreKey is the store key string for voting
	StoreKey = ModuleName

	// RouterKey is the message route for voting
	RouterKey = ModuleName

	// QuerierRoute is the querier route for voting
	QuerierRoute = ModuleName
)

var (
	ConfigKey         = []byte{0x00}
	NextProposalIDKey = []byte{0x01}

	ProposalKeyPrefix = []byte{0x10}
	VoterKeyPrefix    = []byte{0x11}

	SnapshotWeightKeyPrefix = []byte{0x12}
)

// GetProposalKey returns the key of a proposal: prefix | id
func GetProposalKey(id int64) []byte {
	return append(ProposalKeyPrefix, sdk.Int64ToBigEndian(id)...)
}

// GetVotersPrefix returns the prefix of every ballot of a proposal: prefix | id
func GetVotersPrefix(id int64) []byte {
	return append(VoterKeyPrefix, sdk.Int64ToBigEndian(id)...)
}

// GetVoterKey returns the key of one ballot: prefix | id | voter
func GetVoterKey(id int64, voter sdk.AccAddress) []byte {
	return append(GetVotersPrefix(id), voter.Bytes()...)
}

func voterFromKey(key []byte) sdk.AccAddress {
	return sdk.AccAddress(key[len(VoterKeyPrefix)+8:])
}

// GetSnapshotWeightsPrefix returns the prefix of the imported weight table of
// a proposal: prefix | id
func GetSnapshotWeightsPrefix(id int64) []byte {
	return append(SnapshotWeightKeyPrefix, sdk.Int64ToBigEndian(id)...)
}

// GetSnapshotWeightKey returns the key of one imported weight: prefix | id | holder
func GetSnapshotWeightKey(id int64, holder sdk.AccAddress) []byte {
	return append(GetSnapshotWeightsPrefix(id), holder.Bytes()...)
}

func holderFromSnapshotWeightKey(key []byte) sdk.AccAddress {
	return sdk.AccAddress(key[len(SnapshotWeightKeyPrefix)+8:])
}
