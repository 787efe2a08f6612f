package voting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

// Keeper is the voting engine. Proposals move from open to decided to
// executed, or close without being decided.
type Keeper struct {
	storeKey  sdk.StoreKey
	cdc       *codec.Codec
	oracle    WeightOracle
	gate      CapabilityGate
	executor  Executor
	metrics   *Metrics
	codespace sdk.CodespaceType
}

func NewKeeper(cdc *codec.Codec, key sdk.StoreKey, oracle WeightOracle, gate CapabilityGate,
	router *Router, metrics *Metrics, codespace sdk.CodespaceType) Keeper {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return Keeper{
		storeKey:  key,
		cdc:       cdc,
		oracle:    oracle,
		gate:      gate,
		executor:  NewExecutor(router),
		metrics:   metrics,
		codespace: codespace,
	}
}

func (k Keeper) Codespace() sdk.CodespaceType {
	return k.codespace
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+ModuleName)
}

// =====================================================
// Config

// GetConfig returns the live config and whether the engine is configured.
func (k Keeper) GetConfig(ctx sdk.Context) (GovernanceConfig, bool) {
	bz := ctx.KVStore(k.storeKey).Get(ConfigKey)
	if bz == nil {
		return GovernanceConfig{}, false
	}
	var config GovernanceConfig
	k.cdc.MustUnmarshalBinaryLengthPrefixed(bz, &config)
	return config, true
}

func (k Keeper) setConfig(ctx sdk.Context, config GovernanceConfig) {
	ctx.KVStore(k.storeKey).Set(ConfigKey, k.cdc.MustMarshalBinaryLengthPrefixed(config))
}

// Configure sets the engine config once. The caller must hold the Configure capability.
func (k Keeper) Configure(ctx sdk.Context, caller sdk.AccAddress, config GovernanceConfig) sdk.Error {
	if !k.gate.HasCapability(ctx, caller, acl.CapConfigure) {
		return acl.ErrMissingCapability(caller, acl.CapConfigure)
	}
	return k.configure(ctx, config)
}

func (k Keeper) configure(ctx sdk.Context, config GovernanceConfig) sdk.Error {
	if _, ok := k.GetConfig(ctx); ok {
		return ErrAlreadyConfigured(k.codespace)
	}
	if err := config.Validate(); err != nil {
		return err
	}
	k.setConfig(ctx, config)
	k.Logger(ctx).Info("voting configured",
		"support", FormatPct(config.SupportRequiredPct),
		"quorum", FormatPct(config.MinAcceptQuorumPct),
		"duration", config.VoteDuration)
	return nil
}

// ChangeMinAcceptQuorumPct changes the quorum of proposals created from now
// on. Existing proposals keep the quorum they were created with.
func (k Keeper) ChangeMinAcceptQuorumPct(ctx sdk.Context, caller sdk.AccAddress, pct int64) sdk.Error {
	if !k.gate.HasCapability(ctx, caller, acl.CapModifyQuorum) {
		return acl.ErrMissingCapability(caller, acl.CapModifyQuorum)
	}
	return k.changeMinAcceptQuorumPct(ctx, pct)
}

func (k Keeper) changeMinAcceptQuorumPct(ctx sdk.Context, pct int64) sdk.Error {
	config, ok := k.GetConfig(ctx)
	if !ok {
		return ErrNotConfigured(k.codespace)
	}
	if pct <= 0 {
		return ErrInvalidConfig(k.codespace, "min accept quorum must be positive")
	}
	if pct > config.SupportRequiredPct {
		return ErrInvalidConfig(k.codespace, "min accept quorum cannot exceed required support")
	}
	config.MinAcceptQuorumPct = pct
	k.setConfig(ctx, config)

	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeQuorumChanged,
		sdk.NewAttribute(AttributeKeyPct, strconv.FormatInt(pct, 10)),
	))
	return nil
}

// ChangeSupportRequiredPct changes the required support of proposals created
// from now on. Existing proposals keep the support they were created with.
func (k Keeper) ChangeSupportRequiredPct(ctx sdk.Context, caller sdk.AccAddress, pct int64) sdk.Error {
	if !k.gate.HasCapability(ctx, caller, acl.CapModifySupport) {
		return acl.ErrMissingCapability(caller, acl.CapModifySupport)
	}
	return k.changeSupportRequiredPct(ctx, pct)
}

func (k Keeper) changeSupportRequiredPct(ctx sdk.Context, pct int64) sdk.Error {
	config, ok := k.GetConfig(ctx)
	if !ok {
		return ErrNotConfigured(k.codespace)
	}
	if pct < config.MinAcceptQuorumPct {
		return ErrInvalidConfig(k.codespace, "required support cannot be below min accept quorum")
	}
	if pct > PctBase {
		return ErrInvalidConfig(k.codespace, "required support cannot exceed 100%")
	}
	config.SupportRequiredPct = pct
	k.setConfig(ctx, config)

	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeSupportChanged,
		sdk.NewAttribute(AttributeKeyPct, strconv.FormatInt(pct, 10)),
	))
	return nil
}

// =====================================================
// Proposals

// GetVote returns a proposal.
func (k Keeper) GetVote(ctx sdk.Context, id int64) (Proposal, sdk.Error) {
	proposal, ok := k.getProposal(ctx, id)
	if !ok {
		return Proposal{}, ErrNoSuchProposal(k.codespace, id)
	}
	return proposal, nil
}

// GetVoteMetadata returns the free form metadata of a proposal.
func (k Keeper) GetVoteMetadata(ctx sdk.Context, id int64) (string, sdk.Error) {
	proposal, err := k.GetVote(ctx, id)
	if err != nil {
		return "", err
	}
	return proposal.Metadata, nil
}

// GetBallot returns the ballot voter has on record.
func (k Keeper) GetBallot(ctx sdk.Context, id int64, voter sdk.AccAddress) (Ballot, bool) {
	bz := ctx.KVStore(k.storeKey).Get(GetVoterKey(id, voter))
	if bz == nil {
		return Ballot{}, false
	}
	return decodeBallot(id, voter, bz), true
}

// GetVoterState returns the ballot state voter has on record, Absent if none.
func (k Keeper) GetVoterState(ctx sdk.Context, id int64, voter sdk.AccAddress) VoterState {
	ballot, ok := k.GetBallot(ctx, id, voter)
	if !ok {
		return VoterStateAbsent
	}
	return ballot.State
}

// ballots are stored as state | big-endian weight
func (k Keeper) setBallot(ctx sdk.Context, ballot Ballot) {
	bz := append([]byte{byte(ballot.State)}, sdk.Int64ToBigEndian(ballot.Weight)...)
	ctx.KVStore(k.storeKey).Set(GetVoterKey(ballot.ProposalID, ballot.Voter), bz)
}

func decodeBallot(id int64, voter sdk.AccAddress, bz []byte) Ballot {
	if len(bz) != 9 {
		panic(fmt.Sprintf("corrupted ballot of %s on proposal %d", voter, id))
	}
	return Ballot{ProposalID: id, Voter: voter, State: VoterState(bz[0]), Weight: sdk.BigEndianToInt64(bz[1:])}
}

// IterateBallots calls fn for every ballot of a proposal, in voter order,
// until fn returns true.
func (k Keeper) IterateBallots(ctx sdk.Context, id int64, fn func(ballot Ballot) (stop bool)) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), GetVotersPrefix(id))
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		if fn(decodeBallot(id, voterFromKey(iterator.Key()), iterator.Value())) {
			break
		}
	}
}

// SnapshotWeightOf returns the weight holder has on the proposal. Proposals
// imported from an exported chain carry their own weight table, the others
// read the ledger at their snapshot point.
func (k Keeper) SnapshotWeightOf(ctx sdk.Context, proposal Proposal, holder sdk.AccAddress) int64 {
	if !proposal.SnapshotImported {
		return k.oracle.WeightOfAt(ctx, holder, proposal.SnapshotPoint)
	}
	bz := ctx.KVStore(k.storeKey).Get(GetSnapshotWeightKey(proposal.ID, holder))
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToInt64(bz)
}

// IterateSnapshotWeights calls fn for every holder with weight on the
// proposal, in address order, until fn returns true.
func (k Keeper) IterateSnapshotWeights(ctx sdk.Context, proposal Proposal, fn func(holder sdk.AccAddress, weight int64) (stop bool)) {
	if !proposal.SnapshotImported {
		k.oracle.IterateWeightsAt(ctx, proposal.SnapshotPoint, fn)
		return
	}
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), GetSnapshotWeightsPrefix(proposal.ID))
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		if fn(holderFromSnapshotWeightKey(iterator.Key()), sdk.BigEndianToInt64(iterator.Value())) {
			break
		}
	}
}

func (k Keeper) setSnapshotWeight(ctx sdk.Context, id int64, holder sdk.AccAddress, weight int64) {
	ctx.KVStore(k.storeKey).Set(GetSnapshotWeightKey(id, holder), sdk.Int64ToBigEndian(weight))
}

func (k Keeper) getProposal(ctx sdk.Context, id int64) (Proposal, bool) {
	bz := ctx.KVStore(k.storeKey).Get(GetProposalKey(id))
	if bz == nil {
		return Proposal{}, false
	}
	var proposal Proposal
	k.cdc.MustUnmarshalBinaryLengthPrefixed(bz, &proposal)
	return proposal, true
}

func (k Keeper) setProposal(ctx sdk.Context, proposal Proposal) {
	ctx.KVStore(k.storeKey).Set(GetProposalKey(proposal.ID), k.cdc.MustMarshalBinaryLengthPrefixed(proposal))
}

// IterateProposals calls fn for every proposal in ID order until fn returns true.
func (k Keeper) IterateProposals(ctx sdk.Context, fn func(proposal Proposal) (stop bool)) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), ProposalKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		var proposal Proposal
		k.cdc.MustUnmarshalBinaryLengthPrefixed(iterator.Value(), &proposal)
		if fn(proposal) {
			break
		}
	}
}

// GetProposals returns up to limit proposals, newest first, optionally
// filtered by status. A limit of zero means no limit.
func (k Keeper) GetProposals(ctx sdk.Context, status ProposalStatus, limit int) []Proposal {
	matched := make([]Proposal, 0)
	iterator := sdk.KVStoreReversePrefixIterator(ctx.KVStore(k.storeKey), ProposalKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		if limit > 0 && len(matched) >= limit {
			break
		}
		var proposal Proposal
		k.cdc.MustUnmarshalBinaryLengthPrefixed(iterator.Value(), &proposal)
		if status != StatusNil && k.GetStatus(ctx, proposal) != status {
			continue
		}
		matched = append(matched, proposal)
	}
	return matched
}

// LastProposalID returns the ID of the newest proposal, 0 if there is none.
func (k Keeper) LastProposalID(ctx sdk.Context) int64 {
	return k.peekNextProposalID(ctx) - 1
}

func (k Keeper) peekNextProposalID(ctx sdk.Context) int64 {
	bz := ctx.KVStore(k.storeKey).Get(NextProposalIDKey)
	if bz == nil {
		return 1
	}
	return sdk.BigEndianToInt64(bz)
}

func (k Keeper) takeNextProposalID(ctx sdk.Context) int64 {
	id := k.peekNextProposalID(ctx)
	ctx.KVStore(k.storeKey).Set(NextProposalIDKey, sdk.Int64ToBigEndian(id+1))
	return id
}

// =====================================================
// State machine

func (k Keeper) voteDuration(ctx sdk.Context) time.Duration {
	config, _ := k.GetConfig(ctx)
	return config.VoteDuration
}

func (k Keeper) isClosed(ctx sdk.Context, proposal Proposal) bool {
	return !ctx.BlockTime().Before(proposal.ClosesAt(k.voteDuration(ctx)))
}

func (k Keeper) isOpen(ctx sdk.Context, proposal Proposal) bool {
	return !proposal.Executed && !k.isClosed(ctx, proposal)
}

// isDecided: either the vote closed with enough support and quorum, or the
// yea side alone already holds the required support of the whole snapshot,
// which no later ballot can undo.
func (k Keeper) isDecided(ctx sdk.Context, proposal Proposal) bool {
	if proposal.Executed {
		return false
	}
	quorumOk := MeetsPercentage(proposal.Yea, proposal.TotalVotingPower, proposal.MinAcceptQuorumPct)
	earlyDecision := MeetsPercentage(proposal.Yea, proposal.TotalVotingPower, proposal.SupportRequiredPct) && quorumOk
	if earlyDecision {
		return true
	}
	// Yea+Nay <= TotalVotingPower, so the sum cannot overflow
	supportOk := MeetsPercentage(proposal.Yea, proposal.Yea+proposal.Nay, proposal.SupportRequiredPct)
	return k.isClosed(ctx, proposal) && supportOk && quorumOk
}

// GetStatus derives the status of a proposal at the block time of ctx.
func (k Keeper) GetStatus(ctx sdk.Context, proposal Proposal) ProposalStatus {
	switch {
	case proposal.Executed:
		return StatusExecuted
	case k.isDecided(ctx, proposal):
		return StatusDecided
	case k.isClosed(ctx, proposal):
		return StatusRejected
	default:
		return StatusOpen
	}
}

// CanExecute reports whether the proposal is decided and not yet executed.
func (k Keeper) CanExecute(ctx sdk.Context, id int64) bool {
	proposal, ok := k.getProposal(ctx, id)
	if !ok {
		return false
	}
	return k.isDecided(ctx, proposal)
}

// CanVote reports whether voter may cast a ballot on the proposal now.
func (k Keeper) CanVote(ctx sdk.Context, id int64, voter sdk.AccAddress) bool {
	proposal, ok := k.getProposal(ctx, id)
	if !ok {
		return false
	}
	return k.isOpen(ctx, proposal) && k.SnapshotWeightOf(ctx, proposal, voter) > 0
}

// NewVote opens a proposal whose weights are fixed at the last committed
// height. When castOwnVote is set and the creator had weight there, the
// creator votes yea right away. When executeIfDecided is set and the
// proposal is already decided, its script runs before returning. Either all
// of this happens or none of it.
func (k Keeper) NewVote(ctx sdk.Context, creator sdk.AccAddress, script Script, metadata string,
	castOwnVote, executeIfDecided bool) (int64, sdk.Error) {
	if !k.gate.HasCapability(ctx, creator, acl.CapCreateProposal) {
		return 0, acl.ErrMissingCapability(creator, acl.CapCreateProposal)
	}
	if err := script.ValidateBasic(); err != nil {
		return 0, err
	}

	cacheCtx, writeCache := ctx.CacheContext()
	id, err := k.newVote(cacheCtx, creator, script, metadata, castOwnVote, executeIfDecided)
	if err != nil {
		return 0, err
	}
	writeCache()
	k.recordMetrics(cacheCtx.EventManager().Events())
	return id, nil
}

func (k Keeper) newVote(ctx sdk.Context, creator sdk.AccAddress, script Script, metadata string,
	castOwnVote, executeIfDecided bool) (int64, sdk.Error) {
	config, ok := k.GetConfig(ctx)
	if !ok {
		return 0, ErrNotConfigured(k.codespace)
	}

	snapshotPoint := ctx.BlockHeight() - 1
	total := k.oracle.TotalWeightAt(ctx, snapshotPoint)
	if total <= 0 {
		return 0, ErrNoVotingPower(k.codespace, snapshotPoint)
	}

	proposal := Proposal{
		ID:                 k.takeNextProposalID(ctx),
		Creator:            creator,
		OpenedAt:           ctx.BlockTime(),
		SnapshotPoint:      snapshotPoint,
		SupportRequiredPct: config.SupportRequiredPct,
		MinAcceptQuorumPct: config.MinAcceptQuorumPct,
		TotalVotingPower:   total,
		Script:             script,
		Metadata:           metadata,
	}
	k.setProposal(ctx, proposal)

	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeProposalCreated,
		sdk.NewAttribute(AttributeKeyProposalID, strconv.FormatInt(proposal.ID, 10)),
		sdk.NewAttribute(AttributeKeyCreator, creator.String()),
		sdk.NewAttribute(AttributeKeySnapshotPoint, strconv.FormatInt(snapshotPoint, 10)),
		sdk.NewAttribute(AttributeKeyMetadata, metadata),
	))
	k.Logger(ctx).Info("proposal opened", "id", proposal.ID, "creator", creator.String(),
		"snapshot", snapshotPoint, "total_weight", total, "actions", len(script))

	if castOwnVote && k.SnapshotWeightOf(ctx, proposal, creator) > 0 {
		if err := k.vote(ctx, proposal.ID, creator, true, false); err != nil {
			return 0, err
		}
	}
	if executeIfDecided && k.CanExecute(ctx, proposal.ID) {
		if err := k.executeVote(ctx, proposal.ID); err != nil {
			return 0, err
		}
	}
	return proposal.ID, nil
}

// Vote records voter's ballot, replacing any earlier one, with the weight
// voter had at the proposal's snapshot. With executeIfDecided the script runs
// as soon as the ballot decides the proposal. A failed execution rejects the
// ballot as well.
func (k Keeper) Vote(ctx sdk.Context, id int64, voter sdk.AccAddress, supports, executeIfDecided bool) sdk.Error {
	cacheCtx, writeCache := ctx.CacheContext()
	if err := k.vote(cacheCtx, id, voter, supports, executeIfDecided); err != nil {
		return err
	}
	writeCache()
	k.recordMetrics(cacheCtx.EventManager().Events())
	return nil
}

func (k Keeper) vote(ctx sdk.Context, id int64, voter sdk.AccAddress, supports, executeIfDecided bool) sdk.Error {
	proposal, ok := k.getProposal(ctx, id)
	if !ok {
		return ErrNoSuchProposal(k.codespace, id)
	}
	if !k.isOpen(ctx, proposal) {
		return ErrNotOpen(k.codespace, id)
	}
	weight := k.SnapshotWeightOf(ctx, proposal, voter)
	if weight <= 0 {
		return ErrZeroWeight(k.codespace, voter, proposal.SnapshotPoint)
	}

	if previous, ok := k.GetBallot(ctx, id, voter); ok {
		switch previous.State {
		case VoterStateYea:
			proposal.Yea -= previous.Weight
		case VoterStateNay:
			proposal.Nay -= previous.Weight
		}
	}
	if supports {
		proposal.Yea += weight
	} else {
		proposal.Nay += weight
	}
	k.setBallot(ctx, Ballot{ProposalID: id, Voter: voter, State: VoterStateFromSupport(supports), Weight: weight})
	k.setProposal(ctx, proposal)

	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeVoteCast,
		sdk.NewAttribute(AttributeKeyProposalID, strconv.FormatInt(id, 10)),
		sdk.NewAttribute(AttributeKeyVoter, voter.String()),
		sdk.NewAttribute(AttributeKeySupports, strconv.FormatBool(supports)),
		sdk.NewAttribute(AttributeKeyWeight, strconv.FormatInt(weight, 10)),
	))

	if executeIfDecided && k.isDecided(ctx, proposal) {
		return k.executeVote(ctx, id)
	}
	return nil
}

// ExecuteVote runs the script of a decided proposal and marks it executed.
// If any action fails nothing changes and the proposal stays decided.
func (k Keeper) ExecuteVote(ctx sdk.Context, id int64) sdk.Error {
	cacheCtx, writeCache := ctx.CacheContext()
	if err := k.executeVote(cacheCtx, id); err != nil {
		return err
	}
	writeCache()
	k.recordMetrics(cacheCtx.EventManager().Events())
	return nil
}

func (k Keeper) executeVote(ctx sdk.Context, id int64) sdk.Error {
	proposal, ok := k.getProposal(ctx, id)
	if !ok {
		return ErrNoSuchProposal(k.codespace, id)
	}
	if proposal.Executed {
		return ErrAlreadyExecuted(k.codespace, id)
	}
	if !k.isDecided(ctx, proposal) {
		return ErrNotDecided(k.codespace, id)
	}

	if failedAt, err := k.executor.Run(ctx, proposal.Script); err != nil {
		k.metrics.ExecutionFailures.Add(1)
		k.Logger(ctx).Error("proposal execution failed", "id", id, "action", failedAt, "err", err.ABCILog())
		return ErrExecutionFailed(k.codespace, failedAt, err)
	}

	proposal.Executed = true
	k.setProposal(ctx, proposal)
	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeExecuted,
		sdk.NewAttribute(AttributeKeyProposalID, strconv.FormatInt(id, 10)),
	))
	k.Logger(ctx).Info("proposal executed", "id", id, "actions", len(proposal.Script))
	return nil
}

// recordMetrics counts what a committed operation did from the events it emitted.
func (k Keeper) recordMetrics(events sdk.Events) {
	for _, event := range events {
		switch event.Type {
		case EventTypeProposalCreated:
			k.metrics.ProposalsCreated.Add(1)
			if v, ok := event.GetAttribute(AttributeKeyProposalID); ok {
				if id, err := strconv.ParseInt(v, 10, 64); err == nil {
					k.metrics.LastProposalID.Set(float64(id))
				}
			}
		case EventTypeVoteCast:
			supports, _ := event.GetAttribute(AttributeKeySupports)
			k.metrics.VotesCast.With("supports", supports).Add(1)
		case EventTypeExecuted:
			k.metrics.ProposalsExecuted.Add(1)
		}
	}
}
