package app

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"

	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
	"github.com/bnb-chain/tokenvote/x/token"
	"github.com/bnb-chain/tokenvote/x/voting"
)

// GenesisState is the state the chain starts from, one section per module.
type GenesisState struct {
	ChainID     string              `json:"chain_id"`
	GenesisTime time.Time           `json:"genesis_time"`
	ACL         acl.GenesisState    `json:"acl"`
	Token       token.GenesisState  `json:"token"`
	Voting      voting.GenesisState `json:"voting"`
}

// NewDefaultGenesisState gives admin every capability and the whole initial
// supply, and configures voting with the default thresholds.
func NewDefaultGenesisState(chainID string, admin sdk.AccAddress, supply int64) GenesisState {
	balances := []token.Balance{}
	if supply > 0 {
		balances = append(balances, token.Balance{Address: admin, Amount: supply})
	}
	return GenesisState{
		ChainID:     chainID,
		GenesisTime: time.Now().UTC().Truncate(time.Second),
		ACL:         acl.DefaultGenesisState(admin),
		Token:       token.NewGenesisState(balances),
		Voting:      voting.DefaultGenesisState(),
	}
}

func ValidateGenesis(data GenesisState) error {
	if data.ChainID == "" {
		return errors.New("genesis chain_id is empty")
	}
	if err := acl.ValidateGenesis(data.ACL); err != nil {
		return errors.Wrap(err, "acl genesis")
	}
	if err := token.ValidateGenesis(data.Token); err != nil {
		return errors.Wrap(err, "token genesis")
	}
	if err := voting.ValidateGenesis(data.Voting); err != nil {
		return errors.Wrap(err, "voting genesis")
	}
	return nil
}

// GenesisStateFromFile reads and validates a genesis document.
func GenesisStateFromFile(cdc *codec.Codec, path string) (GenesisState, error) {
	var data GenesisState
	bz, err := ioutil.ReadFile(path)
	if err != nil {
		return data, errors.Wrapf(err, "couldn't read genesis file %s", path)
	}
	if err := cdc.UnmarshalJSON(bz, &data); err != nil {
		return data, errors.Wrapf(err, "couldn't parse genesis file %s", path)
	}
	return data, ValidateGenesis(data)
}

// WriteGenesisFile writes data as indented JSON to path.
func WriteGenesisFile(cdc *codec.Codec, path string, data GenesisState) error {
	bz, err := codec.MarshalJSONIndent(cdc, data)
	if err != nil {
		return err
	}
	return errors.Wrapf(ioutil.WriteFile(path, bz, 0644), "couldn't write genesis file %s", path)
}
