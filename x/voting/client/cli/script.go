package cli

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/x/voting"
)

// scriptFile is the JSON form of a script, e.g.
//
//	{"actions": [
//	  {"target": "token", "action": {"type": "tokenvote/token/MintAction", "value": {"to": "tv1...", "amount": "10"}}}
//	]}
type scriptFile struct {
	Actions []scriptEntry `json:"actions"`
}

type scriptEntry struct {
	Target string              `json:"target"`
	Action voting.ScriptAction `json:"action"`
}

// ParseScript turns a script file into a script. The codec must know every
// action type the file names.
func ParseScript(cdc *codec.Codec, bz []byte) (voting.Script, error) {
	var file scriptFile
	if err := cdc.UnmarshalJSON(bz, &file); err != nil {
		return nil, errors.Wrap(err, "failed to decode script")
	}
	script := make(voting.Script, 0, len(file.Actions))
	for i, entry := range file.Actions {
		if entry.Action == nil {
			return nil, fmt.Errorf("action %d is empty", i)
		}
		if err := entry.Action.ValidateBasic(); err != nil {
			return nil, fmt.Errorf("action %d: %s", i, err.ABCILog())
		}
		payload, err := cdc.MarshalBinaryLengthPrefixed(entry.Action)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode action %d", i)
		}
		script = append(script, voting.NewAction(entry.Target, payload))
	}
	if err := script.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("%s", err.ABCILog())
	}
	return script, nil
}

// ReadScriptFile reads and parses the script file at path. An empty path is
// an empty script.
func ReadScriptFile(cdc *codec.Codec, path string) (voting.Script, error) {
	if path == "" {
		return voting.Script{}, nil
	}
	bz, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read script file %s", path)
	}
	return ParseScript(cdc, bz)
}
