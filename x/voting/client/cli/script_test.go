package cli

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/tokenvote/app"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
	"github.com/bnb-chain/tokenvote/x/token"
	"github.com/bnb-chain/tokenvote/x/voting"
)

func TestParseScript(t *testing.T) {
	cdc := app.MakeCodec()
	alice := sdk.AccAddressFromName("alice")

	bz := []byte(fmt.Sprintf(`{"actions": [
		{"target": "token", "action": {"type": "tokenvote/token/MintAction", "value": {"to": "%s", "amount": "10"}}},
		{"target": "acl", "action": {"type": "tokenvote/acl/GrantAction", "value": {"grantee": "%s", "capability": "mint"}}},
		{"target": "voting", "action": {"type": "tokenvote/voting/ChangeQuorumAction", "value": {"pct": "300000000000000000"}}}
	]}`, alice, alice))

	script, err := ParseScript(cdc, bz)
	require.NoError(t, err)
	require.Len(t, script, 3)

	require.Equal(t, token.ActionTarget, script[0].Target)
	require.Equal(t, token.EncodeAction(token.MintAction{To: alice, Amount: 10}), script[0].Payload)
	require.Equal(t, acl.ActionTarget, script[1].Target)
	require.Equal(t, acl.EncodeAction(acl.GrantAction{Grantee: alice, Capability: acl.CapMint}), script[1].Payload)
	require.Equal(t, voting.ActionTarget, script[2].Target)
	require.Equal(t, voting.EncodeAction(voting.ChangeQuorumAction{Pct: 300000000000000000}), script[2].Payload)
}

func TestParseScriptErrors(t *testing.T) {
	cdc := app.MakeCodec()
	alice := sdk.AccAddressFromName("alice")

	tests := []struct {
		name string
		bz   string
	}{
		{"not json", `actions`},
		{"unknown type", `{"actions": [{"target": "token", "action": {"type": "tokenvote/token/Nope", "value": {}}}]}`},
		{"missing action", `{"actions": [{"target": "token"}]}`},
		{"invalid action", fmt.Sprintf(`{"actions": [{"target": "token", "action": {"type": "tokenvote/token/MintAction", "value": {"to": "%s", "amount": "0"}}}]}`, alice)},
		{"missing target", fmt.Sprintf(`{"actions": [{"target": "", "action": {"type": "tokenvote/token/MintAction", "value": {"to": "%s", "amount": "1"}}}]}`, alice)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript(cdc, []byte(tc.bz))
			require.Error(t, err)
		})
	}
}

func TestReadScriptFile(t *testing.T) {
	cdc := app.MakeCodec()

	script, err := ReadScriptFile(cdc, "")
	require.NoError(t, err)
	require.Empty(t, script)

	dir, err := ioutil.TempDir("", "script")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	_, err = ReadScriptFile(cdc, filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	path := filepath.Join(dir, "script.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"actions": []}`), 0644))
	script, err = ReadScriptFile(cdc, path)
	require.NoError(t, err)
	require.Empty(t, script)
}

func TestParseVoteArgs(t *testing.T) {
	id, err := parseProposalID("3")
	require.NoError(t, err)
	require.Equal(t, int64(3), id)
	_, err = parseProposalID("0")
	require.Error(t, err)
	_, err = parseProposalID("x")
	require.Error(t, err)

	supports, err := parseSupports("Yea")
	require.NoError(t, err)
	require.True(t, supports)
	supports, err = parseSupports("nay")
	require.NoError(t, err)
	require.False(t, supports)
	_, err = parseSupports("abstain")
	require.Error(t, err)
}
