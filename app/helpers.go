package app

import (
	"time"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// ExecuteBlock runs msgs in a block of their own at time t and commits it.
// A failed msg does not stop the block; its result says why it failed.
// Calls are serialized so concurrent callers each get a whole block.
func (app *TokenVoteApp) ExecuteBlock(t time.Time, msgs ...sdk.Msg) ([]sdk.Result, sdk.CommitID, error) {
	app.blockMtx.Lock()
	defer app.blockMtx.Unlock()

	if last := app.LastHeader().Time; t.Before(last) {
		t = last
	}
	if err := app.NextBlock(t); err != nil {
		return nil, sdk.CommitID{}, err
	}
	results := make([]sdk.Result, 0, len(msgs))
	for _, msg := range msgs {
		results = append(results, app.Deliver(msg))
	}
	return results, app.Commit(), nil
}
