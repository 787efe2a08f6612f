package context

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
)

// Node is what commands run against: queries on committed state and
// blocks of messages.
type Node interface {
	Query(req abci.RequestQuery) abci.ResponseQuery
	ExecuteBlock(t time.Time, msgs ...sdk.Msg) ([]sdk.Result, sdk.CommitID, error)
}

// NodeOpener opens a node for one command; release frees it.
type NodeOpener func() (node Node, release func(), err error)

var defaultNode NodeOpener

// RegisterNodeOpener sets the node contexts created by NewCLIContext run
// against. The daemon registers its home database on startup.
func RegisterNodeOpener(open NodeOpener) {
	defaultNode = open
}

// StaticNode serves an already open node and never releases it.
func StaticNode(node Node) NodeOpener {
	return func() (Node, func(), error) {
		return node, func() {}, nil
	}
}

// CLIContext implements a typical CLI context created in SDK modules for
// transaction handling and queries.
type CLIContext struct {
	Codec       *codec.Codec
	Output      io.Writer
	Input       *bufio.Reader
	From        string
	Height      int64
	Indent      bool
	SkipConfirm bool
	DryRun      bool

	openNode NodeOpener
	now      func() time.Time
}

// NewCLIContext returns a new initialized CLIContext with parameters from the
// command line using Viper.
func NewCLIContext() CLIContext {
	return CLIContext{
		Output:      os.Stdout,
		Input:       bufio.NewReader(os.Stdin),
		From:        viper.GetString(client.FlagFrom),
		Height:      viper.GetInt64(client.FlagHeight),
		Indent:      viper.GetBool(client.FlagIndentResponse),
		SkipConfirm: viper.GetBool(client.FlagSkipConfirmation),
		DryRun:      viper.GetBool(client.FlagDryRun),
		openNode:    defaultNode,
		now:         time.Now,
	}
}

// WithCodec returns a copy of the context with an updated codec.
func (ctx CLIContext) WithCodec(cdc *codec.Codec) CLIContext {
	ctx.Codec = cdc
	return ctx
}

// WithNode returns a copy of the context that runs against the opened node.
func (ctx CLIContext) WithNode(open NodeOpener) CLIContext {
	ctx.openNode = open
	return ctx
}

// WithOutput returns a copy of the context with an updated output writer.
func (ctx CLIContext) WithOutput(w io.Writer) CLIContext {
	ctx.Output = w
	return ctx
}

// WithInput returns a copy of the context reading confirmations from r.
func (ctx CLIContext) WithInput(r io.Reader) CLIContext {
	ctx.Input = bufio.NewReader(r)
	return ctx
}

// WithFrom returns a copy of the context with an updated from address or name.
func (ctx CLIContext) WithFrom(from string) CLIContext {
	ctx.From = from
	return ctx
}

// WithClock returns a copy of the context that stamps blocks with now().
func (ctx CLIContext) WithClock(now func() time.Time) CLIContext {
	ctx.now = now
	return ctx
}

// GetFromAddress resolves --from as a bech32 address, falling back to an
// address derived from the name.
func (ctx CLIContext) GetFromAddress() (sdk.AccAddress, error) {
	return ParseAddress(ctx.From)
}

// ParseAddress accepts a bech32 address or an account name.
func ParseAddress(s string) (sdk.AccAddress, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("must provide an address or account name")
	}
	if strings.HasPrefix(s, sdk.Bech32PrefixAccAddr+"1") {
		return sdk.AccAddressFromBech32(s)
	}
	return sdk.AccAddressFromName(s), nil
}

func (ctx CLIContext) node() (Node, func(), error) {
	if ctx.openNode == nil {
		return nil, nil, errors.New("no node configured")
	}
	return ctx.openNode()
}

// QueryWithData performs a query for information about the connected node.
func (ctx CLIContext) QueryWithData(path string, data []byte) ([]byte, error) {
	res, err := ctx.query(path, data)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// QueryStore performs a query from the store with a given key and store
// name.
func (ctx CLIContext) QueryStore(key []byte, storeName string) ([]byte, error) {
	res, err := ctx.query(fmt.Sprintf("/store/%s/key", storeName), key)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

func (ctx CLIContext) query(path string, data []byte) (abci.ResponseQuery, error) {
	node, release, err := ctx.node()
	if err != nil {
		return abci.ResponseQuery{}, err
	}
	defer release()

	res := node.Query(abci.RequestQuery{Path: path, Data: data, Height: ctx.Height})
	if !sdk.CodeType(res.Code).IsOK() {
		return res, errors.New(res.Log)
	}
	return res, nil
}

// BroadcastMsg executes msg in a new block and returns its result. A failed
// msg is an error.
func (ctx CLIContext) BroadcastMsg(msg sdk.Msg) (sdk.Result, error) {
	node, release, err := ctx.node()
	if err != nil {
		return sdk.Result{}, err
	}
	defer release()

	results, commitID, err := node.ExecuteBlock(ctx.now().UTC(), msg)
	if err != nil {
		return sdk.Result{}, err
	}
	res := results[0]
	if !res.IsOK() {
		return res, errors.Errorf("msg failed at height %d: %s", commitID.Version, res.Log)
	}
	return res, nil
}

// MarshalOutput encodes v as JSON with the context's codec, indented if
// asked to.
func (ctx CLIContext) MarshalOutput(v interface{}) ([]byte, error) {
	if ctx.Indent {
		return codec.MarshalJSONIndent(ctx.Codec, v)
	}
	return ctx.Codec.MarshalJSON(v)
}

// PrintOutput writes v to the context's output.
func (ctx CLIContext) PrintOutput(v interface{}) error {
	bz, err := ctx.MarshalOutput(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.Output, string(bz))
	return err
}

// PrintRaw writes an already encoded response.
func (ctx CLIContext) PrintRaw(bz []byte) error {
	_, err := fmt.Fprintln(ctx.Output, strings.TrimSpace(string(bz)))
	return err
}
