package utils

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
)

// ErrorResponse is the body of every failed REST call.
type ErrorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// WriteErrorResponse prepares and writes a HTTP error
// given a status code and an error message.
func WriteErrorResponse(w http.ResponseWriter, status int, err string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(codec.Cdc.MustMarshalJSON(ErrorResponse{Code: status, Error: err}))
}

// PostProcessResponse writes a JSON encoded response. Already encoded
// responses are written as they are.
func PostProcessResponse(w http.ResponseWriter, cdc *codec.Codec, response interface{}, indent bool) {
	var output []byte
	switch response.(type) {
	case []byte:
		output = response.([]byte)
	default:
		var err error
		if indent {
			output, err = codec.MarshalJSONIndent(cdc, response)
		} else {
			output, err = cdc.MarshalJSON(response)
		}
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(output)
}

// BaseReq is embedded in every tx request body.
type BaseReq struct {
	From string `json:"from"`
}

// Sanitize trims the request's fields.
func (br BaseReq) Sanitize() BaseReq {
	return BaseReq{From: strings.TrimSpace(br.From)}
}

// ValidateBasic writes a 400 and returns false when the request names no sender.
func (br BaseReq) ValidateBasic(w http.ResponseWriter) bool {
	if br.From == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "from must be specified")
		return false
	}
	return true
}

// HasDryRunArg reports whether the request asks for the msg to be echoed
// instead of executed.
func HasDryRunArg(r *http.Request) bool {
	return r.URL.Query().Get("dry_run") == "true"
}

// WriteTxResponse validates and executes msg, writing the result. Rejected
// msgs are answered with a 400 carrying the result log.
func WriteTxResponse(w http.ResponseWriter, r *http.Request, cliCtx context.CLIContext, msg sdk.Msg) {
	if err := msg.ValidateBasic(); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.ABCILog())
		return
	}
	if HasDryRunArg(r) {
		PostProcessResponse(w, cliCtx.Codec, msg, cliCtx.Indent)
		return
	}
	res, err := cliCtx.BroadcastMsg(msg)
	if err != nil {
		if res.Code != sdk.CodeOK {
			WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	PostProcessResponse(w, cliCtx.Codec, NewTxResponse(res), cliCtx.Indent)
}

// WriteQueryResponse runs a custom query and writes its raw JSON answer.
// Failed queries are answered with a 404.
func WriteQueryResponse(w http.ResponseWriter, cliCtx context.CLIContext, path string, params interface{}) {
	var data []byte
	if params != nil {
		bz, err := cliCtx.Codec.MarshalJSON(params)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		data = bz
	}
	res, err := cliCtx.QueryWithData(path, data)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	PostProcessResponse(w, cliCtx.Codec, res, cliCtx.Indent)
}

// ReadRESTReq decodes the request body into req.
func ReadRESTReq(w http.ResponseWriter, r *http.Request, cdc *codec.Codec, req interface{}) bool {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := cdc.UnmarshalJSON(body, req); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %s", err))
		return false
	}
	return true
}

// ParseInt64OrReturnBadRequest converts s to an int64, writing a 400 and
// returning false when it cannot.
func ParseInt64OrReturnBadRequest(w http.ResponseWriter, s string) (n int64, ok bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("'%s' is not a valid int64", s))
		return n, false
	}
	return n, true
}

// ParseQueryInt64 reads an optional int64 query parameter, defaulting to def.
func ParseQueryInt64(w http.ResponseWriter, r *http.Request, name string, def int64) (int64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, true
	}
	return ParseInt64OrReturnBadRequest(w, s)
}
