package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"

	clientctx "github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	aclrest "github.com/bnb-chain/tokenvote/x/acl/client/rest"
	tokenrest "github.com/bnb-chain/tokenvote/x/token/client/rest"
	votingrest "github.com/bnb-chain/tokenvote/x/voting/client/rest"
)

const shutdownTimeout = 5 * time.Second

// RestServer serves the module REST routes and, when enabled, Prometheus
// metrics on one listener.
type RestServer struct {
	cmn.BaseService

	Mux        *mux.Router
	listenAddr string
	srv        *http.Server
	listener   net.Listener
}

// NewRestServer registers the routes of every module against cliCtx.
func NewRestServer(cliCtx clientctx.CLIContext, cdc *codec.Codec, listenAddr string, metrics bool, logger log.Logger) *RestServer {
	r := mux.NewRouter()
	r.HandleFunc("/version", versionHandler(cdc)).Methods("GET")
	votingrest.RegisterRoutes(cliCtx, r, cdc)
	tokenrest.RegisterRoutes(cliCtx, r, cdc)
	aclrest.RegisterRoutes(cliCtx, r, cdc)
	if metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	rs := &RestServer{
		Mux:        r,
		listenAddr: listenAddr,
	}
	rs.BaseService = *cmn.NewBaseService(logger, "RestServer", rs)
	return rs
}

func (rs *RestServer) OnStart() error {
	proto, addr := cmn.ProtocolAndAddress(rs.listenAddr)
	listener, err := net.Listen(proto, addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", rs.listenAddr)
	}
	rs.listener = listener
	rs.srv = &http.Server{Handler: rs.Mux}

	rs.Logger.Info("Starting REST server", "addr", listener.Addr().String())
	go func() {
		if err := rs.srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			rs.Logger.Error("REST server stopped", "err", err)
		}
	}()
	return nil
}

func (rs *RestServer) OnStop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := rs.srv.Shutdown(ctx); err != nil {
		rs.Logger.Error("REST server shutdown", "err", err)
	}
}

// Addr is the address the server listens on, available once started.
func (rs *RestServer) Addr() net.Addr {
	if rs.listener == nil {
		return nil
	}
	return rs.listener.Addr()
}

// Version is reported by GET /version.
var Version = "0.1.0"

type versionInfo struct {
	Version string `json:"version"`
}

func versionHandler(cdc *codec.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.PostProcessResponse(w, cdc, versionInfo{Version: Version}, false)
	}
}
