// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/api/farmapi"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/api/utils"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/eventdb"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/log"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool

	// Locker, when set, is held across every ledger read. The node passes
	// the mutex its block clock commits under, so requests never observe a
	// half-applied tick.
	Locker sync.Locker
}

// New returns the api handler.
func New(
	farm *tokenfarm.Farm,
	events *eventdb.EventDB,
	clock farmapi.Clock,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	farmapi.New(farm, events, clock, opts.Locker).
		Mount(router, "/farm")

	router.Path("/health").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) error {
			return utils.WriteJSON(w, utils.M{"healthy": true})
		}))

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsHandler)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
