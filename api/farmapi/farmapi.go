// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farmapi

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/api/utils"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/eventdb"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm"
)

// Clock reports the current block environment the read-side views are
// evaluated against.
type Clock func() tokenfarm.Env

// FarmAPI exposes the farm's read-side views over HTTP.
type FarmAPI struct {
	farm   *tokenfarm.Farm
	events *eventdb.EventDB
	clock  Clock
	locker sync.Locker
}

// New returns a FarmAPI reading through f. A non-nil locker is held across
// every ledger read, serializing requests against whoever else mutates the
// underlying state.
func New(f *tokenfarm.Farm, events *eventdb.EventDB, clock Clock, locker sync.Locker) *FarmAPI {
	return &FarmAPI{
		farm:   f,
		events: events,
		clock:  clock,
		locker: locker,
	}
}

func (a *FarmAPI) lockLedger() func() {
	if a.locker == nil {
		return func() {}
	}
	a.locker.Lock()
	return a.locker.Unlock
}

func (a *FarmAPI) handleGetStats(w http.ResponseWriter, _ *http.Request) error {
	defer a.lockLedger()()
	stats, err := a.farm.GetContractStats()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, stats)
}

func (a *FarmAPI) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	defer a.lockLedger()()
	status, err := a.farm.Status()
	if err != nil {
		return err
	}
	version, err := a.farm.Version()
	if err != nil {
		return err
	}
	env := a.clock()
	return utils.WriteJSON(w, utils.M{
		"status":      status.String(),
		"version":     version,
		"blockNumber": env.BlockNumber,
		"blockTime":   env.BlockTime,
	})
}

func (a *FarmAPI) handleGetAccount(w http.ResponseWriter, r *http.Request) error {
	addr, err := parseAddress(r)
	if err != nil {
		return err
	}
	defer a.lockLedger()()
	info, err := a.farm.GetUserInfo(*addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, info)
}

func (a *FarmAPI) handleGetRewards(w http.ResponseWriter, r *http.Request) error {
	addr, err := parseAddress(r)
	if err != nil {
		return err
	}
	defer a.lockLedger()()
	pending, projected, err := a.farm.SimulateRewards(a.clock(), *addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{
		"pending":   pending.String(),
		"projected": projected.String(),
	})
}

func (a *FarmAPI) handleGetWithdrawable(w http.ResponseWriter, r *http.Request) error {
	addr, err := parseAddress(r)
	if err != nil {
		return err
	}
	defer a.lockLedger()()
	ok, unlockTime, err := a.farm.CanWithdraw(a.clock(), *addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{
		"canWithdraw": ok,
		"unlockTime":  unlockTime,
	})
}

func (a *FarmAPI) handleGetStakers(w http.ResponseWriter, _ *http.Request) error {
	defer a.lockLedger()()
	stakers, err := a.farm.GetActiveStakers()
	if err != nil {
		return err
	}
	if stakers == nil {
		stakers = []farm.Address{}
	}
	return utils.WriteJSON(w, stakers)
}

func (a *FarmAPI) handleGetEvents(w http.ResponseWriter, r *http.Request) error {
	if a.events == nil {
		return utils.HTTPError(errors.New("event store not enabled"), http.StatusNotImplemented)
	}
	filter, err := parseEventFilter(r)
	if err != nil {
		return err
	}
	events, err := a.events.Filter(filter)
	if err != nil {
		return err
	}
	if events == nil {
		events = []tokenfarm.Event{}
	}
	return utils.WriteJSON(w, events)
}

func parseAddress(r *http.Request) (*farm.Address, error) {
	addr, err := farm.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

func parseEventFilter(r *http.Request) (*eventdb.Filter, error) {
	query := r.URL.Query()
	filter := &eventdb.Filter{
		Name: query.Get("name"),
	}
	if user := query.Get("user"); user != "" {
		addr, err := farm.ParseAddress(user)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "user"))
		}
		filter.User = addr
	}
	if query.Get("from") != "" || query.Get("to") != "" {
		rng := &eventdb.Range{Unit: eventdb.Block}
		var err error
		if from := query.Get("from"); from != "" {
			if rng.From, err = strconv.ParseUint(from, 10, 64); err != nil {
				return nil, utils.BadRequest(errors.WithMessage(err, "from"))
			}
		}
		if to := query.Get("to"); to != "" {
			if rng.To, err = strconv.ParseUint(to, 10, 64); err != nil {
				return nil, utils.BadRequest(errors.WithMessage(err, "to"))
			}
		}
		filter.Range = rng
	}
	if order := query.Get("order"); order == string(eventdb.DESC) {
		filter.Order = eventdb.DESC
	}
	if limit := query.Get("limit"); limit != "" {
		n, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "limit"))
		}
		opts := &eventdb.Options{Limit: n}
		if offset := query.Get("offset"); offset != "" {
			if opts.Offset, err = strconv.ParseUint(offset, 10, 64); err != nil {
				return nil, utils.BadRequest(errors.WithMessage(err, "offset"))
			}
		}
		filter.Options = opts
	}
	return filter, nil
}

func (a *FarmAPI) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/stats").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetStats))
	sub.Path("/status").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetStatus))
	sub.Path("/accounts/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/accounts/{address}/rewards").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetRewards))
	sub.Path("/accounts/{address}/withdrawable").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetWithdrawable))
	sub.Path("/stakers").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetStakers))
	sub.Path("/events").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetEvents))
}
