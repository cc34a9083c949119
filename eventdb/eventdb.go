// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	blockNumber INTEGER NOT NULL,
	blockTime INTEGER NOT NULL,
	user BLOB,
	amount TEXT,
	aux TEXT,
	memo TEXT
);
CREATE INDEX IF NOT EXISTS event_name ON event(name);
CREATE INDEX IF NOT EXISTS event_user ON event(user);
CREATE INDEX IF NOT EXISTS event_block ON event(blockNumber);`

type RangeType string

const (
	Block RangeType = "Block"
	Time  RangeType = "Time"
)

type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

type Range struct {
	Unit RangeType `json:"unit"`
	From uint64    `json:"from"`
	To   uint64    `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects events by name, user and block/time range.
type Filter struct {
	Name    string        `json:"name"`
	User    *farm.Address `json:"user"`
	Order   OrderType     `json:"order"` // default asc
	Range   *Range        `json:"range"`
	Options *Options      `json:"options"`
}

// EventDB persists committed farm events in sqlite, for querying by the API.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New opens an event db at path.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem creates a memory backed event db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the underlying database.
func (db *EventDB) Close() error {
	return db.db.Close()
}

// Path returns the database path.
func (db *EventDB) Path() string {
	return db.path
}

// Insert stores a batch of events in one transaction.
func (db *EventDB) Insert(events []tokenfarm.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for i := range events {
		ev := &events[i]
		var user []byte
		if ev.User != nil {
			user = ev.User.Bytes()
		}
		if _, err = tx.Exec("INSERT INTO event(name, blockNumber, blockTime, user, amount, aux, memo) VALUES (?, ?, ?, ?, ?, ?, ?);",
			ev.Name,
			ev.BlockNumber,
			ev.BlockTime,
			user,
			bigValue(ev.Amount),
			bigValue(ev.Aux),
			ev.Memo); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Sink adapts the db to the farm's event sink.
func (db *EventDB) Sink() tokenfarm.EventSink {
	return tokenfarm.EventSinkFunc(db.Insert)
}

// Filter returns the events matching the filter.
func (db *EventDB) Filter(filter *Filter) ([]tokenfarm.Event, error) {
	if filter == nil {
		return db.query("SELECT name, blockNumber, blockTime, user, amount, aux, memo FROM event ORDER BY seq ASC")
	}
	var args []interface{}
	stmt := "SELECT name, blockNumber, blockTime, user, amount, aux, memo FROM event WHERE 1"
	if filter.Range != nil {
		condition := "blockNumber"
		if filter.Range.Unit == Time {
			condition = "blockTime"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ? "
		}
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ? "
	}
	if filter.User != nil {
		args = append(args, filter.User.Bytes())
		stmt += " AND user = ? "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(stmt, args...)
}

func (db *EventDB) query(stmt string, args ...interface{}) ([]tokenfarm.Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []tokenfarm.Event
	for rows.Next() {
		var (
			name        string
			blockNumber uint32
			blockTime   uint64
			user        []byte
			amount      sql.NullString
			aux         sql.NullString
			memo        string
		)
		if err := rows.Scan(
			&name,
			&blockNumber,
			&blockTime,
			&user,
			&amount,
			&aux,
			&memo,
		); err != nil {
			return nil, err
		}
		event := tokenfarm.Event{
			Name:        name,
			BlockNumber: blockNumber,
			BlockTime:   blockTime,
			Amount:      parseBig(amount),
			Aux:         parseBig(aux),
			Memo:        memo,
		}
		if len(user) > 0 {
			addr := farm.BytesToAddress(user)
			event.User = &addr
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// bigValue renders a big.Int for storage; nil stays NULL.
func bigValue(v *big.Int) interface{} {
	if v == nil {
		return nil
	}
	return v.String()
}

func parseBig(v sql.NullString) *big.Int {
	if !v.Valid || v.String == "" {
		return nil
	}
	b, ok := new(big.Int).SetString(v.String, 10)
	if !ok {
		return nil
	}
	return b
}
