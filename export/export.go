// This file is part of spamdbg.
//
// spamdbg is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// spamdbg is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with spamdbg.  If not, see <https://www.gnu.org/licenses/>.

// Package export writes the state of a debugger session to an SQLite
// database. The execution history, the memory annotations and the program
// listing are written to their own tables. Rows are keyed by the session ID
// so that more than one session can be exported to the same database.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/spam1/spamdbg/curated"
	"github.com/spam1/spamdbg/history"
	"github.com/spam1/spamdbg/memory"
	"github.com/spam1/spamdbg/program"
	"github.com/spam1/spamdbg/snapshot"
)

// DefaultBatch is the number of snapshots inserted in each transaction.
const DefaultBatch = 500

// Open the database at path. The database is created if it does not exist.
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(10000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, curated.Errorf("export: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, curated.Errorf("export: %v", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		session TEXT PRIMARY KEY,
		cycles INTEGER NOT NULL,
		halted INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		session TEXT NOT NULL,
		cycle INTEGER NOT NULL,
		pc INTEGER NOT NULL,
		alu INTEGER NOT NULL,
		operand_a INTEGER NOT NULL,
		operand_b INTEGER NOT NULL,
		executed INTEGER NOT NULL,
		operation TEXT NOT NULL,
		flags_in TEXT NOT NULL,
		flags_out TEXT NOT NULL,
		registers TEXT NOT NULL,
		writes TEXT NOT NULL,
		PRIMARY KEY (session, cycle)
	)`,
	`CREATE TABLE IF NOT EXISTS memory_annotations (
		session TEXT NOT NULL,
		address INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (session, address)
	)`,
	`CREATE TABLE IF NOT EXISTS program (
		session TEXT NOT NULL,
		idx INTEGER NOT NULL,
		target TEXT NOT NULL,
		left_operand TEXT NOT NULL,
		right_operand TEXT NOT NULL,
		operation TEXT NOT NULL,
		set_flags TEXT NOT NULL,
		condition TEXT NOT NULL,
		invert TEXT NOT NULL,
		address_mode TEXT NOT NULL,
		address INTEGER NOT NULL,
		immediate INTEGER NOT NULL,
		PRIMARY KEY (session, idx)
	)`,
}

// Source is the part of the debugger session that is exported.
type Source interface {
	ID() uuid.UUID
	History() *history.History
	Memory() *memory.Store
	Program() *program.Listing
}

// Summary reports what was written by Write().
type Summary struct {
	Session     string
	Snapshots   int
	Annotations int
	Program     int
}

func (s Summary) String() string {
	return fmt.Sprintf("session %s: %d snapshots, %d annotations, %d instructions",
		s.Session, s.Snapshots, s.Annotations, s.Program)
}

// Write exports the session to the database. The snapshots present when
// Write is called are exported in transactions of batch rows. Rows from an
// earlier export of the same session are replaced.
func Write(ctx context.Context, db *sql.DB, src Source, batch int) (Summary, error) {
	if batch <= 0 {
		return Summary{}, curated.Errorf("export: %v", curated.Errorf(curated.InvalidArgument, fmt.Sprintf("batch %d", batch)))
	}

	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return Summary{}, curated.Errorf("export: %v", err)
		}
	}

	id := src.ID().String()
	tl := src.History().Timeline()
	sum := Summary{Session: id}

	err := transaction(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO sessions (session, cycles, halted) VALUES (?, ?, ?)`,
			id, tl.Length, tl.Halted)
		return err
	})
	if err != nil {
		return sum, curated.Errorf("export: %v", err)
	}

	for from := 0; from < tl.Length; from += batch {
		l, err := src.History().Range(from, min(from+batch, tl.Length))
		if err != nil {
			return sum, curated.Errorf("export: %v", err)
		}
		if err := transaction(ctx, db, func(tx *sql.Tx) error {
			return insertSnapshots(ctx, tx, id, l)
		}); err != nil {
			return sum, curated.Errorf("export: %v", err)
		}
		sum.Snapshots += len(l)
	}

	annotations := src.Memory().Annotations()
	err = transaction(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM memory_annotations WHERE session = ?`, id); err != nil {
			return err
		}
		for addr, txt := range annotations {
			if _, err := tx.ExecContext(ctx, `INSERT INTO memory_annotations (session, address, text) VALUES (?, ?, ?)`,
				id, addr, txt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return sum, curated.Errorf("export: %v", err)
	}
	sum.Annotations = len(annotations)

	listing := src.Program().All()
	err = transaction(ctx, db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO program
			(session, idx, target, left_operand, right_operand, operation, set_flags, condition, invert, address_mode, address, immediate)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, in := range listing {
			if _, err := stmt.ExecContext(ctx, id, i, in.Target, in.Left, in.Right, in.Operation,
				in.SetFlags, in.Condition, in.Invert, in.AddressMode, in.Address, in.Immediate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return sum, curated.Errorf("export: %v", err)
	}
	sum.Program = len(listing)

	return sum, nil
}

func insertSnapshots(ctx context.Context, tx *sql.Tx, id string, l []snapshot.Snapshot) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO snapshots
		(session, cycle, pc, alu, operand_a, operand_b, executed, operation, flags_in, flags_out, registers, writes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range l {
		regs, err := json.Marshal(s.Registers)
		if err != nil {
			return err
		}
		writes := s.Writes
		if writes == nil {
			writes = []snapshot.Write{}
		}
		w, err := json.Marshal(writes)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, id, s.Cycle, s.PC, s.ALU, s.OperandA, s.OperandB, s.Executed,
			string(s.Operation), flags(s.FlagsIn), flags(s.FlagsOut), string(regs), string(w)); err != nil {
			return err
		}
	}

	return nil
}

// flags are stored as a space separated list including the A flag.
func flags(c snapshot.Conditions) string {
	l := c.List()
	s := make([]string, len(l))
	for i, f := range l {
		s[i] = string(f)
	}
	return strings.Join(s, " ")
}

// transaction runs fn inside a transaction. The transaction is rolled back if
// fn returns an error.
func transaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
