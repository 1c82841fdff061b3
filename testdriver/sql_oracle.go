package testdriver

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/relsynth/relsynth/interp"
	"github.com/relsynth/relsynth/internal/naming"
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// SQLOracle translates a subset of relalg.Relation into SQL and
// evaluates it against an in-memory SQLite database, giving the
// interpreter and the generated structure a third, independently
// implemented thing to agree with. Only Ref, Join, Semijoin, Union,
// Difference, Select (And/Equals/LessThan only) and View translate;
// anything else — Map, Not, Like, Or predicates — returns
// relerr.KindNotImplemented, matching the rest of the system's stance
// that those operators have no agreed concrete semantics yet.
type SQLOracle struct {
	db *sql.DB
}

// OpenSQLOracle creates a fresh in-memory SQLite database, creates one
// table per base table in s.BaseTables, and loads their rows.
func OpenSQLOracle(ctx context.Context, s Scenario) (*SQLOracle, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, relerr.Wrap(relerr.KindInternal, "testdriver", "opening sqlite oracle", err)
	}
	o := &SQLOracle{db: db}
	for name, table := range s.BaseTables {
		arity := 0
		if len(table.Rows) > 0 {
			arity = len(table.Rows[0])
		}
		if err := o.createAndLoad(ctx, name, arity, table); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *SQLOracle) createAndLoad(ctx context.Context, name relalg.RelName, arity int, table *interp.Table) error {
	cols := make([]string, arity)
	for i := range cols {
		cols[i] = colName(i) + " BLOB"
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", sqlTableName(name), strings.Join(cols, ", "))
	if _, err := o.db.ExecContext(ctx, ddl); err != nil {
		return relerr.Wrap(relerr.KindInternal, "testdriver", "creating oracle table", err)
	}
	for _, row := range table.Rows {
		placeholders := make([]string, len(row))
		args := make([]any, len(row))
		for i, v := range row {
			placeholders[i] = "?"
			args[i] = v
		}
		ins := fmt.Sprintf("INSERT INTO %s VALUES (%s)", sqlTableName(name), strings.Join(placeholders, ", "))
		if _, err := o.db.ExecContext(ctx, ins, args...); err != nil {
			return relerr.Wrap(relerr.KindInternal, "testdriver", "loading oracle row", err)
		}
	}
	return nil
}

// Run translates r to SQL and executes it, returning the result as an
// interp.Table so RowsEqual can compare it against the other oracles.
func (o *SQLOracle) Run(ctx context.Context, r relalg.Relation) (*interp.Table, error) {
	query, args, arity, err := o.translate(r)
	if err != nil {
		return nil, err
	}
	rows, err := o.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, relerr.Wrap(relerr.KindInternal, "testdriver", "executing oracle query", err)
	}
	defer rows.Close()

	out := interp.NewTable()
	for rows.Next() {
		dest := make([]any, arity)
		ptrs := make([]any, arity)
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, relerr.Wrap(relerr.KindInternal, "testdriver", "scanning oracle row", err)
		}
		out.Insert(relalg.Row(dest))
	}
	return out, rows.Err()
}

// translate returns a SELECT statement, its bind args, and the arity
// of its result columns.
func (o *SQLOracle) translate(r relalg.Relation) (string, []any, int, error) {
	switch v := r.(type) {
	case *relalg.RelationRef:
		cols := selectList(v.Arity(), "t")
		return fmt.Sprintf("SELECT %s FROM %s t", cols, sqlTableName(v.Name)), nil, v.Arity(), nil

	case *relalg.RelationUnion:
		lq, la, arity, err := o.translate(v.Left)
		if err != nil {
			return "", nil, 0, err
		}
		rq, ra, _, err := o.translate(v.Right)
		if err != nil {
			return "", nil, 0, err
		}
		return fmt.Sprintf("%s UNION %s", lq, rq), append(la, ra...), arity, nil

	case *relalg.RelationDifference:
		lq, la, arity, err := o.translate(v.Left)
		if err != nil {
			return "", nil, 0, err
		}
		rq, ra, _, err := o.translate(v.Right)
		if err != nil {
			return "", nil, 0, err
		}
		return fmt.Sprintf("%s EXCEPT %s", lq, rq), append(la, ra...), arity, nil

	case *relalg.RelationJoin:
		return o.translateJoin(v.Left, v.Right, v.On, false)

	case *relalg.RelationSemijoin:
		return o.translateJoin(v.Left, v.Right, v.On, true)

	case *relalg.RelationView:
		iq, ia, _, err := o.translate(v.Input)
		if err != nil {
			return "", nil, 0, err
		}
		cols := permSelectList(v.Perm)
		return fmt.Sprintf("SELECT %s FROM (%s) v", cols, iq), ia, v.Perm.Arity(), nil

	case *relalg.RelationSelect:
		iq, ia, arity, err := o.translate(v.Input)
		if err != nil {
			return "", nil, 0, err
		}
		cond, pargs, err := translatePredicate(v.Pred)
		if err != nil {
			return "", nil, 0, err
		}
		return fmt.Sprintf("SELECT * FROM (%s) s WHERE %s", iq, cond), append(ia, pargs...), arity, nil

	default:
		return "", nil, 0, relerr.NotImplemented("testdriver", "SQL oracle has no translation for relation kind %v", r.Kind())
	}
}

func (o *SQLOracle) translateJoin(left, right relalg.Relation, on relalg.JoinOn, semi bool) (string, []any, int, error) {
	lq, la, larity, err := o.translate(left)
	if err != nil {
		return "", nil, 0, err
	}
	rq, ra, rarity, err := o.translate(right)
	if err != nil {
		return "", nil, 0, err
	}
	conds := make([]string, len(on))
	for i, p := range on {
		conds[i] = fmt.Sprintf("l.%s = r.%s", colName(int(p.Left)), colName(int(p.Right)))
	}
	where := "1=1"
	if len(conds) > 0 {
		where = strings.Join(conds, " AND ")
	}
	if semi {
		q := fmt.Sprintf("SELECT %s FROM (%s) l WHERE EXISTS (SELECT 1 FROM (%s) r WHERE %s)",
			selectList(larity, "l"), lq, rq, where)
		return q, append(la, ra...), larity, nil
	}
	excluded := make(map[int]bool, len(on))
	for _, p := range on {
		excluded[int(p.Right)] = true
	}
	rightCols, outArity := rightSelectList(rarity, "r", larity, excluded)
	q := fmt.Sprintf("SELECT %s, %s FROM (%s) l, (%s) r WHERE %s",
		selectList(larity, "l"), rightCols, lq, rq, where)
	return q, append(la, ra...), larity + outArity, nil
}

// rightSelectList renders the right side's columns for a Join, dropping
// the columns named as a join pair's Right side — relalg.RelationJoin's
// Arity() excludes them, matching interp's joinRow.
func rightSelectList(arity int, alias string, offset int, excluded map[int]bool) (string, int) {
	var cols []string
	out := 0
	for i := 0; i < arity; i++ {
		if excluded[i] {
			continue
		}
		cols = append(cols, fmt.Sprintf("%s.%s AS %s", alias, colName(i), colName(offset+out)))
		out++
	}
	return strings.Join(cols, ", "), out
}

func translatePredicate(p relalg.Predicate) (string, []any, error) {
	switch v := p.(type) {
	case *relalg.PredicateAnd:
		conds := make([]string, 0, len(v.Operands))
		var args []any
		for _, op := range v.Operands {
			c, a, err := translatePredicate(op)
			if err != nil {
				return "", nil, err
			}
			conds = append(conds, c)
			args = append(args, a...)
		}
		return "(" + strings.Join(conds, " AND ") + ")", args, nil
	case *relalg.PredicateEquals:
		return fmt.Sprintf("%s = ?", colName(int(v.Attr))), []any{int64(v.Int)}, nil
	case *relalg.PredicateLessThan:
		return fmt.Sprintf("%s < ?", colName(int(v.Attr))), []any{int64(v.Int)}, nil
	default:
		return "", nil, relerr.NotImplemented("testdriver", "SQL oracle has no translation for predicate kind %v", p.Kind())
	}
}

func selectList(arity int, alias string) string {
	cols := make([]string, arity)
	for i := range cols {
		cols[i] = fmt.Sprintf("%s.%s AS %s", alias, colName(i), colName(i))
	}
	return strings.Join(cols, ", ")
}

// permSelectList renders perm's source-indexed mapping (perm[j] names
// the destination column for source column j, or nil to drop it) as a
// SELECT list ordered by destination column.
func permSelectList(perm relalg.AttrPartialPermutation) string {
	type destCol struct {
		dest int
		src  int
	}
	var destCols []destCol
	for j, dest := range perm {
		if dest == nil {
			continue
		}
		destCols = append(destCols, destCol{dest: int(*dest), src: j})
	}
	sort.Slice(destCols, func(i, k int) bool { return destCols[i].dest < destCols[k].dest })
	cols := make([]string, len(destCols))
	for i, dc := range destCols {
		cols[i] = fmt.Sprintf("%s AS %s", colName(dc.src), colName(i))
	}
	return strings.Join(cols, ", ")
}

func colName(i int) string {
	return fmt.Sprintf("c%d", i)
}

func sqlTableName(name relalg.RelName) string {
	return naming.TableName(string(name))
}
