// Command petrocli is a minimal REPL over a single petrodb engine. It
// exists to give the storage and execution layers a runnable entrypoint
// and to exercise the seq-scan-as-index-scan optimizer end to end; it is
// not itself part of the storage engine's specified core.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/relnova/petrodb/config"
	"github.com/relnova/petrodb/engine"
	"github.com/relnova/petrodb/execution"
	"github.com/relnova/petrodb/expression"
	"github.com/relnova/petrodb/optimizer"
	"github.com/relnova/petrodb/types"
)

func main() {
	dbPath := flag.String("db", "petro.db", "path to the database file")
	verbose := flag.Bool("v", false, "trace which plan node executed")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	cfg := config.DefaultConfig()
	cfg.DBFilePath = *dbPath

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		color.Red("failed to start engine: %v", err)
		os.Exit(1)
	}
	defer eng.Close()

	repl(eng)
}

func repl(eng *engine.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("petro> ")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == `\q` {
			return
		}
		if line == "" {
			fmt.Print("petro> ")
			continue
		}

		if err := runStatement(eng, line); err != nil {
			color.Red("error: %v", err)
		}
		fmt.Print("petro> ")
	}
}

func runStatement(eng *engine.Engine, line string) error {
	upper := strings.ToUpper(line)
	switch {
	case strings.HasPrefix(upper, "CREATE TABLE"):
		return runCreateTable(eng, line)
	case strings.HasPrefix(upper, "CREATE INDEX"):
		return runCreateIndex(eng, line)
	case strings.HasPrefix(upper, "INSERT INTO"):
		return runInsert(eng, line)
	case strings.HasPrefix(upper, "SELECT"):
		return runSelect(eng, line)
	default:
		return fmt.Errorf("unrecognized statement: %s", line)
	}
}

// parseColumnList splits "(a int, b varchar)" into [(a, INTEGER), (b, VARCHAR)].
func parseColumnList(spec string) ([]types.Column, error) {
	spec = strings.TrimSpace(spec)
	spec = strings.TrimPrefix(spec, "(")
	spec = strings.TrimSuffix(spec, ")")

	var cols []types.Column
	for _, part := range strings.Split(spec, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed column definition %q", part)
		}
		kind, err := parseKind(fields[1])
		if err != nil {
			return nil, err
		}
		cols = append(cols, types.Column{Name: fields[0], Kind: kind})
	}
	return cols, nil
}

func parseKind(raw string) (types.Kind, error) {
	switch strings.ToUpper(raw) {
	case "INT", "INTEGER":
		return types.Integer, nil
	case "VARCHAR", "TEXT", "STRING":
		return types.Varchar, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", raw)
	}
}

func runCreateTable(eng *engine.Engine, line string) error {
	rest := strings.TrimSpace(line[len("CREATE TABLE"):])
	open := strings.Index(rest, "(")
	if open < 0 {
		return fmt.Errorf("expected column list: %s", line)
	}
	name := strings.TrimSpace(rest[:open])
	cols, err := parseColumnList(rest[open:])
	if err != nil {
		return err
	}

	logrus.Debug("plan node: CreateTable")
	info, err := eng.Catalog.CreateTable(name, types.NewSchema(cols))
	if err != nil {
		return err
	}
	color.Green("table %q created (oid %d)", info.Name, info.Oid)
	return nil
}

// runCreateIndex parses "CREATE INDEX name ON table(col)".
func runCreateIndex(eng *engine.Engine, line string) error {
	rest := strings.TrimSpace(line[len("CREATE INDEX"):])
	onIdx := strings.Index(strings.ToUpper(rest), " ON ")
	if onIdx < 0 {
		return fmt.Errorf("expected ON clause: %s", line)
	}
	indexName := strings.TrimSpace(rest[:onIdx])
	rest = strings.TrimSpace(rest[onIdx+len(" ON "):])

	open := strings.Index(rest, "(")
	closeParen := strings.Index(rest, ")")
	if open < 0 || closeParen < 0 {
		return fmt.Errorf("expected table(col): %s", line)
	}
	tableName := strings.TrimSpace(rest[:open])
	colName := strings.TrimSpace(rest[open+1 : closeParen])

	tableInfo, err := eng.Catalog.GetTableByName(tableName)
	if err != nil {
		return err
	}
	colIdx := tableInfo.Schema.ColumnIndex(colName)
	if colIdx < 0 {
		return fmt.Errorf("table %q has no column %q", tableName, colName)
	}

	logrus.Debug("plan node: CreateIndex")
	keySchema := types.NewSchema([]types.Column{tableInfo.Schema.Columns[colIdx]})
	info, err := eng.Catalog.CreateIndex(indexName, tableName, keySchema, []int{colIdx})
	if err != nil {
		return err
	}
	color.Green("index %q created (oid %d)", info.Name, info.Oid)
	return nil
}

// runInsert parses "INSERT INTO table VALUES (1, 'alice'), (2, 'bob')".
func runInsert(eng *engine.Engine, line string) error {
	rest := strings.TrimSpace(line[len("INSERT INTO"):])
	valuesIdx := strings.Index(strings.ToUpper(rest), "VALUES")
	if valuesIdx < 0 {
		return fmt.Errorf("expected VALUES clause: %s", line)
	}
	tableName := strings.TrimSpace(rest[:valuesIdx])
	rowsSpec := strings.TrimSpace(rest[valuesIdx+len("VALUES"):])

	tableInfo, err := eng.Catalog.GetTableByName(tableName)
	if err != nil {
		return err
	}

	rows, err := parseValueRows(rowsSpec, tableInfo.Schema)
	if err != nil {
		return err
	}

	ctx := execution.NewExecutorContext(eng.Catalog, eng.Txn, eng.LockMgr)
	insertPlan := &execution.InsertPlanNode{
		TableOid: tableInfo.Oid,
		Child:    execution.NewValuesExecutor(&execution.ValuesPlanNode{Rows: rows}),
	}
	logrus.Debug("plan node: Insert")
	ins := execution.NewInsertExecutor(ctx, insertPlan)
	if err := ins.Init(); err != nil {
		return err
	}
	_, result, _, err := ins.Next()
	if err != nil {
		return err
	}
	color.Green("inserted %d row(s)", result.Values[0].AsInt())
	return nil
}

func parseValueRows(spec string, schema *types.Schema) ([]([]expression.Expression), error) {
	var rows []([]expression.Expression)

	for _, group := range splitTopLevelParens(spec) {
		fields := strings.Split(group, ",")
		if len(fields) != schema.ColumnCount() {
			return nil, fmt.Errorf("expected %d values, got %d", schema.ColumnCount(), len(fields))
		}

		row := make([]expression.Expression, len(fields))
		for i, raw := range fields {
			v, err := parseLiteral(strings.TrimSpace(raw), schema.Columns[i].Kind)
			if err != nil {
				return nil, err
			}
			row[i] = expression.NewConstantValue(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// splitTopLevelParens extracts the contents of each "(...)" group in spec.
func splitTopLevelParens(spec string) []string {
	var groups []string
	depth := 0
	start := -1
	for i, r := range spec {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				groups = append(groups, spec[start:i])
			}
		}
	}
	return groups
}

func parseLiteral(raw string, kind types.Kind) (types.Value, error) {
	if kind == types.Varchar {
		return types.NewVarchar(strings.Trim(raw, "'\"")), nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return types.Value{}, fmt.Errorf("expected an integer literal, got %q", raw)
	}
	return types.NewInteger(n), nil
}

// runSelect parses "SELECT * FROM table [WHERE col = val]".
func runSelect(eng *engine.Engine, line string) error {
	rest := strings.TrimSpace(line[len("SELECT"):])
	upper := strings.ToUpper(rest)
	fromIdx := strings.Index(upper, "FROM")
	if fromIdx < 0 {
		return fmt.Errorf("expected FROM clause: %s", line)
	}
	rest = strings.TrimSpace(rest[fromIdx+len("FROM"):])

	var tableName, whereClause string
	if whereIdx := strings.Index(strings.ToUpper(rest), "WHERE"); whereIdx >= 0 {
		tableName = strings.TrimSpace(rest[:whereIdx])
		whereClause = strings.TrimSpace(rest[whereIdx+len("WHERE"):])
	} else {
		tableName = rest
	}

	tableInfo, err := eng.Catalog.GetTableByName(tableName)
	if err != nil {
		return err
	}

	var filter expression.Expression
	if whereClause != "" {
		filter, err = parseWhere(whereClause, tableInfo.Schema)
		if err != nil {
			return err
		}
	}

	scanPlan := &execution.SeqScanPlanNode{TableOid: tableInfo.Oid, Filter: filter}
	rewritten := optimizer.OptimizeSeqScanAsIndexScan(eng.Catalog, scanPlan)

	ctx := execution.NewExecutorContext(eng.Catalog, eng.Txn, eng.LockMgr)
	var exec execution.Executor
	switch plan := rewritten.(type) {
	case *execution.IndexScanPlanNode:
		logrus.Debug("plan node: IndexScan")
		exec = execution.NewIndexScanExecutor(ctx, plan)
	default:
		logrus.Debug("plan node: SeqScan")
		exec = execution.NewSeqScanExecutor(ctx, scanPlan)
	}

	if err := exec.Init(); err != nil {
		return err
	}
	return printRows(exec)
}

func parseWhere(clause string, schema *types.Schema) (expression.Expression, error) {
	eqIdx := strings.Index(clause, "=")
	if eqIdx < 0 {
		return nil, fmt.Errorf("only col = value predicates are supported: %s", clause)
	}
	colName := strings.TrimSpace(clause[:eqIdx])
	colIdx := schema.ColumnIndex(colName)
	if colIdx < 0 {
		return nil, fmt.Errorf("no such column %q", colName)
	}

	v, err := parseLiteral(strings.TrimSpace(clause[eqIdx+1:]), schema.Columns[colIdx].Kind)
	if err != nil {
		return nil, err
	}
	return expression.NewComparison(expression.Equal, expression.NewColumnValue(0, colIdx), expression.NewConstantValue(v)), nil
}

func printRows(exec execution.Executor) error {
	count := 0
	for {
		ok, tuple, _, err := exec.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		cells := make([]string, len(tuple.Values))
		for i, v := range tuple.Values {
			cells[i] = v.String()
		}
		fmt.Println(strings.Join(cells, " | "))
		count++
	}
	color.Cyan("(%d rows)", count)
	return nil
}
