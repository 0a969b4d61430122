// Package catalog tracks the tables and indexes that exist in the engine:
// names, oids, schemas, and the concrete storage handles backing them.
package catalog

import (
	"sync"
	"sync/atomic"

	"github.com/relnova/petrodb/buffer"
	"github.com/relnova/petrodb/errs"
	"github.com/relnova/petrodb/index"
	"github.com/relnova/petrodb/storage/table"
	"github.com/relnova/petrodb/types"
)

// TableInfo is a catalog record for one table: its name, schema, assigned
// oid, and the TableHeap actually holding its rows.
type TableInfo struct {
	Name   string
	Oid    int32
	Schema *types.Schema
	Table  *table.TableHeap
}

// IndexInfo is a catalog record for one index: its name, assigned oid,
// the table it indexes, the key schema/attrs it was built with, and the
// concrete B+Tree backing it.
type IndexInfo struct {
	Name      string
	Oid       int32
	TableName string
	KeySchema *types.Schema
	KeyAttrs  []int
	Index     *index.BPlusTreeIndex
}

const (
	defaultLeafMaxSize     = 4
	defaultInternalMaxSize = 4
)

// Catalog is the engine's single source of truth for what tables and
// indexes exist. Oids are handed out from one monotonically increasing
// counter shared across tables and indexes, mirroring BusTub's catalog.
type Catalog struct {
	bpm *buffer.BufferpoolManager

	mu            sync.RWMutex
	tables        map[int32]*TableInfo
	tablesByName  map[string]*TableInfo
	indexes       map[int32]*IndexInfo
	indexesByName map[string]*IndexInfo
	tableIndexes  map[string][]*IndexInfo
	nextOid       atomic.Int32
}

func NewCatalog(bpm *buffer.BufferpoolManager) *Catalog {
	return &Catalog{
		bpm:           bpm,
		tables:        make(map[int32]*TableInfo),
		tablesByName:  make(map[string]*TableInfo),
		indexes:       make(map[int32]*IndexInfo),
		indexesByName: make(map[string]*IndexInfo),
		tableIndexes:  make(map[string][]*IndexInfo),
	}
}

// CreateTable registers name with schema and allocates its heap. A
// duplicate name is rejected, matching BusTub's catalog.
func (c *Catalog) CreateTable(name string, schema *types.Schema) (*TableInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tablesByName[name]; exists {
		return nil, errs.Duplicate("table %q already exists", name)
	}

	heap, err := table.NewTableHeap(c.bpm)
	if err != nil {
		return nil, err
	}

	info := &TableInfo{Name: name, Oid: c.nextOid.Add(1), Schema: schema, Table: heap}
	c.tables[info.Oid] = info
	c.tablesByName[name] = info
	return info, nil
}

func (c *Catalog) GetTable(oid int32) (*TableInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.tables[oid]
	if !ok {
		return nil, errs.NotFound("no table with oid %d", oid)
	}
	return info, nil
}

func (c *Catalog) GetTableByName(name string) (*TableInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.tablesByName[name]
	if !ok {
		return nil, errs.NotFound("no table named %q", name)
	}
	return info, nil
}

// CreateIndex builds a new B+Tree over tableName, keyed by keyAttrs
// (positions into the table's schema) and described by keySchema (the
// projected schema those attrs produce). The table must already exist;
// the index name must not collide with an existing one.
func (c *Catalog) CreateIndex(indexName, tableName string, keySchema *types.Schema, keyAttrs []int) (*IndexInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.indexesByName[indexName]; exists {
		return nil, errs.Duplicate("index %q already exists", indexName)
	}
	if _, ok := c.tablesByName[tableName]; !ok {
		return nil, errs.NotFound("no table named %q", tableName)
	}

	tree, err := index.NewBPlusTreeIndex(indexName, c.bpm, defaultLeafMaxSize, defaultInternalMaxSize, keyAttrs)
	if err != nil {
		return nil, err
	}

	info := &IndexInfo{
		Name:      indexName,
		Oid:       c.nextOid.Add(1),
		TableName: tableName,
		KeySchema: keySchema,
		KeyAttrs:  keyAttrs,
		Index:     tree,
	}
	c.indexes[info.Oid] = info
	c.indexesByName[indexName] = info
	c.tableIndexes[tableName] = append(c.tableIndexes[tableName], info)
	return info, nil
}

func (c *Catalog) GetTableIndexes(tableName string) []*IndexInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*IndexInfo{}, c.tableIndexes[tableName]...)
}

func (c *Catalog) GetIndex(oid int32) (*IndexInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.indexes[oid]
	if !ok {
		return nil, errs.NotFound("no index with oid %d", oid)
	}
	return info, nil
}
