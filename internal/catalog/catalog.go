// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-memdb"
)

// Unit is a cataloged content unit
type Unit struct {
	ID          string
	TypeID      string
	Key         map[string]string
	Metadata    map[string]string
	StoragePath string
}

// Catalog stores content units, indexed by the digest of their
// natural key so saving a unit twice overwrites the previous record
type Catalog struct {
	schema *memdb.DBSchema
	db     *memdb.MemDB
}

// UnitWalkFn is a function prototype for Walk()
type UnitWalkFn func(unit *Unit) error

// New creates a new Catalog object
func New() (*Catalog, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"unit": {
				Name: "unit",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:         "id",
						Unique:       true,
						AllowMissing: false,
						Indexer:      &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}

	return &Catalog{schema, db}, nil
}

// SaveUnit inserts or replaces the unit with the given natural key
func (c *Catalog) SaveUnit(typeID string, key, metadata map[string]string, storagePath string) error {
	unit := &Unit{
		ID:          unitID(typeID, key),
		TypeID:      typeID,
		Key:         key,
		Metadata:    metadata,
		StoragePath: storagePath,
	}

	txn := c.db.Txn(true)
	if err := txn.Insert("unit", unit); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()
	return nil
}

// GetUnit returns the unit with the given natural key
func (c *Catalog) GetUnit(typeID string, key map[string]string) (*Unit, error) {
	txn := c.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First("unit", "id", unitID(typeID, key))
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return nil, memdb.ErrNotFound
	}

	return raw.(*Unit), nil
}

// ListUnits returns all cataloged units
func (c *Catalog) ListUnits() ([]*Unit, error) {
	units := []*Unit{}
	err := c.Walk(func(unit *Unit) error {
		units = append(units, unit)
		return nil
	})
	return units, err
}

// Walk walks through the cataloged units and executes walkFn for each of them
func (c *Catalog) Walk(walkFn UnitWalkFn) error {
	txn := c.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get("unit", "id")
	if err != nil {
		return err
	}

	for object := it.Next(); object != nil; object = it.Next() {
		unit := object.(*Unit)
		if err := walkFn(unit); err != nil {
			return err
		}
	}

	return nil
}

// unitID digests the natural key into the index key
func unitID(typeID string, key map[string]string) string {
	fields := make([]string, 0, len(key))
	for name, value := range key {
		fields = append(fields, name+"="+value)
	}
	sort.Strings(fields)

	digest := sha256.Sum256([]byte(typeID + ";" + strings.Join(fields, ";")))
	return fmt.Sprintf("%x", digest)
}
