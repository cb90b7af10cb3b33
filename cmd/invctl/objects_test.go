package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/audit"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/db"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/inventory"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/invmang-in-go/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/snapshot"
)

func TestLoadRecordsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
- ref: 1
  serial: SN-1
  name: Rack
- serial: SN-2
  name: Server
  parent_ref: 1
- serial: SN-3
  name: Disk
  parent_id: 42
`), 0600))

	records, err := loadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.NotNil(t, records[0].Ref)
	assert.Equal(t, int64(1), *records[0].Ref)
	assert.Equal(t, int64(1), *records[1].ParentRef)
	assert.Nil(t, records[1].ParentID)
	assert.Equal(t, int64(42), *records[2].ParentID)
}

func TestLoadRecordsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.snap")
	_, err := snapshot.WriteFile(path, &snapshot.Snapshot{
		Objects:       []store.Object{{ID: 3, Serial: "A", Name: "Rack"}, {ID: 5, Serial: "B", Name: "Server"}},
		Relationships: []store.Relationship{{ParentID: 3, ChildID: 5}},
	})
	require.NoError(t, err)

	records, err := loadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(3), *records[1].ParentRef)
}

func TestLoadRecordsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("serial: [unclosed"), 0600))

	_, err := loadRecords(path)
	assert.Error(t, err)
}

func TestWriteObjectTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeObjectTable(&buf,
		[]store.Object{{ID: 1, Serial: "SN-1", Name: "Rack"}, {ID: 2, Serial: "SN-2", Name: "Server"}},
		[]store.Relationship{{ParentID: 1, ChildID: 2}},
	)
	require.NoError(t, err)

	assert.Equal(t, "ID  SERIAL  NAME    PARENTS\n"+
		"1   SN-1    Rack    -\n"+
		"2   SN-2    Server  1\n", buf.String())
}

func TestImportFileAgainAddsOnlyAppendedRecords(t *testing.T) {
	audit.SetEnabled(false)

	conn, driver, err := db.Connect(db.Config{URL: "sqlite://:memory:"})
	require.NoError(t, err)
	require.NoError(t, db.InitSchema(conn, driver))
	inv := gormstore.NewInventoryStore(conn)
	im := inventory.NewService(inv).NewImporter()

	path := filepath.Join(t.TempDir(), "objects.yml")
	content := `
- ref: 1
  serial: SN-1
  name: Rack
- serial: SN-2
  name: Server
  parent_ref: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	require.NoError(t, importFile(im, path))
	require.NoError(t, importFile(im, path))

	objects, err := inv.ListObjects()
	require.NoError(t, err)
	assert.Len(t, objects, 2)

	content += `- serial: SN-3
  name: Server
  parent_ref: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	require.NoError(t, importFile(im, path))

	objects, err = inv.ListObjects()
	require.NoError(t, err)
	assert.Len(t, objects, 3)
	rels, err := inv.ListRelationships()
	require.NoError(t, err)
	assert.Equal(t, []store.Relationship{
		{ParentID: 1, ChildID: 2},
		{ParentID: 1, ChildID: 3},
	}, rels)
}
