package app

import (
	"encoding/json"
	"testing"
)

func TestExportSnapshotShape(t *testing.T) {
	svc := newTestService(t, &memStore{})
	if err := svc.AddList("Work"); err != nil {
		t.Fatalf("AddList() error = %v", err)
	}
	if err := svc.AddItem(0, "a"); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if err := svc.AddList("Personal"); err != nil {
		t.Fatalf("AddList() error = %v", err)
	}

	snap := svc.ExportSnapshot()
	if snap.Version != SnapshotVersion {
		t.Fatalf("version = %q", snap.Version)
	}
	if snap.ExportedAt.IsZero() {
		t.Fatal("exported_at is zero")
	}
	if len(snap.Lists) != 2 {
		t.Fatalf("lists = %d, want 2", len(snap.Lists))
	}
	if snap.Lists[0].Name != "Work" || len(snap.Lists[0].Items) != 1 {
		t.Fatalf("unexpected first record %#v", snap.Lists[0])
	}
	if snap.Lists[1].Items == nil {
		t.Fatal("empty list must export an empty items array, not null")
	}

	encoded, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if decoded.Lists[0].Items[0] != "a" {
		t.Fatalf("decoded item = %q", decoded.Lists[0].Items[0])
	}
}

func TestImportSnapshotReplacesBoardAndResetsHistory(t *testing.T) {
	store := &memStore{}
	svc := newTestService(t, store)
	if err := svc.AddList("Old"); err != nil {
		t.Fatalf("AddList() error = %v", err)
	}

	err := svc.ImportSnapshot(Snapshot{
		Version: SnapshotVersion,
		Lists: []SnapshotList{
			{Name: "Imported", Items: []string{"x", "y"}},
		},
	})
	if err != nil {
		t.Fatalf("ImportSnapshot() error = %v", err)
	}

	board := svc.Board()
	if board.ListCount() != 1 {
		t.Fatalf("list count = %d, want 1", board.ListCount())
	}
	name, _ := board.ListName(0)
	if name != "Imported" {
		t.Fatalf("name = %q", name)
	}
	if svc.CanUndo() {
		t.Fatal("history must be reset after import")
	}
	if store.saves != 1 {
		t.Fatalf("import should persist, saves = %d", store.saves)
	}
}

func TestImportSnapshotRejectsUnknownVersion(t *testing.T) {
	svc := newTestService(t, &memStore{})
	err := svc.ImportSnapshot(Snapshot{Version: "tavla.snapshot.v999"})
	if err == nil {
		t.Fatal("expected version error")
	}
}

func TestImportSnapshotToleratesNilItems(t *testing.T) {
	svc := newTestService(t, &memStore{})
	err := svc.ImportSnapshot(Snapshot{Lists: []SnapshotList{{Name: "Bare"}}})
	if err != nil {
		t.Fatalf("ImportSnapshot() error = %v", err)
	}
	n, err := svc.Board().ItemCount(0)
	if err != nil || n != 0 {
		t.Fatalf("ItemCount() = %d, %v", n, err)
	}
}
