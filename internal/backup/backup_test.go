package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"dewy/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "dewy.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		sort_order INTEGER NOT NULL
	)`)
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}

	for i, name := range []string{"Gentle Cleanser", "Daily Sunscreen"} {
		if _, err := db.Exec("INSERT INTO products (id, name, sort_order) VALUES (?, ?, ?)", name, name, i); err != nil {
			t.Fatalf("failed to insert test data: %v", err)
		}
	}

	db.Close()
	return dbPath
}

func setupTestJSON(t *testing.T) string {
	t.Helper()
	jsonPath := filepath.Join(t.TempDir(), "dewy.json")
	if err := os.WriteFile(jsonPath, []byte(`{"version":1,"products":[]}`), 0600); err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return jsonPath
}

func TestCreateBackupSQLite(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Fatalf("backup file was not created: %s", backupPath)
	}

	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		t.Fatalf("failed to open backup database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("failed to query backup database: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows in backup, got %d", count)
	}
}

func TestCreateBackupJSON(t *testing.T) {
	jsonPath := setupTestJSON(t)

	mgr := NewManager(jsonPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("JSON store backup should keep the .json extension, got %s", backupPath)
	}

	orig, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	copied, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(orig) != string(copied) {
		t.Error("JSON backup content differs from the source store")
	}
}

func TestCreateBackupMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error backing up a store that does not exist")
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	numBackups := constants.MaxBackups + 5
	for i := 0; i < numBackups; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups are not sorted newest first at index %d", i)
		}
	}
}

func TestListBackupsEmpty(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "dewy.db"))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Unrelated files in the backup dir must not show up in listings
	junk := filepath.Join(mgr.GetBackupDir(), "notes.txt")
	if err := os.WriteFile(junk, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	wrongSuffix := filepath.Join(mgr.GetBackupDir(), constants.BackupFilePrefix+"20260101-0900.json")
	if err := os.WriteFile(wrongSuffix, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Mutate the live store after the backup
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM products"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("failed to query restored database: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows after restore, got %d", count)
	}
}

func TestRestoreBackupMissingFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error restoring a backup that does not exist")
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("this is not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.RestoreBackup(corrupt); err == nil {
		t.Error("expected error restoring a corrupt backup")
	}
}

func TestTrimCounterSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"20260901-1504", "20260901-1504"},
		{"20260901-150405", "20260901-150405"},
		{"20260901-150405-1", "20260901-150405"},
		{"20260901-150405-12", "20260901-150405"},
		{"20260901-1504-3", "20260901-1504"},
	}
	for _, tt := range tests {
		if got := trimCounterSuffix(tt.in); got != tt.want {
			t.Errorf("trimCounterSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
