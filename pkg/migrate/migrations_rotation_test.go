package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/medrota/clinicrota-backend/pkg/migrate"
)

func TestRotationMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_rotation_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no rotation migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE rotation_assignments",
		"CREATE UNIQUE INDEX idx_rotation_assignment_day ON rotation_assignments (rotation_staff_id, date)",
		"CREATE UNIQUE INDEX idx_schedule_entry_day ON schedule_entries (rotation_staff_id, date)",
		"CREATE UNIQUE INDEX idx_effective_branch_pair ON effective_branches (rotation_staff_id, branch_id)",
		"DROP TABLE rotation_assignments",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
