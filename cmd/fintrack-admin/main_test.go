package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/internal/auth"
)

const testSecret = "admin-test-secret-0123456789abcdef"

// run executes the admin command tree against a fresh database.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("AMQP_URL", "")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("EXPORT_SINK", "memory")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--db", dbPath))
	err := cmd.Execute()
	return out.String(), err
}

func TestToken(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "admin.db"), "token", "--user", "user-7")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	claims, err := auth.NewVerifier(testSecret, "").Verify(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}
	if claims.Subject != "user-7" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "admin.db")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{"migrate", []string{"migrate"}, "schema version", ""},
		{"categories", []string{"categories"}, "food", ""},
		{"seed categories", []string{"categories", "--seed"}, "KEY", ""},
		{"report", []string{"report", "--user", "u1", "--date", "2025-03-18"}, "monthly report for u1", ""},
		{"report without user", []string{"report"}, "", "--user is required"},
		{"report bad date", []string{"report", "--user", "u1", "--date", "soon"}, "", "--date"},
		{"delete without confirmation", []string{"delete-account", "--user", "u1"}, "", "--yes"},
		{"delete", []string{"delete-account", "--user", "u1", "--yes"}, "deleted account u1", ""},
		{"reconcile memory sink", []string{"reconcile", "--user", "u1"}, "appended 0, removed 0", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, db, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Fatalf("output %q does not contain %q", out, tt.want)
			}
		})
	}
}
