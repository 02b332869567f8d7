package main

import (
	"bytes"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "centrality invalid model", args: []string{"centrality", "--model", "not-a-uuid"}, wantErr: "--model"},
		{name: "centrality unknown target", args: []string{"centrality", "--model", "6f1c2a8e-3d44-4b2a-9b1e-2f0c6b7d8e90", "--target", "groups"}, wantErr: "--target"},
		{name: "export invalid model", args: []string{"export", "--model", "42"}, wantErr: "--model"},
		{name: "import requires name", args: []string{"import", "--locale", "en"}, wantErr: "name"},
		{name: "bad config file", args: []string{"migrate", "--config", "/nonexistent/config.yaml"}, wantErr: "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Execute() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRootCmd_ListsCommands(t *testing.T) {
	out, err := runRoot(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, name := range []string{"migrate", "import", "centrality", "export"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %q command", name)
		}
	}
}
