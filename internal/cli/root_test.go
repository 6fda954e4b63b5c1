package cli

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/example/kanban/internal/config"
)

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// run executes the command tree once per call; the wired services are
// process-wide, so every call shares one database.
func run(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	root := RootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", configPath}, args...))

	if err := root.Execute(); err != nil {
		t.Fatalf("kanban %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func firstID(t *testing.T, output string) string {
	t.Helper()
	id := uuidPattern.FindString(output)
	if id == "" {
		t.Fatalf("no id in output: %s", output)
	}
	return id
}

func TestEndToEndBoardWorkflow(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(dir, "kanban.db")
	if err := config.SaveConfig(configPath, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	wsID := firstID(t, run(t, configPath, "workspace", "create", "Team"))
	boardID := firstID(t, run(t, configPath, "board", "create", "Sprint", "--workspace", wsID))

	run(t, configPath, "column", "add", "Todo", "--board", boardID)
	run(t, configPath, "column", "add", "Done", "--board", boardID)

	show := run(t, configPath, "board", "show", boardID)
	ids := uuidPattern.FindAllString(show, -1)
	// board id, workspace id, then one id per column
	if len(ids) != 4 {
		t.Fatalf("expected 4 ids in board output, got %d:\n%s", len(ids), show)
	}
	todoID, doneID := ids[2], ids[3]

	cardID := firstID(t, run(t, configPath, "card", "add", "Write tests", "--board", boardID, "--column", todoID))

	out := run(t, configPath, "card", "move", cardID, "--board", boardID, "--from", todoID, "--to", doneID)
	if !strings.Contains(out, "to Done") {
		t.Errorf("expected move confirmation, got: %s", out)
	}

	run(t, configPath, "card", "update", cardID, "--board", boardID, "--column", doneID, "--description", "table driven")
	show = run(t, configPath, "board", "show", boardID)
	if !strings.Contains(show, "table driven") {
		t.Errorf("expected updated description, got: %s", show)
	}
	if strings.Index(show, "Write tests") < strings.Index(show, "Done") {
		t.Errorf("card should render under Done:\n%s", show)
	}

	list := run(t, configPath, "board", "list", "--workspace", wsID)
	if !strings.Contains(list, "Sprint") {
		t.Errorf("expected board in list, got: %s", list)
	}

	run(t, configPath, "workspace", "delete", wsID)
	list = run(t, configPath, "workspace", "list")
	if !strings.Contains(list, "No workspaces found") {
		t.Errorf("expected no workspaces after delete, got: %s", list)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("KANBAN_AUTH_MODE", "hs256")
	t.Setenv("KANBAN_AUTH_SECRET", "s3cret")

	root := RootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "init"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}

	root = RootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", path, "config", "init"})
	if err := root.Execute(); err == nil {
		t.Fatal("second init without --force should fail")
	}

	out.Reset()
	root = RootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", path, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	shown := out.String()
	if !strings.Contains(shown, "mode: hs256") {
		t.Errorf("expected env override in output, got: %s", shown)
	}
	if strings.Contains(shown, "s3cret") {
		t.Errorf("secret must be redacted, got: %s", shown)
	}
}
