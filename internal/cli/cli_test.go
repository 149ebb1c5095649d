package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"inventoryTracker/internal/config"
	"inventoryTracker/internal/form"
	"inventoryTracker/internal/inventory"
	"inventoryTracker/internal/testutil"
	"inventoryTracker/models"
	"inventoryTracker/repository"
)

type scriptedPrompter struct {
	answers []string
}

func (p *scriptedPrompter) next() (string, error) {
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Line(string) (string, error)   { return p.next() }
func (p *scriptedPrompter) Secret(string) (string, error) { return p.next() }

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	app := NewApp(&config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(dir, "inventory.db")},
		Auth: config.AuthConfig{
			Secret:         testutil.TestSecret,
			SessionFile:    filepath.Join(dir, "session"),
			SessionTTL:     time.Hour,
			PasswordScheme: "plain",
		},
	})
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := run(t, app, args...)
	if err != nil {
		t.Fatalf("%v: %v (%s)", args, err, Describe(err))
	}
	return out
}

func TestCLI_Flow(t *testing.T) {
	app := newTestApp(t)

	mustRun(t, app, "register", "alice", "-p", "pass1", "--confirm", "pass1")
	if _, err := run(t, app, "register", "alice", "-p", "pass2", "--confirm", "pass2"); !errors.Is(err, errUsernameTaken) {
		t.Fatalf("duplicate register = %v", err)
	}
	if _, err := run(t, app, "login", "alice", "-p", "wrong"); !errors.Is(err, inventory.ErrInvalidCredentials) {
		t.Fatalf("bad login = %v", err)
	}
	out := mustRun(t, app, "login", "alice", "-p", "pass1")
	if !strings.Contains(out, "alice") {
		t.Fatalf("login output = %q", out)
	}
	if out := mustRun(t, app, "whoami"); strings.TrimSpace(out) != "alice" {
		t.Fatalf("whoami = %q", out)
	}

	mustRun(t, app, "add", "Widget", "10", "2.5")
	out = mustRun(t, app, "list")
	if !strings.Contains(out, "Widget") || !strings.Contains(out, "2.50") {
		t.Fatalf("list output = %q", out)
	}

	mustRun(t, app, "update", "1", "Widget XL", "3", "4")
	var listed []models.Product
	if err := json.Unmarshal([]byte(mustRun(t, app, "list", "--json")), &listed); err != nil {
		t.Fatalf("decode list json: %v", err)
	}
	want := []models.Product{{Number: 1, Name: "Widget XL", Quantity: 3, Price: 4}}
	if !reflect.DeepEqual(listed, want) {
		t.Fatalf("json list = %+v, want %+v", listed, want)
	}

	out = mustRun(t, app, "summary")
	if !strings.Contains(out, "12.00") {
		t.Fatalf("summary output = %q", out)
	}

	mustRun(t, app, "delete", "1", "--yes")
	if _, err := run(t, app, "delete", "1", "--yes"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second delete = %v", err)
	}
	if out := mustRun(t, app, "list"); !strings.Contains(out, "No products yet.") {
		t.Fatalf("empty list output = %q", out)
	}

	mustRun(t, app, "logout")
	if _, err := run(t, app, "list"); !errors.Is(err, inventory.ErrNoSession) {
		t.Fatalf("list after logout = %v", err)
	}
}

func TestCLI_FormRulesAreStricterThanStorage(t *testing.T) {
	app := newTestApp(t)
	mustRun(t, app, "register", "alice", "-p", "pass1", "--confirm", "pass1")
	mustRun(t, app, "login", "alice", "-p", "pass1")

	for _, args := range [][]string{
		{"add", "Freebie", "0", "1"},
		{"add", "Freebie", "1", "0"},
		{"add", " ", "1", "1"},
		{"update", "x", "a", "1", "1"},
	} {
		if _, err := run(t, app, args...); !form.IsFieldError(err) {
			t.Fatalf("%v: err = %v, want field error", args, err)
		}
	}
	if _, err := run(t, app, "register", "al", "-p", "pass1", "--confirm", "pass1"); !form.IsFieldError(err) {
		t.Fatalf("short username accepted: %v", err)
	}
}

func TestCLI_PromptsForMissingInput(t *testing.T) {
	app := newTestApp(t)
	prompt := &scriptedPrompter{answers: []string{"pass1", "pass1"}}
	app.Prompt = prompt
	mustRun(t, app, "register", "carol")

	prompt.answers = []string{"pass1"}
	mustRun(t, app, "login", "carol")
	mustRun(t, app, "add", "Lamp", "1", "9.99")

	prompt.answers = []string{"n"}
	if out := mustRun(t, app, "delete", "1"); !strings.Contains(out, "Cancelled") {
		t.Fatalf("declined delete output = %q", out)
	}
	if out := mustRun(t, app, "list"); !strings.Contains(out, "Lamp") {
		t.Fatalf("declined delete removed product: %q", out)
	}

	prompt.answers = []string{"yes"}
	if out := mustRun(t, app, "delete", "1"); !strings.Contains(out, "deleted") {
		t.Fatalf("confirmed delete output = %q", out)
	}
}

func TestCLI_RejectsSessionForDeletedUser(t *testing.T) {
	app := newTestApp(t)
	mustRun(t, app, "register", "dave", "-p", "pass1", "--confirm", "pass1")
	mustRun(t, app, "login", "dave", "-p", "pass1")

	if _, err := app.db.Exec(`DELETE FROM users WHERE username = 'dave'`); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := run(t, app, "list"); !errors.Is(err, inventory.ErrNoSession) {
		t.Fatalf("list for deleted user = %v", err)
	}
}

func TestCLI_Migrate(t *testing.T) {
	app := newTestApp(t)
	out := mustRun(t, app, "migrate")
	if !strings.Contains(out, "0003") {
		t.Fatalf("migrate output = %q", out)
	}
	out = mustRun(t, app, "migrate", "rollback")
	if !strings.Contains(out, "Rolled back 0003") || !strings.Contains(out, "re-applied") {
		t.Fatalf("rollback output = %q", out)
	}
	// the product_no backfill has no down script
	if _, err := run(t, app, "migrate", "rollback"); err == nil || !strings.Contains(err.Error(), "0002") {
		t.Fatalf("second rollback = %v", err)
	}
}

func TestRunShell(t *testing.T) {
	app := newTestApp(t)
	lines := []string{
		"register bob -p pass1 --confirm pass1",
		"login bob -p pass1",
		`add "Big Box" 2 3.5`,
		"",
		"update 7 x 1 1",
		"list",
		"exit",
		"list",
	}
	next := func() (string, error) {
		if len(lines) == 0 {
			return "", io.EOF
		}
		l := lines[0]
		lines = lines[1:]
		return l, nil
	}
	var out, errOut bytes.Buffer
	if err := RunShell(context.Background(), app, next, &out, &errOut); err != nil {
		t.Fatalf("RunShell: %v", err)
	}
	if !strings.Contains(out.String(), "Big Box") || !strings.Contains(out.String(), "3.50") {
		t.Fatalf("shell output = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "no longer exists") {
		t.Fatalf("shell errors = %q", errOut.String())
	}
	if len(lines) != 1 {
		t.Fatalf("shell kept reading after exit")
	}
	if _, err := os.Stat(app.Config.Auth.SessionFile); !os.IsNotExist(err) {
		t.Fatalf("shell login wrote a session file: %v", err)
	}
	if app.interactive || app.session != nil {
		t.Fatalf("shell state leaked after exit")
	}
}

func TestSplitArgs(t *testing.T) {
	got, err := splitArgs(`add "Big Box" 2  '3.5'`)
	if err != nil {
		t.Fatalf("splitArgs: %v", err)
	}
	if want := []string{"add", "Big Box", "2", "3.5"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("splitArgs = %q, want %q", got, want)
	}
	if got, _ := splitArgs(`add "" 1 1`); len(got) != 4 || got[1] != "" {
		t.Fatalf("empty quoted arg lost: %q", got)
	}
	if _, err := splitArgs(`add "open`); err == nil {
		t.Fatalf("expected unterminated quote error")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&form.FieldError{Msg: "Product name cannot be empty."}, "Input Error"},
		{&repository.ValidationError{Field: "quantity", Msg: "cannot be negative"}, "Input Error"},
		{repository.ErrNotFound, "no longer exists"},
		{inventory.ErrInvalidCredentials, "Invalid username or password"},
		{inventory.ErrNoSession, "No user logged in"},
		{errUsernameTaken, "Username already exists"},
		{&repository.StorageError{Op: "add product", Err: errors.New("disk full")}, "Database Error"},
	}
	for _, tc := range cases {
		if got := Describe(tc.err); !strings.Contains(got, tc.want) {
			t.Fatalf("Describe(%v) = %q, want it to mention %q", tc.err, got, tc.want)
		}
	}
}
