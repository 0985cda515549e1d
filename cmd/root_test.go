package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/domain"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	// A failing RunE skips PersistentPostRunE.
	_ = cleanupServices()
	return bufOut.String(), bufErr.String(), err
}

// TestRootCmd_Use tests the root command name
func TestRootCmd_Use(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	if rootCmd.Use != "habit" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "habit")
	}
}

// TestRootCmd_Help tests the --help flag
func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd(rootCmd, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	if !bytes.Contains([]byte(stdout), []byte("habit")) {
		t.Error("help output should contain 'habit'")
	}
}

// TestRootCmd_Flags tests that global flags are registered
func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"db", "json", "config", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag should be registered", name)
		}
	}
}

// TestRootCmd_Subcommands tests that every command is wired
func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{
		"add", "remove", "toggle", "list", "stats", "week", "challenge",
		"login", "logout", "whoami", "export", "import", "reset", "config", "mcp",
	}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("command %q not registered", name)
		}
	}
}

// TestDataDir tests the dataDir helper function
func TestDataDir(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/home/user/.habit", "/home/user/.habit"},
		{"/home/user/.habit/habits.db", "/home/user/.habit"},
		{"data", "data"},
		{"habits.db", "."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := dataDir(filepath.FromSlash(tt.path))
			if got != filepath.FromSlash(tt.expected) {
				t.Errorf("dataDir(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"0f8c2d1e-aaaa-bbbb", "0f8c2d1e"},
		{"1700000000", "17000000"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	today := domain.DayKey("2024-03-31")
	tests := []struct {
		period  string
		want    domain.DayKey
		wantErr bool
	}{
		{"all", "", false},
		{"", "", false},
		{"week", "2024-03-25", false},
		{"month", "2024-03-02", false},
		{"year", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got, err := periodStart(tt.period, today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("periodStart(%q) error = %v, wantErr %v", tt.period, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("periodStart(%q) = %q, want %q", tt.period, got, tt.want)
			}
		})
	}
}

func TestFindChallenge(t *testing.T) {
	challenges := []domain.Challenge{
		{ID: "aaaa-1111", Name: "No sugar"},
		{ID: "aaab-2222", Name: "Cold showers"},
	}
	tests := []struct {
		query   string
		wantID  string
		wantErr error
	}{
		{"aaaa-1111", "aaaa-1111", nil},
		{"aaab", "aaab-2222", nil},
		{"no SUGAR", "aaaa-1111", nil},
		{"zzz", "", domain.ErrChallengeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := findChallenge(challenges, tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("findChallenge(%q) error = %v, want %v", tt.query, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("findChallenge(%q) error = %v", tt.query, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("findChallenge(%q) = %q, want %q", tt.query, got.ID, tt.wantID)
			}
		})
	}

	if _, err := findChallenge(challenges, "aaa"); err == nil {
		t.Error("an ambiguous prefix should fail")
	}
}
