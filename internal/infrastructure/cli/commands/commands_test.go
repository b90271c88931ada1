package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen-go/internal/app/apptest"
	"github.com/doeshing/passgen-go/internal/application/history"
	"github.com/doeshing/passgen-go/internal/domain"
	configinfra "github.com/doeshing/passgen-go/internal/infrastructure/config"
	"github.com/doeshing/passgen-go/internal/infrastructure/kv"
)

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestGenerate_FlagsAndHistory(t *testing.T) {
	f := apptest.New(t, nil)

	out, _, err := execute(t, NewGenerateCommand(f.Container), "", "-l", "20", "--symbols=false", "-n", "3", "-q")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 3)
	for _, pw := range got {
		assert.Len(t, pw, 20)
		assert.Empty(t, strings.Trim(pw, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"))
	}

	entries := f.Container.HistoryStore.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, got[2], entries[0].Password)
}

func TestGenerate_PrintsStrength(t *testing.T) {
	f := apptest.New(t, nil)

	out, _, err := execute(t, NewGenerateCommand(f.Container), "")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 2)
	assert.Len(t, got[0], domain.DefaultPasswordLength)
	assert.Contains(t, got[1], "strength [")
}

func TestGenerate_UsesConfigDefaults(t *testing.T) {
	f := apptest.New(t, func(cfg *domain.Config) {
		cfg.Generator.Length = 9
		cfg.Generator.IncludeUppercase = false
		cfg.Generator.IncludeNumbers = false
		cfg.Generator.IncludeSymbols = false
	})

	out, _, err := execute(t, NewGenerateCommand(f.Container), "", "-q")
	require.NoError(t, err)

	pw := strings.TrimSpace(out)
	assert.Len(t, pw, 9)
	assert.Empty(t, strings.Trim(pw, domain.ClassLowercase.Chars()))
}

func TestGenerate_NoHistory(t *testing.T) {
	f := apptest.New(t, nil)

	_, _, err := execute(t, NewGenerateCommand(f.Container), "", "--no-history", "-q")
	require.NoError(t, err)
	assert.Zero(t, f.Container.HistoryStore.Len())
}

func TestGenerate_EmptyCharset(t *testing.T) {
	f := apptest.New(t, nil)

	_, _, err := execute(t, NewGenerateCommand(f.Container), "",
		"--uppercase=false", "--lowercase=false", "--numbers=false", "--symbols=false")
	assert.ErrorIs(t, err, domain.ErrEmptyCharset)
	assert.Zero(t, f.Container.HistoryStore.Len())
}

func TestGenerate_InvalidCount(t *testing.T) {
	f := apptest.New(t, nil)
	_, _, err := execute(t, NewGenerateCommand(f.Container), "", "-n", "0")
	assert.Error(t, err)
}

func TestGenerate_Copy(t *testing.T) {
	f := apptest.New(t, nil)

	out, errOut, err := execute(t, NewGenerateCommand(f.Container), "", "-c", "-q")
	require.NoError(t, err)
	assert.Equal(t, []string{strings.TrimSpace(out)}, f.Clipboard.Copied())
	assert.Contains(t, errOut, MsgCopied)
}

func TestGenerate_CopyFailure(t *testing.T) {
	f := apptest.New(t, nil)
	f.Clipboard.Fail = errors.New("no display")

	_, _, err := execute(t, NewGenerateCommand(f.Container), "", "-c", "-q")
	require.Error(t, err)
	assert.Equal(t, ErrCopyFailed, err.Error())
}

func TestScore(t *testing.T) {
	out, _, err := execute(t, NewScoreCommand(), "", "Tr0ub4dor&3")
	require.NoError(t, err)
	assert.Equal(t, "[#####] strongest (5/5)\n", out)

	out, _, err = execute(t, NewScoreCommand(), "abc\n")
	require.NoError(t, err)
	assert.Equal(t, "[#----] weak (1/5)\n", out)

	out, _, err = execute(t, NewScoreCommand(), "")
	require.NoError(t, err)
	assert.Equal(t, "[-----] weak (0/5)\n", out)
}

func seedHistory(t *testing.T, f apptest.Fixture, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, _, err := execute(t, NewGenerateCommand(f.Container), "", "-q")
		require.NoError(t, err)
	}
}

func TestHistoryList_MasksByDefault(t *testing.T) {
	f := apptest.New(t, nil)
	seedHistory(t, f, 2)
	entries := f.Container.HistoryStore.Entries()

	out, _, err := execute(t, NewHistoryCommand(f.Container), "", "list")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got[0], " 1. "))
	assert.NotContains(t, out, entries[0].Password)
	assert.Contains(t, got[0], "minute ago")

	out, _, err = execute(t, NewHistoryCommand(f.Container), "", "list", "--show")
	require.NoError(t, err)
	assert.Contains(t, lines(out)[1], entries[1].Password)
}

func TestHistoryList_Empty(t *testing.T) {
	f := apptest.New(t, nil)
	out, _, err := execute(t, NewHistoryCommand(f.Container), "", "list")
	require.NoError(t, err)
	assert.Equal(t, MsgNoHistoryRecorded+"\n", out)
}

func TestHistoryCopy(t *testing.T) {
	f := apptest.New(t, nil)
	seedHistory(t, f, 3)
	target := f.Container.HistoryStore.Entries()[1]

	_, errOut, err := execute(t, NewHistoryCommand(f.Container), "", "copy", "2")
	require.NoError(t, err)
	assert.Contains(t, errOut, MsgCopied)
	assert.Equal(t, []string{target.Password}, f.Clipboard.Copied())

	_, _, err = execute(t, NewHistoryCommand(f.Container), "", "copy", "9")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, _, err = execute(t, NewHistoryCommand(f.Container), "", "copy", "0")
	assert.Error(t, err)
}

func TestHistoryRemoveAndClear(t *testing.T) {
	f := apptest.New(t, nil)
	seedHistory(t, f, 3)
	before := f.Container.HistoryStore.Entries()

	_, _, err := execute(t, NewHistoryCommand(f.Container), "", "remove", "2")
	require.NoError(t, err)
	after := f.Container.HistoryStore.Entries()
	require.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[2].ID, after[1].ID)

	_, _, err = execute(t, NewHistoryCommand(f.Container), "", "rm", "5")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	out, _, err := execute(t, NewHistoryCommand(f.Container), "", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, MsgHistoryCleared)
	assert.Zero(t, f.Container.HistoryStore.Len())
}

func TestHistoryExport(t *testing.T) {
	f := apptest.New(t, nil)
	seedHistory(t, f, 2)
	path := filepath.Join(t.TempDir(), "history.jsonl")

	_, _, err := execute(t, NewHistoryCommand(f.Container), "", "export", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, lines(string(raw)), 2)
	assert.NotContains(t, string(raw), "copied")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())
}

func TestHistory_Disabled(t *testing.T) {
	f := apptest.New(t, func(cfg *domain.Config) { cfg.History.Enabled = false })

	_, _, err := execute(t, NewHistoryCommand(f.Container), "", "list")
	require.Error(t, err)
	assert.Equal(t, ErrHistoryDisabled, err.Error())
}

type readOnlyKV struct{ *kv.MemoryStore }

func (readOnlyKV) Set(context.Context, string, []byte) error { return errors.New("read-only") }

func TestGenerate_HistoryWriteFailureStillPrints(t *testing.T) {
	f := apptest.New(t, nil)
	f.Container.HistoryStore = history.NewStore(readOnlyKV{f.KV}, f.Scheduler, f.Container.Logger)

	out, errOut, err := execute(t, NewGenerateCommand(f.Container), "", "-n", "2", "-q")
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 2)
	assert.Len(t, got[0], domain.DefaultPasswordLength)
	assert.Contains(t, errOut, "warning: record history")
}

func TestHistory_BackendUnavailable(t *testing.T) {
	f := apptest.New(t, nil)
	f.Container.HistoryStore = nil
	f.Container.HistoryErr = errors.New("open sqlite history backend: locked")

	_, _, err := execute(t, NewHistoryCommand(f.Container), "", "list")
	assert.EqualError(t, err, "open sqlite history backend: locked")
}

func TestSession_Flow(t *testing.T) {
	f := apptest.New(t, nil)
	script := strings.Join([]string{
		"length 12",
		"toggle symbols",
		"g",
		"options",
		"h show",
		"hcopy 1",
		"remove 2",
		"length 99",
		"foo",
		"exit",
		"g",
	}, "\n")

	out, _, err := execute(t, NewSessionCommand(f.Container), script)
	require.NoError(t, err)

	assert.Contains(t, out, "symbols off")
	assert.Contains(t, out, "length=12 classes=lower,upper,numbers")
	assert.Contains(t, out, MsgCopied)
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "Unknown command: foo")
	assert.Contains(t, out, "Bye!")

	entries := f.Container.HistoryStore.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 12, utf8.RuneCountInString(entries[0].Password))
	assert.Equal(t, []string{entries[0].Password}, f.Clipboard.Copied())
}

func TestSession_EmptyCharsetNotice(t *testing.T) {
	f := apptest.New(t, nil)
	script := "toggle upper\ntoggle lower\ntoggle numbers\ntoggle symbols\ng\n"

	out, _, err := execute(t, NewSessionCommand(f.Container), script)
	require.NoError(t, err)
	assert.Contains(t, out, "error: "+domain.ErrEmptyCharset.Error())
	assert.Equal(t, 1, f.Container.HistoryStore.Len())
}

func TestSession_SaveOptions(t *testing.T) {
	f := apptest.New(t, nil)

	out, _, err := execute(t, NewSessionCommand(f.Container), "length 30\nsave\nquit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved current options as defaults.")
	assert.Contains(t, out, "Previous configuration saved to")

	cfg, err := f.Container.ConfigProvider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Generator.Length)
	assert.Equal(t, 30, f.Container.Config.Generator.Length)
}

func TestConfigCommands(t *testing.T) {
	f := apptest.New(t, nil)

	out, _, err := execute(t, NewConfigCommand(f.Container), "", "path")
	require.NoError(t, err)
	assert.Equal(t, f.Container.ConfigLoader.Path()+"\n", out)

	out, _, err = execute(t, NewConfigCommand(f.Container), "", "validate")
	require.NoError(t, err)
	assert.Equal(t, MsgConfigurationValid+"\n", out)

	out, _, err = execute(t, NewConfigCommand(f.Container), "", "diff")
	require.NoError(t, err)
	assert.Equal(t, MsgNoDifferencesFromDefault+"\n", out)

	out, _, err = execute(t, NewConfigCommand(f.Container), "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: sqlite")

	cfg := domain.DefaultConfig()
	cfg.Generator.Length = 33
	require.NoError(t, f.Container.ConfigLoader.Save(cfg))

	out, _, err = execute(t, NewConfigCommand(f.Container), "", "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "33")

	out, _, err = execute(t, NewConfigCommand(f.Container), "", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration reset at")

	out, _, err = execute(t, NewConfigCommand(f.Container), "", "diff")
	require.NoError(t, err)
	assert.Equal(t, MsgNoDifferencesFromDefault+"\n", out)
}

func TestConfigReset_BackupFailureLeavesFileAlone(t *testing.T) {
	f := apptest.New(t, nil)
	dir := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.Mkdir(dir, 0o700))
	f.Container.ConfigLoader = configinfra.NewFileLoader(dir)

	out, _, err := execute(t, NewConfigCommand(f.Container), "", "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration was not reset")
	assert.NotContains(t, out, "Configuration reset at")

	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestConfigReset_WithoutExistingFile(t *testing.T) {
	f := apptest.New(t, nil)
	path := filepath.Join(t.TempDir(), "fresh.yaml")
	f.Container.ConfigLoader = configinfra.NewFileLoader(path)

	out, _, err := execute(t, NewConfigCommand(f.Container), "", "reset")
	require.NoError(t, err)
	assert.NotContains(t, out, "Previous configuration saved")
	assert.Contains(t, out, "Configuration reset at "+path)
	assert.FileExists(t, path)
}

func TestConfigValidate_Invalid(t *testing.T) {
	f := apptest.New(t, nil)
	cfg := domain.DefaultConfig()
	cfg.History.Backend = "redis"
	require.NoError(t, f.Container.ConfigLoader.Save(cfg))

	_, _, err := execute(t, NewConfigCommand(f.Container), "", "validate")
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestDoctor(t *testing.T) {
	f := apptest.New(t, nil)

	out, _, err := execute(t, NewDoctorCommand(f.Container), "")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Random source")
	assert.Contains(t, out, "[OK] History - sqlite backend at memory")
	assert.Contains(t, out, "[OK] Clipboard")
	assert.Contains(t, out, "4 ok, 0 warning(s), 0 failed")
}

func TestDoctor_ReportsHistoryBackendError(t *testing.T) {
	f := apptest.New(t, nil)
	f.Container.DoctorService.StoreErr = errors.New("open sqlite history backend: locked")

	out, _, err := execute(t, NewDoctorCommand(f.Container), "")
	require.Error(t, err)
	assert.Contains(t, out, "[ERROR] History - open sqlite history backend: locked")
	assert.Contains(t, out, "3 ok, 0 warning(s), 1 failed")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, NewVersionCommand(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "passgen dev")
	assert.Contains(t, out, "lengths    8-64 (default 16)")
	assert.Contains(t, out, "last 10 passwords, copied flag clears after 2s")
	assert.Contains(t, out, "runtime    go")

	out, _, err = execute(t, NewVersionCommand(), "", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
