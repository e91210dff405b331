package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/token-ledger/ledger"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type executor struct {
	t   *testing.T
	cfg string
}

func newTestExecutor(t *testing.T) *executor {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yml")
	data := "Ledger:\n" +
		"  Storage:\n" +
		"    Type: boltdb\n" +
		"    BoltDBOptions:\n" +
		"      FilePath: " + filepath.Join(dir, "ledger.bolt") + "\n" +
		"Logger:\n" +
		"  Level: error\n"
	require.NoError(t, os.WriteFile(cfg, []byte(data), 0o644))

	return &executor{t: t, cfg: cfg}
}

func (e *executor) run(args ...string) (string, error) {
	buf := new(bytes.Buffer)

	app := newApp()
	app.Writer = buf
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"tokenledger", "--config", e.cfg}, args...))
	return buf.String(), err
}

func (e *executor) runOK(args ...string) string {
	out, err := e.run(args...)
	require.NoError(e.t, err, args)
	return out
}

func TestCLI(t *testing.T) {
	e := newTestExecutor(t)

	var (
		a = address.Uint160ToString(util.Uint160{0xa})
		b = address.Uint160ToString(util.Uint160{0xb})
		c = address.Uint160ToString(util.Uint160{0xc})
	)

	_, err := e.run("info")
	require.ErrorIs(t, err, ledger.ErrNotInitialized)

	out := e.runOK("init", "--caller", a, "--name", "Test Token", "--symbol", "TST",
		"--decimals", "8", "--supply", "1000")
	require.Contains(t, out, "supply 1000 assigned to "+a)

	_, err = e.run("init", "--caller", b, "--supply", "5")
	require.ErrorIs(t, err, ledger.ErrAlreadyInitialized)

	require.Equal(t, "Name: Test Token\nSymbol: TST\nDecimals: 8\nTotal supply: 1000\n", e.runOK("info"))

	e.runOK("transfer", "--caller", a, b, "300")
	require.Equal(t, "700\n", e.runOK("balance", a))
	require.Equal(t, "300\n", e.runOK("balance", b))
	require.Equal(t, "0\n", e.runOK("balance", c))

	_, err = e.run("transfer", "--caller", b, a, "301")
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	e.runOK("approve", "--caller", a, c, "100")
	require.Equal(t, "100\n", e.runOK("allowance", a, c))
	require.Equal(t, "0\n", e.runOK("allowance", c, a))

	_, err = e.run("transfer-from", "--caller", c, a, b, "150")
	require.ErrorIs(t, err, ledger.ErrAllowanceExceeded)

	e.runOK("transfer-from", "--caller", c, a, b, "100")
	require.Equal(t, "0\n", e.runOK("allowance", a, c))
	require.Equal(t, "600\n", e.runOK("balance", a))
	require.Equal(t, "400\n", e.runOK("balance", b))

	out = e.runOK("holders")
	require.Contains(t, out, a+": 600\n")
	require.Contains(t, out, b+": 400\n")
	require.NotContains(t, out, c)
}

func TestCLIInvalidInput(t *testing.T) {
	e := newTestExecutor(t)
	a := address.Uint160ToString(util.Uint160{0xa})

	_, err := e.run("init", "--name", "Test Token")
	require.Error(t, err)

	_, err = e.run("init", "--caller", a, "--supply", "-1")
	require.Error(t, err)

	_, err = e.run("init", "--caller", a, "--decimals", "256")
	require.Error(t, err)

	e.runOK("init", "--caller", a, "--supply", "10")

	_, err = e.run("balance")
	require.ErrorIs(t, err, errWrongArgs)

	_, err = e.run("balance", "not an address")
	require.Error(t, err)

	_, err = e.run("transfer", "--caller", a, a, "ten")
	require.Error(t, err)

	_, err = e.run("transfer", a, "1")
	require.Error(t, err)

	require.Equal(t, "10\n", e.runOK("balance", a))
}
