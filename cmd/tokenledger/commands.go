package main

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/neo-go/pkg/core/storage"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/token-ledger/config"
	"github.com/nspcc-dev/token-ledger/ledger"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const callerFlag = "caller"

func commands() []*cli.Command {
	caller := &cli.StringFlag{
		Name:     callerFlag,
		Usage:    "Address performing the operation",
		Required: true,
	}

	return []*cli.Command{
		{
			Name:  "init",
			Usage: "Create a ledger assigning the whole supply to the caller",
			Flags: []cli.Flag{
				caller,
				&cli.StringFlag{Name: "name", Usage: "Token name"},
				&cli.StringFlag{Name: "symbol", Usage: "Token ticker symbol"},
				&cli.UintFlag{Name: "decimals", Usage: "Display precision"},
				&cli.StringFlag{Name: "supply", Usage: "Total supply in base units", Value: "0"},
			},
			Action: initLedger,
		},
		{
			Name:   "info",
			Usage:  "Print token parameters",
			Action: printInfo,
		},
		{
			Name:      "balance",
			Usage:     "Print balance of the account",
			ArgsUsage: "<address>",
			Action:    printBalance,
		},
		{
			Name:   "holders",
			Usage:  "Print all accounts with non-zero balance",
			Action: printHolders,
		},
		{
			Name:      "allowance",
			Usage:     "Print amount the spender may transfer on behalf of the owner",
			ArgsUsage: "<owner> <spender>",
			Action:    printAllowance,
		},
		{
			Name:      "transfer",
			Usage:     "Transfer tokens from the caller account",
			ArgsUsage: "<to> <amount>",
			Flags:     []cli.Flag{caller},
			Action:    transfer,
		},
		{
			Name:      "approve",
			Usage:     "Set amount the spender may transfer from the caller account",
			ArgsUsage: "<spender> <amount>",
			Flags:     []cli.Flag{caller},
			Action:    approve,
		},
		{
			Name:      "transfer-from",
			Usage:     "Transfer tokens on behalf of the owner using the caller's allowance",
			ArgsUsage: "<from> <to> <amount>",
			Flags:     []cli.Flag{caller},
			Action:    transferFrom,
		},
	}
}

var errWrongArgs = errors.New("wrong number of arguments")

// withStore opens the configured store and a logger for the command.
func withStore(c *cli.Context, f func(storage.Store, *zap.Logger) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	log, err := cfg.Logger.Build()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := storage.NewStore(cfg.Ledger.Storage)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Ledger.Storage.Type, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("can't close store", zap.Error(err))
		}
	}()

	return f(st, log)
}

func withLedger(c *cli.Context, f func(*ledger.Ledger) error) error {
	return withStore(c, func(st storage.Store, log *zap.Logger) error {
		l, err := ledger.Open(st, ledger.WithLogger(log))
		if err != nil {
			return err
		}
		return f(l)
	})
}

func parseArgs(c *cli.Context, n int) ([]string, error) {
	if c.Args().Len() != n {
		return nil, fmt.Errorf("%w: expected %d, got %d", errWrongArgs, n, c.Args().Len())
	}
	return c.Args().Slice(), nil
}

func parseAddress(s string) (util.Uint160, error) {
	u, err := address.StringToUint160(s)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return u, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

func parseCaller(c *cli.Context) (util.Uint160, error) {
	return parseAddress(c.String(callerFlag))
}

func initLedger(c *cli.Context) error {
	holder, err := parseCaller(c)
	if err != nil {
		return err
	}

	supply, err := parseAmount(c.String("supply"))
	if err != nil {
		return err
	}

	decimals := c.Uint("decimals")
	if decimals > 255 {
		return fmt.Errorf("decimals %d out of range", decimals)
	}

	tok := ledger.Token{
		Name:     c.String("name"),
		Symbol:   c.String("symbol"),
		Decimals: uint8(decimals),
	}

	return withStore(c, func(st storage.Store, log *zap.Logger) error {
		_, err := ledger.New(st, holder, tok, supply, ledger.WithLogger(log))
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "Created %s (%s), supply %s assigned to %s\n",
			tok.Name, tok.Symbol, supply.Dec(), address.Uint160ToString(holder))
		return nil
	})
}

func printInfo(c *cli.Context) error {
	return withLedger(c, func(l *ledger.Ledger) error {
		fmt.Fprintf(c.App.Writer, "Name: %s\nSymbol: %s\nDecimals: %d\nTotal supply: %s\n",
			l.Name(), l.Symbol(), l.Decimals(), l.TotalSupply().Dec())
		return nil
	})
}

func printBalance(c *cli.Context) error {
	args, err := parseArgs(c, 1)
	if err != nil {
		return err
	}

	acc, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		b, err := l.BalanceOf(acc)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.App.Writer, b.Dec())
		return nil
	})
}

func printHolders(c *cli.Context) error {
	return withLedger(c, func(l *ledger.Ledger) error {
		return l.ForEachBalance(func(acc util.Uint160, balance *uint256.Int) bool {
			fmt.Fprintf(c.App.Writer, "%s: %s\n", address.Uint160ToString(acc), balance.Dec())
			return true
		})
	})
}

func printAllowance(c *cli.Context) error {
	args, err := parseArgs(c, 2)
	if err != nil {
		return err
	}

	owner, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	spender, err := parseAddress(args[1])
	if err != nil {
		return err
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		a, err := l.Allowance(owner, spender)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.App.Writer, a.Dec())
		return nil
	})
}

func transfer(c *cli.Context) error {
	caller, err := parseCaller(c)
	if err != nil {
		return err
	}

	args, err := parseArgs(c, 2)
	if err != nil {
		return err
	}

	to, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		return l.Transfer(caller, to, amount)
	})
}

func approve(c *cli.Context) error {
	caller, err := parseCaller(c)
	if err != nil {
		return err
	}

	args, err := parseArgs(c, 2)
	if err != nil {
		return err
	}

	spender, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		return l.Approve(caller, spender, amount)
	})
}

func transferFrom(c *cli.Context) error {
	caller, err := parseCaller(c)
	if err != nil {
		return err
	}

	args, err := parseArgs(c, 3)
	if err != nil {
		return err
	}

	from, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	to, err := parseAddress(args[1])
	if err != nil {
		return err
	}

	amount, err := parseAmount(args[2])
	if err != nil {
		return err
	}

	return withLedger(c, func(l *ledger.Ledger) error {
		return l.TransferFrom(caller, from, to, amount)
	})
}
