package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/hospital-accounts/internal/client/client"
	"github.com/dmitrijs2005/hospital-accounts/internal/common"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/dmitrijs2005/hospital-accounts/internal/wire"
)

const (
	ExitOK       = 0
	ExitNegative = 1
	ExitError    = 2
)

const (
	defaultAddr    = "localhost:50051"
	defaultTimeout = 10 * time.Second
)

type accountClient interface {
	SignIn(ctx context.Context, email, password string) (models.SignInStatus, error)
	Register(ctx context.Context, email, userName, password, role string) (bool, error)
	ResetPassword(ctx context.Context, email, newPassword string) (bool, error)
	ListUsers(ctx context.Context) ([]wire.User, error)
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
	dial   func(addr string) (accountClient, error)
}

func NewApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
		dial: func(addr string) (accountClient, error) {
			return client.NewAccountClient(addr)
		},
	}
}

// command takes args from argv. Trailing prompt arguments may be left out,
// in which case they are asked for interactively.
type command struct {
	args   []string
	prompt []string
	run    func(ctx context.Context, c accountClient, args []string) (bool, error)
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"signin":   {args: []string{"EMAIL"}, run: a.signIn},
		"register": {args: []string{"EMAIL"}, prompt: []string{"Username", "Role"}, run: a.register},
		"reset":    {args: []string{"EMAIL"}, run: a.reset},
		"list":     {run: a.list},
		"ping":     {run: a.ping},
	}
}

// Run executes the command in args (without the program name) and returns
// the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("accounts", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	addr := fs.String("a", defaultAddr, "account server address host:port")
	timeout := fs.Duration("timeout", defaultTimeout, "request timeout")
	fs.Usage = a.usage

	if err := fs.Parse(args); err != nil {
		return ExitError
	}

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return ExitError
	}

	cmd, ok := a.commands()[rest[0]]
	n := len(rest) - 1
	if !ok || (n != len(cmd.args) && n != len(cmd.args)+len(cmd.prompt)) {
		a.usage()
		return ExitError
	}

	cmdArgs := append([]string(nil), rest[1:]...)
	if n == len(cmd.args) {
		for _, p := range cmd.prompt {
			v, err := GetSimpleText(a.in, p, a.out)
			if err != nil {
				fmt.Fprintf(a.errOut, "error reading %s: %v\n", strings.ToLower(p), err)
				return ExitError
			}
			cmdArgs = append(cmdArgs, v)
		}
	}

	c, err := a.dial(*addr)
	if err != nil {
		fmt.Fprintf(a.errOut, "error connecting to %s: %v\n", *addr, err)
		return ExitError
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	positive, err := cmd.run(ctx, c, cmdArgs)
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintf(a.errOut, "server %s is unavailable\n", *addr)
		return ExitError
	case err != nil:
		fmt.Fprintf(a.errOut, "error: %v\n", err)
		return ExitError
	case !positive:
		return ExitNegative
	}
	return ExitOK
}

func (a *App) usage() {
	fmt.Fprintln(a.errOut, "usage: accounts [-a addr] [-timeout d] COMMAND [ARGS]")
	fmt.Fprintln(a.errOut, "commands:")
	fmt.Fprintln(a.errOut, "  signin EMAIL")
	fmt.Fprintln(a.errOut, "  register EMAIL [USERNAME ROLE]")
	fmt.Fprintln(a.errOut, "  reset EMAIL")
	fmt.Fprintln(a.errOut, "  list")
	fmt.Fprintln(a.errOut, "  ping")
}

func (a *App) password(prompt string) ([]byte, error) {
	pw, err := GetPassword(a.in, prompt, a.out)
	if err != nil {
		return nil, fmt.Errorf("error reading password: %w", err)
	}
	return pw, nil
}

func (a *App) signIn(ctx context.Context, c accountClient, args []string) (bool, error) {
	pw, err := a.password("Password")
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(pw)

	st, err := c.SignIn(ctx, args[0], string(pw))
	if err != nil {
		return false, err
	}

	fmt.Fprintln(a.out, st)
	return st == models.SignInSuccess, nil
}

func (a *App) register(ctx context.Context, c accountClient, args []string) (bool, error) {
	pw, err := a.password("Password")
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(pw)

	ok, err := c.Register(ctx, args[0], args[1], string(pw), args[2])
	if err != nil {
		return false, err
	}

	if ok {
		fmt.Fprintf(a.out, "registered %s\n", args[0])
	} else {
		fmt.Fprintf(a.out, "%s is already registered\n", args[0])
	}
	return ok, nil
}

func (a *App) reset(ctx context.Context, c accountClient, args []string) (bool, error) {
	pw, err := a.password("New password")
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(pw)

	ok, err := c.ResetPassword(ctx, args[0], string(pw))
	if err != nil {
		return false, err
	}

	if ok {
		fmt.Fprintf(a.out, "password reset for %s\n", args[0])
	} else {
		fmt.Fprintf(a.out, "no account for %s\n", args[0])
	}
	return ok, nil
}

func (a *App) list(ctx context.Context, c accountClient, _ []string) (bool, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return false, err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tUSERNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Username, u.Role, u.CreatedAt.Format(time.RFC3339))
	}
	return true, tw.Flush()
}

func (a *App) ping(ctx context.Context, c accountClient, _ []string) (bool, error) {
	if err := c.Ping(ctx); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "OK")
	return true, nil
}
