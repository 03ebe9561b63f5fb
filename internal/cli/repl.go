package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/scewiki/internal/common"
)

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	ListObjects(ctx context.Context, args []string) error
	ShowObject(ctx context.Context, id string) error
	ListPosts(ctx context.Context, args []string) error
	ShowPost(ctx context.Context, id string) error
	AddObject(ctx context.Context) error
	AddPost(ctx context.Context) error
	ListUsers(ctx context.Context) error
	SetRole(ctx context.Context, userID, role string) error
}

// runREPL reads commands from in until EOF, "exit"/"quit" or ctx is done.
//
//	Everyone:
//	  help, register, login, objects [text] [class=<CLASS>], object <id>,
//	  posts [text] [category=<CATEGORY>], post <id>, exit | quit
//	Logged in:
//	  whoami, verify, resend, logout
//	Admins:
//	  addobject, addpost, users, role <userID> <ROLE>
//
// Handler errors are reported to the user and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "sce (%s)> ", statusFn())
		line, err := readLine(in)
		if err != nil {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printHelp(out, a)

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "verify":
			cmdErr = a.Verify(ctx)
		case "resend":
			cmdErr = a.Resend(ctx)

		case "objects":
			cmdErr = a.ListObjects(ctx, args)
		case "object":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: object <id>")
				continue
			}
			cmdErr = a.ShowObject(ctx, args[0])
		case "posts":
			cmdErr = a.ListPosts(ctx, args)
		case "post":
			if len(args) != 1 {
				fmt.Fprintln(out, "Usage: post <id>")
				continue
			}
			cmdErr = a.ShowPost(ctx, args[0])

		case "addobject":
			cmdErr = a.AddObject(ctx)
		case "addpost":
			cmdErr = a.AddPost(ctx)
		case "users":
			cmdErr = a.ListUsers(ctx)
		case "role":
			if len(args) != 2 {
				fmt.Fprintln(out, "Usage: role <userID> <ADMIN|RESEARCHER|READER>")
				continue
			}
			cmdErr = a.SetRole(ctx, args[0], args[1])

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", describe(cmdErr))
		}
	}
}

func printHelp(out io.Writer, a execIface) {
	fmt.Fprintln(out, "Available commands: objects [text] [class=<CLASS>], object <id>, posts [text] [category=<CATEGORY>], post <id>, help, exit")
	if !a.isLoggedIn() {
		fmt.Fprintln(out, "Account: register, login")
		return
	}
	fmt.Fprintln(out, "Account: whoami, verify, resend, logout")
	if a.isAdmin() {
		fmt.Fprintln(out, "Admin: addobject, addpost, users, role <userID> <ROLE>")
	}
}

// describe turns a service error into a message for the shell user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return "access denied"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "a user with this email already exists"
	case errors.Is(err, common.ErrorInvalid):
		return err.Error()
	case errors.Is(err, common.ErrorInternal):
		return "internal error, see the log"
	}
	return err.Error()
}
