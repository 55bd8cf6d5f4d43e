package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin(ctx context.Context) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Terms(ctx context.Context) error

	List(ctx context.Context) error
	More(ctx context.Context) error
	Search(ctx context.Context, name string) error
	Favorites(ctx context.Context) error
	ToggleFavorite(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Background(ctx context.Context, args []string) error
	ResetBackground(ctx context.Context, args []string) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	Admin(ctx context.Context, args []string) error

	Cache(ctx context.Context) error
	ClearCache(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, terms, list, cache, clearcache, status, exit"
	helpLoggedIn  = "Available commands: (l)ist, more, search <name>, favs, fav <id>, show <id>, " +
		"background <id> <file>, resetbg <id>, profile, editprofile, deleteaccount, cache, clearcache, status, logout, exit"
	helpAdmin = "Admin commands: admin list [page] [name], admin add, admin edit <id>"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// It exits on EOF, when ctx is done, or on "exit" / "quit". Errors returned by
// handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("arcanedex (%s) > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
				if a.isAdmin(ctx) {
					printlnFn(helpAdmin)
				}
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "terms":
			cmdErr = a.Terms(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)
		case "more":
			cmdErr = a.More(ctx)
		case "search":
			cmdErr = a.Search(ctx, strings.Join(args, " "))
		case "favs":
			cmdErr = a.Favorites(ctx)
		case "fav":
			cmdErr = a.ToggleFavorite(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "background":
			cmdErr = a.Background(ctx, args)
		case "resetbg":
			cmdErr = a.ResetBackground(ctx, args)

		case "profile":
			cmdErr = a.Profile(ctx)
		case "editprofile":
			cmdErr = a.EditProfile(ctx)
		case "deleteaccount":
			cmdErr = a.DeleteAccount(ctx)

		case "admin":
			cmdErr = a.Admin(ctx, args)

		case "cache":
			cmdErr = a.Cache(ctx)
		case "clearcache":
			cmdErr = a.ClearCache(ctx)
		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(errorText(cmdErr))
		}
		if err != nil {
			return
		}
	}
}
