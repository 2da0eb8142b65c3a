package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	Prev(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Favs(ctx context.Context, args []string) error
	Offline(ctx context.Context, args []string) error
	Retry(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  (l)ist               show the current page
  show <n|id>          show one user in detail
  next | prev          move between pages
  page <n>             fetch page n
  search [text]        filter by name or email; no text clears
  sort <key>           name, email, age or country
  order [asc|desc]     set or toggle the sort order
  fav <n|id>           toggle a favorite
  favs                 list favorites
  offline [on|off]     set or toggle manual offline mode
  retry                fetch the current page again
  refresh              clear the cache and reload page 1
  clear                clear the cache
  status               show connection and paging state
  exit | quit          leave the program`

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit"/"quit" or ctx cancellation. Handler errors are printed and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("userdir %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			printlnFn(helpText)
		case "l", "list", "ls":
			err = a.List(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "n", "next":
			err = a.Next(ctx, args)
		case "p", "prev":
			err = a.Prev(ctx, args)
		case "page":
			err = a.Page(ctx, args)
		case "search", "/":
			err = a.Search(ctx, args)
		case "sort":
			err = a.Sort(ctx, args)
		case "order":
			err = a.Order(ctx, args)
		case "fav":
			err = a.Fav(ctx, args)
		case "favs":
			err = a.Favs(ctx, args)
		case "offline":
			err = a.Offline(ctx, args)
		case "retry":
			err = a.Retry(ctx, args)
		case "refresh":
			err = a.Refresh(ctx, args)
		case "clear":
			err = a.Clear(ctx, args)
		case "status":
			err = a.Status(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn("error:", err)
		}
	}
}
