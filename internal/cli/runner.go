package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shoplist/internal/client"
	"shoplist/internal/shared"
)

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, c *client.Client, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		PrintHelp(stderr)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(stdout)
		return 0

	case "ls":
		return doList(ctx, c, stdout, stderr)

	case "add":
		if len(a) < 2 {
			fail(stderr, "usage: shoplist add <quantity> <item...>")
			return 2
		}
		return doAdd(ctx, c, parseQuantity(a[0]), strings.Join(a[1:], " "), stdout, stderr)

	case "set":
		if len(a) < 3 {
			fail(stderr, "usage: shoplist set <id> <quantity> <item...>")
			return 2
		}
		return doSet(ctx, c, a[0], parseQuantity(a[1]), strings.Join(a[2:], " "), stdout, stderr)

	case "rm":
		if len(a) != 1 {
			fail(stderr, "usage: shoplist rm <id>")
			return 2
		}
		return doRemove(ctx, c, a[0], stdout, stderr)
	}

	fail(stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(stderr)
	PrintHelp(stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `shoplist - shopping list client

Usage:
  shoplist [-config path] <subcommand> [args]

Subcommands:
  ls                            List items
  add <quantity> <item...>      Add an item
  set <id> <quantity> <item...> Replace an item's name and quantity
  rm <id>                       Remove an item

Examples:
  shoplist add 2 milk
  shoplist add "1 kg" flour
  shoplist ls
  shoplist rm 3f1c...
`)
}

func doList(ctx context.Context, c *client.Client, stdout, stderr io.Writer) int {
	items, err := c.List(ctx)
	if err != nil {
		fail(stderr, "list: "+err.Error())
		return 1
	}

	header := fmt.Sprintf("%s  %s %d",
		titleStyle.Render("Shopping list"),
		accentStyle.Render("Total"), len(items),
	)
	lines := []string{header, ""}
	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render("(empty)"))
	}
	for _, it := range items {
		lines = append(lines, itemLine(it))
	}
	panel(stdout, lines)
	return 0
}

func doAdd(ctx context.Context, c *client.Client, qty any, name string, stdout, stderr io.Writer) int {
	it, err := c.Add(ctx, name, qty)
	if err != nil {
		fail(stderr, "add: "+err.Error())
		return 1
	}
	ok(stdout, "added "+itemLine(*it))
	return 0
}

func doSet(ctx context.Context, c *client.Client, id string, qty any, name string, stdout, stderr io.Writer) int {
	it, err := c.Update(ctx, id, name, qty)
	if err != nil {
		fail(stderr, "set: "+err.Error())
		return 1
	}
	ok(stdout, "updated "+itemLine(*it))
	return 0
}

func doRemove(ctx context.Context, c *client.Client, id string, stdout, stderr io.Writer) int {
	if err := c.Delete(ctx, id); err != nil {
		fail(stderr, "rm: "+err.Error())
		return 1
	}
	ok(stdout, "removed "+id)
	return 0
}

func itemLine(it shared.Item) string {
	return fmt.Sprintf("%v × %v  %s", it.Quantity, it.Name, mutedStyle.Render(it.ID))
}

// parseQuantity sends numeric arguments as JSON numbers and anything else
// as a string.
func parseQuantity(s string) any {
	if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return json.Number(s)
	}
	return s
}
