package help

import (
	"fmt"

	"devconsole/cmd"

	"github.com/mattn/go-runewidth"
)

const (
	// DefaultPageSize is the number of commands listed per help page.
	DefaultPageSize = 15
	// AllPageSize lists every command on a single page.
	AllPageSize = 999

	// Descriptions wider than this are truncated in the listing.
	maxDescWidth = 72
	// Names are padded to a common width, capped here.
	maxNameWidth = 24

	rule      = "========================================"
	listTitle = "=======[ HELP COMMAND LIST ]======="
	exceeded  = "Help page count exceeded!"
)

// Lister is the part of the registry the generator reads.
type Lister interface {
	Commands() []*cmd.Command
}

// Generator creates help content from the command registry
type Generator struct {
	lister   Lister
	pageSize int
}

// NewGenerator creates a new help generator. A non-positive page size
// falls back to DefaultPageSize.
func NewGenerator(lister Lister, pageSize int) *Generator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Generator{lister: lister, pageSize: pageSize}
}

// PageSize returns the number of commands listed per page.
func (g *Generator) PageSize() int {
	return g.pageSize
}

// PageCount returns how many pages the current command set spans. It is
// never less than one.
func (g *Generator) PageCount() int {
	return pageCount(len(g.lister.Commands()), g.pageSize)
}

// Page renders one page of the command list, counted from 1. When the page
// is out of range the listing stops after the header with an explicit
// "page exceeded" line and ok is false.
func (g *Generator) Page(page int) (lines []string, ok bool) {
	return render(g.lister.Commands(), page, g.pageSize)
}

// All renders every command on a single page.
func (g *Generator) All() []string {
	lines, _ := render(g.lister.Commands(), 1, AllPageSize)
	return lines
}

// Usage returns the how-to text shown by the help command.
func (g *Generator) Usage() []string {
	return []string{
		rule,
		"------- HOW TO USE DEV CONSOLE -------",
		"Format: 'function parameter1 parameter2'",
		"   E.g. calculate 1 1 1",
		"   E.g. testlog \"hello world\"",
		"   E.g. testvector3 3,3,3",
		"   E.g. clear",
		"   ",
		"   Type commands <page index> - to access different pages of the commands",
	}
}

func pageCount(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func render(commands []*cmd.Command, page, pageSize int) ([]string, bool) {
	pages := pageCount(len(commands), pageSize)

	lines := []string{
		rule,
		listTitle,
		fmt.Sprintf("List of commands (Pg %d / %d)", page, pages),
	}

	if page < 1 || page > pages {
		return append(lines, exceeded), false
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(commands))
	shown := commands[start:end]

	nameWidth := 0
	for _, c := range shown {
		nameWidth = max(nameWidth, runewidth.StringWidth(c.Key()))
	}
	nameWidth = min(nameWidth, maxNameWidth)

	for _, c := range shown {
		name := runewidth.FillRight(c.Key(), nameWidth)
		desc := runewidth.Truncate(c.Description, maxDescWidth, "...")
		lines = append(lines, fmt.Sprintf("    %s - %s", name, desc))
	}

	lines = append(lines,
		fmt.Sprintf("-------[ Pg %d / %d ]-------", page, pages),
		rule,
	)
	return lines, true
}
