package commands

import (
	"errors"
	"fmt"
	"strings"

	"devconsole/cmd"
	"devconsole/cmd/fuzzy"
	"devconsole/cmd/help"

	"github.com/atotto/clipboard"
)

// ConsoleID identifies the built-in console owner.
const ConsoleID = "console"

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Registry is what the built-in commands read from the command registry.
type Registry interface {
	Commands() []*cmd.Command
	History() []string
}

// ConsoleHandlers contains the frontend hooks the built-in commands call.
type ConsoleHandlers struct {
	// OnClear empties the log view.
	OnClear func()
	// Snapshot returns the lines currently held by the log view.
	Snapshot func() []string
}

// maxFindResults caps the listing of the find command.
const maxFindResults = 10

// Console owns the commands every console has.
type Console struct {
	out      cmd.Logger
	registry Registry
	help     *help.Generator
	handlers ConsoleHandlers
}

// NewConsole creates the built-in owner. Output lines go to out.
func NewConsole(out cmd.Logger, registry Registry, pageSize int, handlers ConsoleHandlers) *Console {
	return &Console{
		out:      out,
		registry: registry,
		help:     help.NewGenerator(registry, pageSize),
		handlers: handlers,
	}
}

func (c *Console) ConsoleID() string { return ConsoleID }

func (c *Console) ConsoleCommands() []*cmd.Command {
	return []*cmd.Command{
		{
			Name:        "clear",
			Description: "Clears console",
			Handler:     c.clear,
		},
		{
			Name:        "help",
			Description: "Show how to use dev console",
			Handler:     c.usage,
		},
		{
			Name:        "commands",
			Description: "Show list of commands. Give page index to access different pages of the commands",
			Params:      []cmd.Parameter{cmd.Int("pageIndex").Optional(1)},
			Handler:     c.commands,
		},
		{
			Name:        "commandsall",
			Description: "Show list of ALL commands",
			Handler:     c.commandsAll,
		},
		{
			Name:        "find",
			Description: "Search commands by name",
			Params:      []cmd.Parameter{cmd.String("query")},
			Handler:     c.find,
		},
		{
			Name:        "history",
			Description: "Show recently executed commands",
			Handler:     c.history,
		},
		{
			Name:        "copylog",
			Description: "Copy the console log to the clipboard",
			Handler:     c.copyLog,
		},
	}
}

func (c *Console) clear(cmd.Args) error {
	if c.handlers.OnClear != nil {
		c.handlers.OnClear()
	}
	return nil
}

func (c *Console) usage(cmd.Args) error {
	c.print(c.help.Usage())
	lines, _ := c.help.Page(1)
	c.print(lines)
	return nil
}

func (c *Console) commands(args cmd.Args) error {
	lines, ok := c.help.Page(args.Int(0))
	if !ok {
		// The last line says the page was out of range.
		c.print(lines[:len(lines)-1])
		c.out.Warningf("%s", lines[len(lines)-1])
		return nil
	}
	c.print(lines)
	return nil
}

func (c *Console) commandsAll(cmd.Args) error {
	c.print(c.help.All())
	return nil
}

func (c *Console) find(args cmd.Args) error {
	commands := c.registry.Commands()
	names := make([]string, len(commands))
	byName := make(map[string]*cmd.Command, len(commands))
	for i, command := range commands {
		names[i] = command.Key()
		byName[command.Key()] = command
	}

	results := fuzzy.Rank(args.Text(0), names, fuzzy.DefaultMinScore, maxFindResults)
	if len(results) == 0 {
		c.out.Warningf("No commands match %q", args.Text(0))
		return nil
	}
	for _, r := range results {
		c.out.Infof("    %s - %s", byName[r.Text].Usage(), byName[r.Text].Description)
	}
	return nil
}

func (c *Console) history(cmd.Args) error {
	entries := c.registry.History()
	if len(entries) == 0 {
		c.out.Infof("No commands in history")
		return nil
	}
	for i, line := range entries {
		c.out.Infof("  %d. %s", i+1, line)
	}
	return nil
}

func (c *Console) copyLog(cmd.Args) error {
	if c.handlers.Snapshot == nil {
		return errors.New("no log buffer attached")
	}
	lines := c.handlers.Snapshot()
	if err := writeClipboard(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to copy log: %w", err)
	}
	c.out.Infof("Copied %d log lines to the clipboard", len(lines))
	return nil
}

func (c *Console) print(lines []string) {
	for _, line := range lines {
		c.out.Infof("%s", line)
	}
}
