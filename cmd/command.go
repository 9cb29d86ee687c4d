package cmd

import (
	"fmt"
	"strings"
)

// Handler is the function signature for command implementations. args holds
// one converted value per declared parameter.
type Handler func(args Args) error

// Command is a named, typed entry point exposed on the console.
type Command struct {
	Name        string
	Description string
	Params      []Parameter
	Handler     Handler

	// Internal tracking
	owner string
}

// Key returns the case-folded name the registry indexes the command by.
func (c *Command) Key() string {
	return fold(c.Name)
}

// Owner returns the ID of the owner that registered the command, or an
// empty string for an unregistered command.
func (c *Command) Owner() string {
	return c.owner
}

// ParamNames returns the declared parameter names in order.
func (c *Command) ParamNames() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return names
}

// RequiredParams returns the number of parameters without a default.
func (c *Command) RequiredParams() int {
	n := 0
	for _, p := range c.Params {
		if !p.IsOptional() {
			n++
		}
	}
	return n
}

// Usage renders the command as typed on the console, e.g. "calc <a> [b]".
func (c *Command) Usage() string {
	var sb strings.Builder
	sb.WriteString(c.Key())
	for _, p := range c.Params {
		if p.IsOptional() {
			sb.WriteString(fmt.Sprintf(" [%s]", p.Name))
		} else {
			sb.WriteString(fmt.Sprintf(" <%s>", p.Name))
		}
	}
	return sb.String()
}

// validate checks a declaration before it enters the registry.
func (c *Command) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCommand)
	}
	if strings.ContainsAny(c.Name, " \t\"") {
		return fmt.Errorf("%w: %q: name contains whitespace or quotes", ErrInvalidCommand, c.Name)
	}
	if c.Handler == nil {
		return fmt.Errorf("%w: %s: nil handler", ErrInvalidCommand, c.Name)
	}

	seenOptional := false
	for _, p := range c.Params {
		if _, ok := parsers[p.Kind]; !ok {
			return fmt.Errorf("%w: %s: parameter %s has unsupported kind %s", ErrInvalidCommand, c.Name, p.Name, p.Kind)
		}
		if p.Kind == KindEnum && len(p.Enum) == 0 {
			return fmt.Errorf("%w: %s: enum parameter %s has no members", ErrInvalidCommand, c.Name, p.Name)
		}
		if p.IsOptional() {
			if !p.validDefault() {
				return fmt.Errorf("%w: %s: default of %s is not a valid %s", ErrInvalidCommand, c.Name, p.Name, p.Kind)
			}
			seenOptional = true
		} else if seenOptional {
			return fmt.Errorf("%w: %s: required parameter %s follows an optional one", ErrInvalidCommand, c.Name, p.Name)
		}
	}
	return nil
}

// Owner is anything that contributes commands to a registry. ConsoleID
// identifies the owner; an ID can be registered once at a time.
type Owner interface {
	ConsoleID() string
	ConsoleCommands() []*Command
}

type staticOwner struct {
	id       string
	commands []*Command
}

func (o *staticOwner) ConsoleID() string           { return o.id }
func (o *staticOwner) ConsoleCommands() []*Command { return o.commands }

// NewOwner returns an Owner with a fixed command list.
func NewOwner(id string, commands ...*Command) Owner {
	return &staticOwner{id: id, commands: commands}
}
