package cmd

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Logger receives the registry's diagnostics. *log.Hub satisfies it.
type Logger interface {
	Infof(format string, v ...interface{})
	Warningf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warningf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{})   {}

// Registry maps command names to commands contributed by owners.
//
// A Registry is not safe for concurrent use. It is driven from a single
// loop: the frontend's update function or the batch runner.
type Registry struct {
	commands map[string]*Command
	order    []string            // keys in registration order
	owners   map[string][]string // owner ID -> keys it contributed
	history  *History
	logger   Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets where registration warnings and command failures go.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithHistoryCapacity bounds the command history.
func WithHistoryCapacity(n int) Option {
	return func(r *Registry) {
		r.history = NewHistory(n)
	}
}

// NewRegistry creates an empty command registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		owners:   make(map[string][]string),
		history:  NewHistory(DefaultHistoryCapacity),
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds every command the owner declares. An owner that is already
// registered is left untouched. Commands whose folded name is taken, or
// whose declaration is invalid, are skipped with a log line; the rest of
// the owner's commands still register.
func (r *Registry) Register(owner Owner) {
	id := owner.ConsoleID()
	if _, exists := r.owners[id]; exists {
		r.logger.Warningf("[CONSOLE] %v: %s", ErrDuplicateOwner, id)
		return
	}

	names := make([]string, 0)
	for _, c := range owner.ConsoleCommands() {
		if c == nil {
			continue
		}
		if err := c.validate(); err != nil {
			r.logger.Errorf("[CONSOLE] %v", err)
			continue
		}

		key := c.Key()
		if _, exists := r.commands[key]; exists {
			r.logger.Warningf("[CONSOLE] %v: %s", ErrDuplicateCommand, key)
			continue
		}

		c.owner = id
		r.commands[key] = c
		r.order = append(r.order, key)
		names = append(names, key)
	}

	r.owners[id] = names
}

// Unregister removes the commands the owner contributed and forgets the
// owner, so it can register again later.
func (r *Registry) Unregister(owner Owner) {
	id := owner.ConsoleID()
	names, exists := r.owners[id]
	if !exists {
		r.logger.Warningf("[CONSOLE] %v: %s", ErrUnknownOwner, id)
		return
	}

	removed := make(map[string]bool, len(names))
	for _, key := range names {
		delete(r.commands, key)
		removed[key] = true
	}

	kept := r.order[:0]
	for _, key := range r.order {
		if !removed[key] {
			kept = append(kept, key)
		}
	}
	r.order = kept

	delete(r.owners, id)
}

// Execute runs a command line and reports any failure as a single log line.
// It never returns an error; use Run to inspect the failure.
func (r *Registry) Execute(line string) {
	if err := r.Run(line); err != nil {
		r.logger.Errorf("[CONSOLE] %v", err)
	}
}

// Run parses line as "name [arg ...]", converts the arguments to the
// command's declared parameter kinds and invokes the handler. On success
// the line is appended to the history. Failures leave the history alone.
func (r *Registry) Run(line string) error {
	line = strings.TrimSpace(line)
	name, rest := splitCommandLine(line)

	c, ok := r.commands[fold(name)]
	if !ok {
		if name == "" {
			return ErrCommandNotFound
		}
		return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	args, err := parseArgs(c, rest)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidParameters, c.Key(), err)
	}

	if err := invoke(c, args); err != nil {
		return err
	}

	r.history.Add(line)
	return nil
}

// splitCommandLine splits on the first run of whitespace.
func splitCommandLine(line string) (name, rest string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

// parseArgs converts rest into one value per declared parameter. Omitted
// optional parameters take their defaults.
func parseArgs(c *Command, rest string) (Args, error) {
	var tokens []string
	if rest != "" {
		if len(c.Params) == 0 {
			return nil, fmt.Errorf("%w: takes no arguments", ErrArityMismatch)
		}
		tokens = ExtractParameters(rest)
		if len(tokens) == 0 {
			return nil, fmt.Errorf("%w: arguments %q hold no values", ErrArityMismatch, rest)
		}
	}

	required := c.RequiredParams()
	if len(tokens) < required || len(tokens) > len(c.Params) {
		if required == len(c.Params) {
			return nil, fmt.Errorf("%w: want %d, got %d", ErrArityMismatch, required, len(tokens))
		}
		return nil, fmt.Errorf("%w: want %d to %d, got %d", ErrArityMismatch, required, len(c.Params), len(tokens))
	}

	args := make(Args, len(c.Params))
	for i, p := range c.Params {
		if i >= len(tokens) {
			args[i] = p.Default
			continue
		}
		v, err := ConvertParameter(p, tokens[i])
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// invoke calls the handler, turning errors and panics into ErrInvocation.
func invoke(c *Command, args Args) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrInvocation, c.Key(), p)
		}
	}()

	if herr := c.Handler(args); herr != nil {
		if errors.Is(herr, ErrInvocation) {
			return herr
		}
		return fmt.Errorf("%w: %s: %w", ErrInvocation, c.Key(), herr)
	}
	return nil
}

// NearestCommand returns the first command, in registration order, whose
// name starts with prefix (ignoring case), along with its parameter names.
// ok is false when nothing matches.
func (r *Registry) NearestCommand(prefix string) (name string, params []string, ok bool) {
	want := fold(prefix)
	for _, key := range r.order {
		if strings.HasPrefix(key, want) {
			return key, r.commands[key].ParamNames(), true
		}
	}
	return "", nil, false
}

// Lookup retrieves a command by name, ignoring case.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, exists := r.commands[fold(name)]
	return c, exists
}

// ListCommands returns all registered commands keyed by folded name.
func (r *Registry) ListCommands() map[string]*Command {
	// Return a copy to prevent external modification
	result := make(map[string]*Command, len(r.commands))
	for key, c := range r.commands {
		result[key] = c
	}
	return result
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.commands[key])
	}
	return result
}

// History returns the executed command lines, oldest first.
func (r *Registry) History() []string {
	return r.history.Entries()
}

// HistoryLen returns the number of lines in the history.
func (r *Registry) HistoryLen() int {
	return r.history.Len()
}

// HistoryAt returns a history line counted back from the newest.
func (r *Registry) HistoryAt(index int) (string, bool) {
	return r.history.At(index)
}

// String returns a debug string representation of the registry
func (r *Registry) String() string {
	var sb strings.Builder
	sb.WriteString("Registry:\n")

	sb.WriteString("  Owners:\n")
	for id, names := range r.owners {
		sb.WriteString(fmt.Sprintf("    %s: %v\n", id, names))
	}

	sb.WriteString("  Commands:\n")
	for _, key := range r.order {
		sb.WriteString(fmt.Sprintf("    %s: %s\n", key, r.commands[key].Description))
	}

	return sb.String()
}
