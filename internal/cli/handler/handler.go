// Package handler runs cobra commands through a common path: flag checks,
// the command body, then output through cli.OutputFormatter.
package handler

import (
	"context"
	"log/slog"

	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Handler runs one command
type Handler interface {
	Execute(ctx context.Context, args *Arguments) (any, error)
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ctx context.Context, args *Arguments) (any, error)

// Execute calls f
func (f HandlerFunc) Execute(ctx context.Context, args *Arguments) (any, error) {
	return f(ctx, args)
}

// Arguments holds the positional arguments and the flags the user set
// explicitly. Flags left at their default are absent from Flags.
type Arguments struct {
	Flags map[string]any
	Args  []string
	cmd   *cobra.Command
}

// GetCmd returns the cobra command for direct flag access
func (a *Arguments) GetCmd() *cobra.Command {
	return a.cmd
}

// Command returns a cobra RunE that checks flags with parseFlags, runs the
// handler and prints its result. Errors are reported through the formatter
// and carry their exit code.
func Command(handler Handler, parseFlags func(*cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		quietMode, _ := cmd.Flags().GetBool("quiet")
		formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

		if err := parseFlags(cmd); err != nil {
			return cli.Fail(formatter, err)
		}

		arguments := &Arguments{
			Flags: explicitFlags(cmd),
			Args:  args,
			cmd:   cmd,
		}

		result, err := handler.Execute(cmd.Context(), arguments)
		if err != nil {
			slog.Debug("command failed", "command", cmd.CommandPath(), "error", err)
			return cli.Fail(formatter, err)
		}
		return formatter.Success(result)
	}
}

// SimpleCommand is Command without flag checks
func SimpleCommand(handler Handler) func(*cobra.Command, []string) error {
	return Command(handler, func(*cobra.Command) error { return nil })
}

// flagGetters reads a flag by its pflag type name
var flagGetters = map[string]func(*pflag.FlagSet, string) (any, error){
	"string":         func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetString(n) },
	"int":            func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetInt(n) },
	"int64":          func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetInt64(n) },
	"uint64":         func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetUint64(n) },
	"bool":           func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetBool(n) },
	"stringSlice":    func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetStringSlice(n) },
	"intSlice":       func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetIntSlice(n) },
	"stringToString": func(fs *pflag.FlagSet, n string) (any, error) { return fs.GetStringToString(n) },
}

// explicitFlags collects the flags that were set on the command line
func explicitFlags(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		get, ok := flagGetters[f.Value.Type()]
		if !ok {
			slog.Debug("unsupported flag type", "flag", f.Name, "type", f.Value.Type())
			return
		}
		if v, err := get(cmd.Flags(), f.Name); err == nil {
			flags[f.Name] = v
		}
	})
	return flags
}

// flagValue returns the explicit value of a flag, or def when it is unset
// or of another type
func flagValue[T any](a *Arguments, name string, def T) T {
	if v, ok := a.Flags[name].(T); ok {
		return v
	}
	return def
}

// Has reports whether a flag was set explicitly
func (a *Arguments) Has(name string) bool {
	_, ok := a.Flags[name]
	return ok
}

// GetString returns a string flag or defaultVal
func (a *Arguments) GetString(name string, defaultVal string) string {
	return flagValue(a, name, defaultVal)
}

// GetInt returns an int flag or defaultVal
func (a *Arguments) GetInt(name string, defaultVal int) int {
	return flagValue(a, name, defaultVal)
}

// GetInt64 returns an int64 flag or defaultVal
func (a *Arguments) GetInt64(name string, defaultVal int64) int64 {
	return flagValue(a, name, defaultVal)
}

// GetBool returns a bool flag, false when unset
func (a *Arguments) GetBool(name string) bool {
	return flagValue(a, name, false)
}

// GetStringSlice returns a string slice flag or defaultVal
func (a *Arguments) GetStringSlice(name string, defaultVal []string) []string {
	return flagValue(a, name, defaultVal)
}

// GetStringMap returns a key=value flag or defaultVal
func (a *Arguments) GetStringMap(name string, defaultVal map[string]string) map[string]string {
	return flagValue(a, name, defaultVal)
}
