// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ianroy/makerflowPM/internal/cli"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/spf13/cobra"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// ParseKind extracts the entity kind from a flag
func (p *FlagParser) ParseKind(flagName string) (models.EntityKind, error) {
	name, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	return cli.ParseKind(name)
}

// ParseRecordID extracts a record ID from a flag or the first positional argument
func (p *FlagParser) ParseRecordID(flagName string, args []string) (int64, error) {
	id, err := p.cmd.Flags().GetInt64(flagName)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if id == 0 && len(args) > 0 {
		parsed, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			return 0, cli.Usagef("record ID must be a positive integer, got: %s", args[0])
		}
		id = parsed
	}
	if id <= 0 {
		return 0, cli.Usagef("%s must be greater than 0", flagName)
	}
	return id, nil
}

// ParseString extracts a required string flag
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", cli.Usagef("%s is required", flagName)
	}
	return value, nil
}

// ParseStringOptional extracts an optional string flag
func (p *FlagParser) ParseStringOptional(flagName string) (string, error) {
	return p.cmd.Flags().GetString(flagName)
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	return p.cmd.Flags().GetBool(flagName)
}

// ParseColor extracts and validates a color flag. An empty value clears.
func (p *FlagParser) ParseColor(flagName string) (string, error) {
	color, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if color == "" {
		return "", nil
	}
	if err := cli.ValidateColorHex(color); err != nil {
		return "", err
	}
	return color, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = p.cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = p.cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
