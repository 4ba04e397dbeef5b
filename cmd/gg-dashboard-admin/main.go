// Command gg-dashboard-admin is an operator CLI for the dashboard's Redis
// state: browser session records and the cached lesson list.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/guitarguru/gg-dashboard/config"
	"github.com/guitarguru/gg-dashboard/internal/bootstrap"
)

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

type command struct {
	name        string
	description string
	run         func(ctx *commandContext, args []string) error
}

// commands stays a slice so usage output keeps this order.
var commands = []command{
	{
		name:        "list-sessions",
		description: "Inspect browser session records in Redis",
		run:         runListSessions,
	},
	{
		name:        "clear-sessions",
		description: "Delete browser session records (one user, one session, or all)",
		run:         runClearSessions,
	},
	{
		name:        "clear-lesson-cache",
		description: "Drop the cached lesson list so the next render refetches",
		run:         runClearLessonCache,
	},
}

func main() {
	os.Exit(run()) //nolint:forbidigo // CLI exit status is the contract with shell scripts
}

func run() int {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		printUsage()
		return 2
	}
	cmd := lookupCommand(os.Args[1])
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		return 2
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		return 1
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if err := cmd.run(cmdCtx, os.Args[2:]); err != nil {
		logger.Error("command failed", "command", cmd.name, "error", err)
		return 1
	}
	return 0
}

func lookupCommand(name string) *command {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i]
		}
	}
	return nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, "Usage: gg-dashboard-admin <command> [flags]\n\nAvailable commands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-20s %s\n", c.name, c.description)
	}
}
