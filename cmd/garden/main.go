package main

import (
	"github.com/bornholm/garden/internal/command"
	"github.com/bornholm/garden/internal/command/scan"
	"github.com/bornholm/garden/internal/command/seed"
	"github.com/bornholm/garden/internal/command/server"
	"github.com/bornholm/garden/internal/command/user"
)

func main() {
	command.Main(
		"garden",
		"Garden plants and care reminders",
		server.Command(),
		scan.Command(),
		seed.Command(),
		user.Command(),
	)
}
