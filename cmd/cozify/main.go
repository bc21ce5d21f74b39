package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	cozify "cozify-client"
	"cozify-client/internal/domain/service"
)

func main() {
	statePath := flag.String("state", defaultStatePath(), "path of the persisted session state file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	client, err := cozify.New(*statePath, cozify.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("could not open state")
	}

	ctx := context.Background()
	switch flag.Arg(0) {
	case "auth":
		ok, err := client.Authenticate(ctx, service.DefaultAuthOptions())
		if err != nil {
			log.Fatal().Err(err).Msg("authentication failed")
		}
		if !ok {
			log.Fatal().Msg("authentication rejected, state was reset")
		}
		fmt.Println("authenticated")
	case "devices":
		devs, err := client.Devices.Devices(ctx, cozify.Filter{})
		if err != nil {
			log.Fatal().Err(err).Msg("device listing failed")
		}
		ids := make([]string, 0, len(devs))
		for id := range devs {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			d := devs[id]
			fmt.Printf("%s\t%s\treachable=%v\n", d.ID, d.Name, d.State.Reachable())
		}
	case "toggle":
		id := flag.Arg(1)
		if id == "" {
			usage()
			os.Exit(2)
		}
		if err := client.Commands.Toggle(ctx, id); err != nil {
			log.Fatal().Err(err).Str("device_id", id).Msg("toggle failed")
		}
	case "ping":
		ok, err := client.Hubs.Ping(ctx, true)
		if err != nil {
			log.Fatal().Err(err).Msg("ping failed")
		}
		fmt.Printf("hub ok: %v\n", ok)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] auth|devices|toggle <device-id>|ping\n", os.Args[0])
	flag.PrintDefaults()
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cozify-state.yaml"
	}
	return filepath.Join(home, ".config", "cozify", "state.yaml")
}
