package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"

	"rollcall/internal/api"
	"rollcall/internal/constants"

	"github.com/rs/zerolog"
)

const usage = `usage: rollcall [-addr URL] <command> [args]

commands:
  status                        players and matches
  players                       list players
  add-player NAME [PHONE]       create a player
  matches                       list matches, newest first
  add-match DATE [PRICE]        create a match
  enroll MATCH PLAYER           add a player to a match
  roster MATCH                  players added to a match
  attendance MATCH              every player with paid status for a match
  pay MATCH PLAYER [true|false] set paid (default true)
`

var errUsage = errors.New("invalid arguments")

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	addr := flag.String("addr", defaultAddr(), "rollcall server base URL (env ROLLCALL_URL)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, constants.ClientTimeout)
	defer cancel()

	client := api.NewClient(*addr)
	if err := run(ctx, client, os.Stdout, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logger.Fatal().Err(err).Str("addr", *addr).Msg("command failed")
	}
}

func defaultAddr() string {
	if v := os.Getenv("ROLLCALL_URL"); v != "" {
		return v
	}
	return "http://localhost:" + constants.DefaultPort
}

func run(ctx context.Context, c *api.Client, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	cmd, args := args[0], args[1:]
	switch cmd {
	case "status":
		snap, err := c.Snapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "players\t%d\n", len(snap.Players))
		fmt.Fprintf(tw, "matches\t%d\n", len(snap.Matches))
		if len(snap.Matches) > 0 {
			fmt.Fprintf(tw, "latest\t%s (#%d)\n", snap.Matches[0].Date, snap.Matches[0].ID)
		}

	case "players":
		players, err := c.ListPlayers(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tNAME\tPHONE\tBALANCE")
		for _, p := range players {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", p.ID, p.Name, deref(p.Phone), p.Balance)
		}

	case "add-player":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		var phone *string
		if len(args) == 2 {
			phone = &args[1]
		}
		p, err := c.CreatePlayer(ctx, args[0], phone)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "created player\t%d\t%s\n", p.ID, p.Name)

	case "matches":
		matches, err := c.ListMatches(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tDATE\tPRICE")
		for _, m := range matches {
			price := "-"
			if m.Price != nil {
				price = strconv.FormatFloat(*m.Price, 'f', 2, 64)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", m.ID, m.Date, price)
		}

	case "add-match":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		var price *float64
		if len(args) == 2 {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", args[1], err)
			}
			price = &v
		}
		m, err := c.CreateMatch(ctx, args[0], price)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "created match\t%d\t%s\n", m.ID, m.Date)

	case "enroll":
		ids, err := parseIDs(args, 2)
		if err != nil {
			return err
		}
		if err := c.AddPlayerToMatch(ctx, ids[0], ids[1]); err != nil {
			return err
		}
		fmt.Fprintf(tw, "player %d added to match %d\n", ids[1], ids[0])

	case "roster":
		ids, err := parseIDs(args, 1)
		if err != nil {
			return err
		}
		entries, err := c.RosteredPlayers(ctx, ids[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tNAME\tPAID")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%t\n", e.ID, e.Name, e.Paid)
		}

	case "attendance":
		ids, err := parseIDs(args, 1)
		if err != nil {
			return err
		}
		entries, err := c.Attendance(ctx, ids[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "PLAYER\tNAME\tPHONE\tPAID")
		for _, e := range entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", e.PlayerID, e.Name, deref(e.Phone), e.Paid)
		}

	case "pay":
		paid := true
		if len(args) == 3 {
			v, err := strconv.ParseBool(args[2])
			if err != nil {
				return fmt.Errorf("invalid paid flag %q: %w", args[2], err)
			}
			paid = v
			args = args[:2]
		}
		ids, err := parseIDs(args, 2)
		if err != nil {
			return err
		}
		res, err := c.SetPaid(ctx, ids[0], ids[1], paid)
		if err != nil {
			return err
		}
		outcome := "updated"
		if res.Inserted {
			outcome = "inserted"
		}
		fmt.Fprintf(tw, "match %d player %d paid=%t (%s)\n", ids[0], ids[1], paid, outcome)

	default:
		return errUsage
	}

	return nil
}

func parseIDs(args []string, n int) ([]int64, error) {
	if len(args) != n {
		return nil, errUsage
	}
	ids := make([]int64, n)
	for i, raw := range args {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", raw, err)
		}
		ids[i] = id
	}
	return ids, nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
