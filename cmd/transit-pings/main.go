package main

import (
	"flag"
	"log"
	"time"

	transitpings "github.com/theoremus-urban-solutions/transit-pings"
	"github.com/theoremus-urban-solutions/transit-pings/config"
	"github.com/theoremus-urban-solutions/transit-pings/decision"
	"github.com/theoremus-urban-solutions/transit-pings/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-pings/nextrip"
	"github.com/theoremus-urban-solutions/transit-pings/notify"
	"github.com/theoremus-urban-solutions/transit-pings/tracking"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|loop|testmsg")
	configPath := flag.String("config", "", "path to config.yml (default: search config.yml, config.yaml)")
	statePath := flag.String("state", "", "tracking state file (overrides config)")
	source := flag.String("source", "nextrip", "departure feed source: nextrip|gtfsrt")
	interval := flag.Duration("interval", time.Minute, "poll interval for -mode=loop")
	nowOverride := flag.String("now", "", "RFC3339 instant to run against instead of wall clock")
	flag.Parse()

	transitpings.InitLogging()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if *statePath != "" {
		cfg.StateFile = *statePath
	}

	sender := notify.NewTelegram("", "")
	if err := sender.Validate(); err != nil {
		log.Fatalf("notification channel not configured: %v", err)
	}

	if *mode == "testmsg" {
		if err := sender.SendTestMessage(); err != nil {
			log.Fatalf("test message failed: %v", err)
		}
		log.Printf("test message sent")
		return
	}

	calc, err := decision.NewCalculator(
		cfg.UserPreferences.WalkingTimeMinutes,
		cfg.UserPreferences.AdvanceNoticeMinutes,
		cfg.UserPreferences.Timezone,
	)
	if err != nil {
		log.Fatalf("could not build calculator: %v", err)
	}

	var feed transitpings.FeedSource
	switch *source {
	case "nextrip":
		feed = nextrip.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	case "gtfsrt":
		feed = gtfsrt.NewSource(cfg.GTFSRT.TripUpdatesURL, time.Duration(cfg.GTFSRT.TimeoutMS)*time.Millisecond)
	default:
		log.Fatalf("unknown source %q", *source)
	}

	store := tracking.Load(cfg.StateFile)
	runner := transitpings.NewRunner(cfg, calc, store, feed, notify.NewMessenger(sender, calc))

	switch *mode {
	case "oneshot":
		runOnce(runner, *nowOverride)
	case "loop":
		runOnce(runner, *nowOverride)
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for range ticker.C {
			runOnce(runner, "")
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runOnce(runner *transitpings.Runner, nowOverride string) {
	now := time.Now().UTC()
	if nowOverride != "" {
		parsed, err := time.Parse(time.RFC3339, nowOverride)
		if err != nil {
			log.Fatalf("invalid -now value: %v", err)
		}
		now = parsed.UTC()
	}

	res := runner.Run(now)
	if res.Skipped {
		return
	}
	log.Printf("run complete: %d alert(s), %d delay update(s), %d route(s) failed",
		res.AlertsSent, res.DelaysSent, res.RoutesFailed)
}
