package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"

	"github.com/flowstate-health/flowstate-tui/api"
	"github.com/flowstate-health/flowstate-tui/app"
	"github.com/flowstate-health/flowstate-tui/config"
	"github.com/flowstate-health/flowstate-tui/health"
	"github.com/flowstate-health/flowstate-tui/internal"
)

func main() {
	profileFlag := flag.String("profile", "", "profile name from config")
	configFlag := flag.String("config", config.DefaultPath(), "path to config file")
	modelFlag := flag.String("model", "", "model name (overrides config)")
	scoreFlag := flag.Int("score", -1, "stress score 0-100 (overrides config)")
	flag.Parse()

	cfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	profileName := *profileFlag
	if profileName == "" {
		names := cfg.ProfileNames()
		if len(names) == 1 {
			profileName = names[0]
		} else {
			fmt.Fprintf(os.Stderr, "Multiple profiles configured. Use --profile flag.\nAvailable: %v\n", names)
			os.Exit(1)
		}
	}

	profile, ok := cfg.Profiles[profileName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: profile %q not found in config\n", profileName)
		os.Exit(1)
	}

	model := profile.Model
	if *modelFlag != "" {
		model = *modelFlag
	}
	score := profile.StressScore
	if *scoreFlag >= 0 {
		score = *scoreFlag
	}

	backend := api.NewClient(api.WithBaseURL(profile.BackendURL))
	provider := health.NewClient(health.ClientParams{
		BaseURL: profile.Health.BaseURL,
		DevID:   profile.Health.DevID,
		APIKey:  profile.Health.APIKey,
	})
	var transcriber internal.Transcriber
	if len(profile.Voice.Command) > 0 {
		transcriber = &internal.ExecTranscriber{Command: profile.Voice.Command}
	}

	svc := internal.NewServices(backend, provider, transcriber)

	root := app.New(app.Params{
		Services:    svc,
		Model:       model,
		StressScore: score,
		Activities:  profile.Activities,
		Source:      health.SourceType(profile.Health.Source),
	})
	defer root.Close()

	vxApp, err := vxfw.NewApp(vaxis.Options{})
	if err != nil {
		log.Fatal(err)
	}
	root.SetPostEvent(vxApp.PostEvent)

	if err := vxApp.Run(root); err != nil {
		log.Fatal(err)
	}
}
