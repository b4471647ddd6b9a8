package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/kastheco/webmon/ui/overlay"
)

// Prompt asks for the connection settings interactively. Numeric fields start
// at their defaults. The returned config has not been validated or saved.
func Prompt() (*Config, error) {
	cfg := DefaultConfig()
	refresh := strconv.Itoa(cfg.RefreshIntervalSecs)
	timeout := strconv.Itoa(cfg.RequestTimeoutSecs)
	policy := string(cfg.BannerPolicy)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("webmon setup").
				Description("No config file found. Enter the webmnt connection settings."),
			huh.NewInput().
				Title("Login").
				Value(&cfg.Login).
				Validate(notEmpty("login")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Password).
				Validate(notEmpty("password")),
			huh.NewInput().
				Title("Environment").
				Value(&cfg.Environment).
				Validate(notEmpty("environment")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Host").
				Placeholder("e.g. 10.0.0.5").
				Value(&cfg.Host).
				Validate(notEmpty("host")),
			huh.NewInput().
				Title("Port").
				Placeholder("e.g. 8080").
				Value(&cfg.Port).
				Validate(positiveInt("port")),
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Value(&refresh).
				Validate(positiveInt("refresh interval")),
			huh.NewInput().
				Title("Request timeout (seconds)").
				Value(&timeout).
				Validate(positiveInt("request timeout")),
			huh.NewSelect[string]().
				Title("When a second error arrives while one is shown").
				Options(
					huh.NewOption("show it after the current one", string(BannerQueue)),
					huh.NewOption("replace the current one", string(BannerReplace)),
					huh.NewOption("keep the current one", string(BannerKeep)),
				).
				Value(&policy),
		),
	).WithTheme(overlay.ThemeRosePine())

	if err := form.Run(); err != nil {
		return nil, err
	}
	applyAnswers(cfg, refresh, timeout, policy)
	return cfg, nil
}

// applyAnswers stores the form's text answers on cfg. Host and port are
// trimmed the same way their validators trim them; the password is kept
// as typed.
func applyAnswers(cfg *Config, refresh, timeout, policy string) {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.RefreshIntervalSecs, _ = strconv.Atoi(strings.TrimSpace(refresh))
	cfg.RequestTimeoutSecs, _ = strconv.Atoi(strings.TrimSpace(timeout))
	cfg.BannerPolicy = BannerPolicy(policy)
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func positiveInt(field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", field)
		}
		return nil
	}
}
