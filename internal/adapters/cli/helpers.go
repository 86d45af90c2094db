package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/hideout-go/internal/infrastructure/config"
)

// resolveProfileRef resolves the profile to act on
// Priority: --profile flag > user config default > hideout.profile in config
// Returns error only if no profile can be identified from any source
func resolveProfileRef(cfg *config.Config) (string, error) {
	if profileRef != "" {
		return profileRef, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err == nil {
		if userCfg, err := userConfigHandler.Load(); err == nil && userCfg.DefaultProfile != "" {
			return userCfg.DefaultProfile, nil
		}
	}

	if cfg != nil && cfg.Hideout.Profile != "" {
		return cfg.Hideout.Profile, nil
	}

	return "", fmt.Errorf("no profile specified: use --profile, or set a default with 'hideout profile use <name>'")
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// formatRoubles renders 1234567 as 1,234,567₽
func formatRoubles(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "₽"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// maskPassword masks the password in a database URL
func maskPassword(url string) string {
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at == -1 || scheme == -1 {
		return url
	}
	userInfo := url[scheme+3 : at]
	colon := strings.Index(userInfo, ":")
	if colon == -1 {
		return url
	}
	return url[:scheme+3] + userInfo[:colon] + ":****" + url[at:]
}
