package util

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v63/github"
	"github.com/slimroms/slimwallpaper/config"
	"golang.org/x/mod/semver"
)

const (
	githubOwner = "slimroms"
	githubRepo  = "slimwallpaper"
)

// CheckForUpdatesResult holds the outcome of the update check.
type CheckForUpdatesResult struct {
	UpdateAvailable bool
	CurrentVersion  string // "" when the build has no valid version
	LatestVersion   string // "" when the release tag is not valid semver
	ReleaseURL      string
}

// CheckForUpdates polls GitHub for the latest stable release and compares it with
// config.AppVersion. A nil client uses http.DefaultClient.
func CheckForUpdates(ctx context.Context, httpClient *http.Client) (*CheckForUpdatesResult, error) {
	client := github.NewClient(httpClient)

	release, _, err := client.Repositories.GetLatestRelease(ctx, githubOwner, githubRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest GitHub release: %w", err)
	}

	currentVersion := canonicalVersion(config.AppVersion)
	latestVersion := canonicalVersion(release.GetTagName())

	return &CheckForUpdatesResult{
		UpdateAvailable: currentVersion != "" && latestVersion != "" && semver.Compare(latestVersion, currentVersion) > 0,
		CurrentVersion:  currentVersion,
		LatestVersion:   latestVersion,
		ReleaseURL:      release.GetHTMLURL(),
	}, nil
}

// canonicalVersion returns v with a "v" prefix, or "" when v is not valid semver.
func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}
