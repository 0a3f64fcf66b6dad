// Package service implements the commands' behavior on top of the api client:
// prompting, validation, pagination and rendering.
package service

import (
	"context"
	"time"

	"github.com/RicardoYam/Meet/pkg/api"
	"github.com/RicardoYam/Meet/pkg/config"
	clierrors "github.com/RicardoYam/Meet/pkg/errors"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/prompter"
)

// now is replaced in tests
var now = time.Now

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func orDefault(p *prompter.Prompter) *prompter.Prompter {
	if p == nil {
		return prompter.Default()
	}
	return p
}

// CheckHealth reports whether the configured server answers
func CheckHealth(ctx context.Context, client *api.Client) error {
	start := now()
	resp, err := client.Health(ctx)
	if err != nil {
		return err
	}
	if !resp.Healthy {
		return clierrors.ServerError("server reported unhealthy")
	}
	output.PrintSuccess("✓ %s is up (%s)", config.GetString(config.KeyBaseURL), now().Sub(start).Round(time.Millisecond))
	return nil
}
