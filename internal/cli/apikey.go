package cli

import "fmt"

type APIKeyCmd struct {
	Key string `arg:"" optional:"" help:"Coaching API key; omit to clear."`
}

func (c *APIKeyCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	ctx.Tracker.SetAPIKey(c.Key)
	if c.Key == "" {
		fmt.Println("Cleared coaching API key.")
	} else {
		fmt.Println("Stored coaching API key.")
	}
	return nil
}
