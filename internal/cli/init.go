package cli

import "fmt"

type InitCmd struct {
	Name string `help:"Display name to greet you with." default:""`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if c.Name != "" {
		if err := ctx.Tracker.Load(); err != nil {
			return err
		}
		ctx.Tracker.SetUserName(c.Name)
	}
	fmt.Printf("Initialized habitmind storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
