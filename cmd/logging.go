package cmd

import (
	"github.com/df07/go-light-transport/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("light-transport")

// setupLogging applies --log-level first so that -v and -vv can raise it
func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
