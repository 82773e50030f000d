package main

import (
	"os"

	"github.com/df07/go-light-transport/cmd"
	"github.com/df07/go-light-transport/pkg/log"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/urfave/cli"
)

var logger = log.New("light-transport")

func main() {
	if err := run(os.Args); err != nil {
		os.Exit(1)
	}
}

// run executes the command line and reports a failed command, since the cli
// package only prints errors that carry an exit code
func run(args []string) error {
	err := newApp().Run(args)
	if err != nil {
		logger.Error(err)
	}
	return err
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := renderer.DefaultRenderConfig()

	app := cli.NewApp()
	app.Name = "light-transport"
	app.Usage = "render scenes with physically based light transport"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "minimum log level: debug, info, notice, warning or error",
			EnvVar: "LIGHT_TRANSPORT_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a wavefront obj file. Settings are taken from the
optional TOML configuration file first; any flag given on the command line
overrides the file.

Interrupting the render with Ctrl-C stops the workers and writes the pixels
finished so far.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config",
					Usage: "TOML render configuration",
				},
				cli.StringFlag{
					Name:  "scene",
					Value: cmd.DefaultScene,
					Usage: "built-in scene name or path to a wavefront obj file",
				},
				cli.StringFlag{
					Name:  "integrator",
					Value: "path",
					Usage: "path, direct, simple, normal, ao or ro",
				},
				cli.BoolFlag{
					Name:  "explicit",
					Usage: "sample emitters explicitly at every path vertex",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Value: -1,
					Usage: "maximum number of bounces, -1 for russian roulette",
				},
				cli.IntFlag{
					Name:  "rr-depth",
					Value: 5,
					Usage: "bounces before russian roulette starts",
				},
				cli.Float64Flag{
					Name:  "rr-prob",
					Value: 0.95,
					Usage: "russian roulette survival probability",
				},
				cli.IntFlag{
					Name:  "emitter-samples",
					Value: 1,
					Usage: "emitter samples per direct lighting estimate",
				},
				cli.IntFlag{
					Name:  "bsdf-samples",
					Value: 1,
					Usage: "bsdf samples per direct lighting estimate",
				},
				cli.StringFlag{
					Name:  "emitter-selection",
					Value: "uniform",
					Usage: "emitter selection strategy: uniform or power",
				},
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Height,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: defaults.SamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: defaults.Seed,
					Usage: "base seed of the random streams",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers, 0 for one per cpu",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: defaults.TileSize,
					Usage: "edge length of a render tile",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: renderer.DefaultGamma,
					Usage: "display gamma of the written image",
				},
				cli.StringFlag{
					Name:  "out",
					Value: "frame.png",
					Usage: "image filename (.png, .bmp or .tiff) for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "inspect",
			Usage:     "load a scene and print its contents",
			ArgsUsage: "scene_name_or_file.obj",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "emitter-selection",
					Value: "uniform",
					Usage: "emitter selection strategy: uniform or power",
				},
			},
			Action: cmd.InspectScene,
		},
	}
	return app
}
