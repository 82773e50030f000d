package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/loaders"
	"github.com/df07/go-light-transport/pkg/log"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/urfave/cli"
)

// DefaultScene is rendered when neither flags nor a configuration file name one
const DefaultScene = "sphere-light"

// renderJob is the merged result of the configuration file and the flags
type renderJob struct {
	sceneRef   string
	selection  lights.Selection
	camera     *loaders.FileConfig
	render     renderer.RenderConfig
	integrator integrator.Config
	out        string
	gamma      float64
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	job, err := newRenderJob(ctx)
	if err != nil {
		return err
	}

	sc, err := loaders.LoadScene(job.sceneRef, job.selection)
	if err != nil {
		return err
	}
	if job.camera != nil {
		if sc.Camera, err = job.camera.ApplyCamera(sc.Camera); err != nil {
			return err
		}
	}

	integ, err := integrator.New(job.integrator, sc)
	if err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(sc.Camera, integ, job.render, log.Printer(logger))
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fb, stats, renderErr := rt.Render(renderCtx)
	if renderErr != nil && !errors.Is(renderErr, renderer.ErrInterrupted) {
		return renderErr
	}
	if renderErr != nil {
		logger.Warningf("%v; saving the partial image", renderErr)
	}

	if err := fb.Save(job.out, job.gamma); err != nil {
		return err
	}
	logger.Noticef("wrote %s\n%s", job.out, stats.Table())
	return renderErr
}

// newRenderJob starts from the defaults, applies the configuration file and
// then every flag given on the command line
func newRenderJob(ctx *cli.Context) (*renderJob, error) {
	job := &renderJob{
		sceneRef:   DefaultScene,
		render:     renderer.DefaultRenderConfig(),
		integrator: integrator.DefaultConfig(),
		out:        ctx.String("out"),
		gamma:      renderer.DefaultGamma,
	}

	selectionName := ""
	if path := ctx.String("config"); path != "" {
		cfg, err := loaders.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		if ref := cfg.ScenePath(); ref != "" {
			job.sceneRef = ref
		} else if cfg.Input.Scene != "" {
			job.sceneRef = cfg.Input.Scene
		}
		if out := cfg.OutputPath(); out != "" && !ctx.IsSet("out") {
			job.out = out
		}
		job.camera = cfg
		job.render = cfg.ApplyRender(job.render)
		job.gamma = cfg.Gamma(job.gamma)
		if job.integrator, err = cfg.ApplyIntegrator(job.integrator); err != nil {
			return nil, err
		}
		selectionName = cfg.Integrator.EmitterSelection
	}

	if ctx.IsSet("scene") {
		job.sceneRef = ctx.String("scene")
	}
	if ctx.IsSet("emitter-selection") {
		selectionName = ctx.String("emitter-selection")
	}
	selection, err := lights.ParseSelection(selectionName)
	if err != nil {
		return nil, err
	}
	job.selection = selection

	if ctx.IsSet("integrator") {
		kind, err := integrator.ParseKind(ctx.String("integrator"))
		if err != nil {
			return nil, err
		}
		job.integrator.Kind = kind
	}
	if ctx.IsSet("explicit") {
		job.integrator.IsExplicit = ctx.Bool("explicit")
	}
	for name, target := range map[string]*int{
		"max-depth":       &job.integrator.MaxDepth,
		"rr-depth":        &job.integrator.RRDepth,
		"emitter-samples": &job.integrator.EmitterSamples,
		"bsdf-samples":    &job.integrator.BSDFSamples,
		"width":           &job.render.Width,
		"height":          &job.render.Height,
		"spp":             &job.render.SamplesPerPixel,
		"workers":         &job.render.NumWorkers,
		"tile-size":       &job.render.TileSize,
	} {
		if ctx.IsSet(name) {
			*target = ctx.Int(name)
		}
	}
	if ctx.IsSet("rr-prob") {
		job.integrator.RRProb = ctx.Float64("rr-prob")
	}
	if ctx.IsSet("seed") {
		job.render.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("gamma") {
		job.gamma = ctx.Float64("gamma")
	}
	return job, nil
}
