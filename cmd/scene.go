package cmd

import (
	"bytes"
	"errors"

	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/loaders"
	"github.com/df07/go-light-transport/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Name", "Description"})
	for _, info := range scene.ListBuiltinScenes() {
		table.Append([]string{info.ID, info.DisplayName, info.Description})
	}
	table.Render()

	logger.Noticef("built-in scenes:\n%s", buf.String())
	return nil
}

// Load a scene and display its shapes, materials and emitters.
func InspectScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument")
	}

	selection, err := lights.ParseSelection(ctx.String("emitter-selection"))
	if err != nil {
		return err
	}
	sc, err := loaders.LoadScene(ctx.Args().First(), selection)
	if err != nil {
		return err
	}

	logger.Noticef("scene %q viewed from %v towards %v:\n%s", sc.Name, sc.Camera.Eye, sc.Camera.At, sc.Summary())
	return nil
}
