package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/quadview/internal/app"
	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/scene"
)

const configFile = "quadview.toml"

type App struct {
	workspace *app.Workspace
	panes     []*pane
	mesh      *rl.Mesh
	material  rl.Material
	input     inputState
	summary   scene.Summary
}

func main() {
	cfg := config.Default()
	if _, err := os.Stat(configFile); err == nil {
		if cfg, err = config.Load(configFile); err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	ws := app.NewWorkspace(cfg, app.WithRendererLoaded(true))
	defer ws.Close()

	if _, err := os.Stat(configFile); err == nil {
		if err := ws.WatchConfig(configFile); err != nil {
			fmt.Printf("Error watching config: %v\n", err)
		}
	}

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(screenWidth, screenHeight, "QuadView")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)

	a := &App{
		workspace: ws,
		material:  rl.LoadMaterialDefault(),
	}
	for _, c := range ws.Controllers() {
		a.panes = append(a.panes, &pane{controller: c})
	}

	if len(os.Args) > 1 {
		if err := a.loadFile(os.Args[1]); err != nil {
			rl.CloseWindow()
			fmt.Printf("Error loading mesh: %v\n", err)
			os.Exit(1)
		}
	}

	for !rl.WindowShouldClose() {
		a.layout()
		a.handleInput()

		ws.Tick()
		ws.FlyTick()

		for _, p := range a.panes {
			p.render(ws, a.mesh, a.material)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		for _, p := range a.panes {
			p.draw()
		}
		a.drawStatus()
		rl.EndDrawing()
	}

	for _, p := range a.panes {
		p.unload()
	}
	if a.mesh != nil {
		rl.UnloadMesh(a.mesh)
	}
	rl.CloseWindow()
}

// loadFile registers the mesh for snapping and uploads it for drawing
func (a *App) loadFile(path string) error {
	m, err := app.LoadMesh(path)
	if err != nil {
		return err
	}
	a.summary, err = a.workspace.LoadPrimitives(path)
	if err != nil {
		return err
	}
	mesh := meshToRaylib(m)
	a.mesh = &mesh
	return nil
}

// layout splits the window into a 2x2 grid: perspective and top on the
// first row, front and side on the second
func (a *App) layout() {
	w := float32(rl.GetScreenWidth()) / 2
	h := float32(rl.GetScreenHeight()-statusHeight) / 2
	for i, p := range a.panes {
		col := float32(i % 2)
		row := float32(i / 2)
		p.layout(col*w, row*h, w, h)
	}
}

const statusHeight = 28

func (a *App) drawStatus() {
	y := int32(rl.GetScreenHeight() - statusHeight + 6)
	sel := a.workspace.Selection()
	text := fmt.Sprintf("Selected: %d", sel.Len())
	if p, ok := sel.Primary(); ok {
		text += fmt.Sprintf("  Primary: (%.3f, %.3f, %.3f)", p.X, p.Y, p.Z)
	}
	if a.summary.Triangles > 0 {
		text += fmt.Sprintf("  |  %s: %d points, %d edges, %d faces",
			a.summary.Name, a.summary.Points, a.summary.Edges, a.summary.Faces)
	}
	text += fmt.Sprintf("  |  Grid: %.3g", a.workspace.Config().EffectiveGridSize())
	rl.DrawText(text, 8, y, 16, rl.LightGray)
}
