package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/quadview/internal/app"
	"github.com/philipparndt/quadview/pkg/analysis"
	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/geometry"
	"github.com/philipparndt/quadview/pkg/gizmo"
	"github.com/philipparndt/quadview/pkg/snapping"
	"github.com/philipparndt/quadview/pkg/viewer"
)

const (
	configFile   = "quadview.toml"
	tickInterval = time.Second / 60
)

var snapThresholds = []string{"0.25", "0.5", "1", "2", "4", "8"}

var gridSizes = []string{"0.125", "0.25", "0.5", "1", "2", "4", "8", "16", "32", "64", "128", "256", "512", "1024"}

type App struct {
	window    fyne.Window
	workspace *app.Workspace
	panes     map[*app.Controller]*viewer.Pane

	selectionLabel *widget.Label
	primitiveLabel *widget.Label
	operation      *widget.Select
}

func main() {
	a := fyneapp.New()
	w := a.NewWindow("QuadView")

	cfg, err := config.Load(configFile)
	if err != nil {
		slog.Warn("using default config", "error", err)
		cfg = config.Default()
	}

	appInstance := &App{
		window: w,
		panes:  make(map[*app.Controller]*viewer.Pane),
	}
	appInstance.workspace = app.NewWorkspace(cfg, app.WithRedraw(appInstance.redraw))
	defer appInstance.workspace.Close()

	if _, err := os.Stat(configFile); err == nil {
		if err := appInstance.workspace.WatchConfig(configFile); err != nil {
			slog.Warn("config hot reload unavailable", "error", err)
		}
	}

	appInstance.setupMainUI()

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	}

	go appInstance.tickLoop()

	w.Resize(fyne.NewSize(1400, 900))
	w.ShowAndRun()
}

func (a *App) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for range ticker.C {
		fyne.Do(func() {
			reloaded := a.workspace.Tick()
			if a.workspace.FlyTick() || reloaded {
				a.redrawAll()
			}
		})
	}
}

func (a *App) redraw(c *app.Controller) {
	if pane, ok := a.panes[c]; ok {
		pane.Redraw()
	}
}

func (a *App) redrawAll() {
	for _, pane := range a.panes {
		pane.Redraw()
	}
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	a.workspace.ClearPrimitives()
	summary, err := a.workspace.WatchPrimitives(filename)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.primitiveLabel.SetText(fmt.Sprintf(
		"Mesh: %s\nTriangles: %d\nPoints: %d\nEdges: %d\nFaces: %d",
		summary.Name, summary.Triangles, summary.Points, summary.Edges, summary.Faces,
	))
	a.redrawAll()
}

func (a *App) setupMainUI() {
	ws := a.workspace

	cells := make([]fyne.CanvasObject, 0, 4)
	for _, c := range ws.Controllers() {
		pane := viewer.NewPane(c)
		a.panes[c] = pane
		header := widget.NewLabel(c.Name())
		header.TextStyle = fyne.TextStyle{Bold: true}
		cells = append(cells, container.NewBorder(header, nil, nil, nil, pane))
	}
	grid := container.NewGridWithColumns(2, cells...)

	a.selectionLabel = widget.NewLabel("Selection: none")
	a.selectionLabel.Wrapping = fyne.TextWrapWord
	a.primitiveLabel = widget.NewLabel("No mesh loaded")

	ws.OnSelectionChanged(func(primary geometry.Vector3, selected bool) {
		if !selected {
			a.selectionLabel.SetText("Selection: none")
			return
		}
		text := fmt.Sprintf("Primary: %s\nSelected: %d", primary, ws.Selection().Len())
		if all := ws.Selection().All(); len(all) >= 2 {
			m := analysis.Measure(all[0], all[1])
			text += fmt.Sprintf("\nDistance X: %.4f\nDistance Y: %.4f\nDistance Z: %.4f\nTotal Distance: %.4f",
				m.Delta.X, m.Delta.Y, m.Delta.Z, m.Distance)
		}
		a.selectionLabel.SetText(text)
	})

	modeSelect := widget.NewSelect([]string{"none", "box", "handle"}, func(s string) {
		mode := gizmo.ModeHandle
		switch s {
		case "none":
			mode = gizmo.ModeNone
		case "box":
			mode = gizmo.ModeBox
		}
		for _, c := range ws.Controllers() {
			c.Gizmo().SetMode(mode)
		}
		a.redrawAll()
	})
	modeSelect.SetSelected("handle")

	a.operation = widget.NewSelect([]string{"translate", "rotate", "scale"}, func(s string) {
		op, err := gizmo.ParseOperation(s)
		if err != nil {
			return
		}
		for _, c := range ws.Controllers() {
			c.Gizmo().SetOperation(op)
		}
		a.redrawAll()
	})
	a.operation.SetSelected("translate")
	ws.OnOperationChanged(func(_ viewer.ViewportType, op gizmo.Operation) {
		a.operation.SetSelected(op.String())
	})

	localCheck := widget.NewCheck("Local space", func(local bool) {
		space := gizmo.Global
		if local {
			space = gizmo.Local
		}
		for _, c := range ws.Controllers() {
			c.Gizmo().SetSpace(space)
		}
		a.redrawAll()
	})

	snapChecks := container.NewVBox()
	for _, mode := range snapping.Modes {
		check := widget.NewCheck(mode.String(), func(enabled bool) {
			ws.SetSnapMode(mode, enabled)
		})
		check.SetChecked(ws.Snap().IsSnapModeEnabled(mode))
		snapChecks.Add(check)
	}

	gridSelect := widget.NewSelect(gridSizes, func(s string) {
		size, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return
		}
		ws.SetGridSize(size)
		a.redrawAll()
	})
	gridSelect.SetSelected(strconv.FormatFloat(ws.Config().GridSize, 'f', -1, 64))

	thresholdSelect := widget.NewSelect(snapThresholds, func(s string) {
		if threshold, err := strconv.ParseFloat(s, 64); err == nil {
			ws.SetSnapThreshold(threshold)
		}
	})
	thresholdSelect.SetSelected(strconv.FormatFloat(ws.Config().SnapThreshold, 'f', -1, 64))

	microCheck := widget.NewCheck("Microgrid", func(enabled bool) {
		if enabled != ws.Config().Microgrid {
			ws.ToggleMicrogrid()
			a.redrawAll()
		}
	})
	microCheck.SetChecked(ws.Config().Microgrid)

	openButton := widget.NewButton("Open Mesh", a.showFileDialog)
	clearButton := widget.NewButton("Clear Selection", func() {
		ws.Selection().Clear()
		a.redrawAll()
	})
	saveButton := widget.NewButton("Save Config", func() {
		if err := ws.Config().Save(configFile); err != nil {
			dialog.ShowError(errors.Join(errors.New("failed to save config"), err), a.window)
		}
	})

	instructions := widget.NewLabel(
		"Left click: select, Shift/Ctrl: add\n" +
			"Left drag: marquee or gizmo\n" +
			"Right drag: orbit / pan, right click: next operation\n" +
			"Middle drag: pan, wheel: zoom\n" +
			"WASD: fly, F: focus, Home: reset\n" +
			"M: gizmo mode, Tab: operation, L: space",
	)
	instructions.Wrapping = fyne.TextWrapWord

	panel := container.NewVBox(
		widget.NewLabel("Gizmo:"),
		modeSelect,
		a.operation,
		localCheck,
		widget.NewSeparator(),
		widget.NewLabel("Snapping:"),
		snapChecks,
		widget.NewLabel("Snap threshold:"),
		thresholdSelect,
		widget.NewLabel("Grid size:"),
		gridSelect,
		microCheck,
		widget.NewSeparator(),
		a.selectionLabel,
		widget.NewSeparator(),
		a.primitiveLabel,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		clearButton,
		saveButton,
	)

	scroll := container.NewVScroll(panel)
	scroll.SetMinSize(fyne.NewSize(260, 0))

	a.window.SetContent(container.NewBorder(nil, nil, nil, scroll, grid))
}
