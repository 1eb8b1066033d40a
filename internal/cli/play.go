package cli

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescene"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the cube interactively",
	Long: `Interactive terminal cube.

Controls:
  r/l/u/d/f/b - Rotate a face clockwise
  R/L/U/D/F/B - Rotate a face counter-clockwise
  s           - Generate and play a shuffle
  Arrow keys  - Orbit the camera
  q / Esc     - Quit

Input is disabled while a shuffle is playing.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cube, err := newCube()
	if err != nil {
		return err
	}

	fps := envCfg.FPS
	if fps <= 0 {
		fps = 30
	}

	m := newPlayModel(cube, fps)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// frameMsg carries the tick time for one animation frame.
type frameMsg time.Time

func frameTick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	busyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	movesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	// Depth shading for the projected pieces, far to near.
	depthRamp = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
)

type playModel struct {
	cube *cubescene.Cube
	fps  int

	// Orbit camera with spring-smoothed angles.
	spring                 harmonica.Spring
	yaw, yawVel            float64
	pitch, pitchVel        float64
	targetYaw, targetPitch float64

	shuffle cubescene.Shuffle
	played  *int
	status  string
}

func newPlayModel(cube *cubescene.Cube, fps int) *playModel {
	played := 0
	cube.OnMoveComplete(func(cubescene.Move) { played++ })

	return &playModel{
		cube:        cube,
		fps:         fps,
		spring:      harmonica.NewSpring(harmonica.FPS(fps), 5.0, 0.8),
		targetYaw:   -0.5,
		targetPitch: 0.45,
		played:      &played,
		status:      "ready",
	}
}

func (m *playModel) Init() tea.Cmd {
	return frameTick(m.fps)
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.cube.Advance(time.Time(msg))
		m.yaw, m.yawVel = m.spring.Update(m.yaw, m.yawVel, m.targetYaw)
		m.pitch, m.pitchVel = m.spring.Update(m.pitch, m.pitchVel, m.targetPitch)
		return m, frameTick(m.fps)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left":
			m.targetYaw -= 0.35
		case "right":
			m.targetYaw += 0.35
		case "up":
			m.targetPitch = math.Min(m.targetPitch+0.2, 1.3)
		case "down":
			m.targetPitch = math.Max(m.targetPitch-0.2, -1.3)
		case "s":
			m.startShuffle()
		default:
			m.handleFaceKey(msg.String())
		}
	}
	return m, nil
}

func (m *playModel) startShuffle() {
	s, err := m.cube.NewShuffle()
	if err != nil {
		m.status = "shuffle already playing"
		return
	}
	if err := m.cube.PlayShuffle(s, nil); err != nil {
		m.status = fmt.Sprintf("cannot shuffle: %v", err)
		return
	}
	m.shuffle = s
	*m.played = 0
	m.status = "shuffling"
}

// handleFaceKey maps a face letter to a rotation: lowercase clockwise,
// uppercase counter-clockwise. Contention is routine and only reflected in
// the status line.
func (m *playModel) handleFaceKey(key string) {
	if len(key) != 1 {
		return
	}

	dir := cubescene.CW
	if key >= "A" && key <= "Z" {
		dir = cubescene.CCW
	}

	face := cubescene.Face(strings.ToUpper(key))
	known := false
	for _, f := range cubescene.Faces {
		if f == face {
			known = true
			break
		}
	}
	if !known {
		return
	}

	move := cubescene.Move{Face: face, Direction: dir}
	if err := m.cube.RotateFace(face, dir); err != nil {
		m.status = fmt.Sprintf("%s dropped (%s)", move, stateWord(m.cube))
		return
	}
	m.status = "rotating " + move.Notation()
}

func stateWord(c *cubescene.Cube) string {
	if c.Shuffling() {
		return "shuffling"
	}
	if c.Busy() {
		return "busy"
	}
	return "idle"
}

const (
	viewWidth  = 46
	viewHeight = 22
)

func (m *playModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cubescene"))
	b.WriteString("  ")
	if m.cube.Shuffling() {
		b.WriteString(busyStyle.Render(fmt.Sprintf("SHUFFLING %d/%d", *m.played, len(m.shuffle))))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderCube())
	b.WriteString("\n")

	if len(m.shuffle) > 0 {
		b.WriteString(m.renderShuffle())
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render("r/l/u/d/f/b rotate · shift for prime · s shuffle · arrows orbit · q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderCube draws an orthographic projection of the piece centers, painter
// ordered far to near with depth shading.
func (m *playModel) renderCube() string {
	type blob struct {
		x, y  int
		depth float64
	}

	rot := mgl64.QuatRotate(m.pitch, mgl64.Vec3{1, 0, 0}).
		Mul(mgl64.QuatRotate(m.yaw, mgl64.Vec3{0, 1, 0}))

	pieces := m.cube.Pieces()
	blobs := make([]blob, 0, len(pieces))
	minD, maxD := math.Inf(1), math.Inf(-1)

	for _, p := range pieces {
		v := rot.Rotate(p.Position)
		// Terminal cells are about twice as tall as wide.
		x := int(math.Round(v.X()*9)) + viewWidth/2
		y := int(math.Round(-v.Y()*4.5)) + viewHeight/2
		blobs = append(blobs, blob{x: x, y: y, depth: v.Z()})
		minD = math.Min(minD, v.Z())
		maxD = math.Max(maxD, v.Z())
	}

	sort.Slice(blobs, func(i, j int) bool { return blobs[i].depth < blobs[j].depth })

	grid := make([][]string, viewHeight)
	for y := range grid {
		grid[y] = make([]string, viewWidth)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	span := maxD - minD
	for _, bl := range blobs {
		if bl.x < 0 || bl.x+1 >= viewWidth || bl.y < 0 || bl.y >= viewHeight {
			continue
		}
		shade := 0
		if span > 0 {
			shade = int((bl.depth - minD) / span * float64(len(depthRamp)-1))
		}
		cell := depthRamp[shade].Render("█")
		grid[bl.y][bl.x] = cell
		grid[bl.y][bl.x+1] = cell
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}
	return b.String()
}

// renderShuffle shows the shuffle notation with completed moves dimmed.
func (m *playModel) renderShuffle() string {
	parts := make([]string, len(m.shuffle))
	for i, mv := range m.shuffle {
		if i < *m.played {
			parts[i] = doneStyle.Render(mv.Notation())
		} else {
			parts[i] = movesStyle.Render(mv.Notation())
		}
	}
	return "  " + strings.Join(parts, " ")
}
