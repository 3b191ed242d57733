package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/popshot/internal/draw"
	"github.com/tomz197/popshot/internal/game"
	loopconfig "github.com/tomz197/popshot/internal/loop/config"
	"github.com/tomz197/popshot/internal/object"
)

// sparkLift brightens particles relative to their target.
const sparkLift = 0.5

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen, phase or inactivity transitions, do a full terminal clear
	// so UI elements from the previous view don't persist on screen.
	current := view{screen: c.state.Screen, phase: c.match.Phase()}
	if current != c.state.prevView || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevView = current
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snap := c.match.Snapshot()
	if c.state.Screen == ScreenMatch && !c.state.isInactive && snap.HUD.Phase != game.PhaseEnded {
		c.drawTargets(snap)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawTargets paints live targets as discs and dying ones as a growing,
// fading disc with a particle spray.
func (c *Client) drawTargets(snap game.Snapshot) {
	base := draw.ParseColor(snap.Color)
	spark := draw.Lighten(base, sparkLift)

	for _, t := range snap.Targets {
		switch t.Status {
		case object.StatusAlive:
			c.canvas.FillCircle(t.X, t.Y, t.Radius, base)
		case object.StatusDying:
			if t.Alpha <= 0 {
				continue
			}
			c.canvas.FillCircle(t.X, t.Y, t.DrawRadius, draw.Fade(base, t.Alpha))
			pc := draw.Fade(spark, t.Alpha)
			for _, p := range t.Particles {
				c.canvas.SetFloat(p.X, p.Y, pc)
			}
		}
	}
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(snap game.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenModeSelect:
		c.drawModeSelectScreen(termWidth, termHeight)
	case ScreenSettings:
		c.drawSettingsScreen(centerX, centerY)
	case ScreenMatch:
		switch snap.HUD.Phase {
		case game.PhaseRunning:
			c.drawPlayingHUD(termWidth, termHeight, snap.HUD)
		case game.PhasePaused:
			c.drawPlayingHUD(termWidth, termHeight, snap.HUD)
			c.drawPausedOverlay(centerX, centerY)
		case game.PhaseEnded:
			c.drawResultsScreen(centerX, centerY)
		}
	}
}

// writeOverlay writes text on top of the play field and marks the cells so
// the canvas repaints them once the text is gone.
func (c *Client) writeOverlay(centerX, row int, s string) {
	col := c.chunkWriter.WriteCentered(centerX, row, s)
	c.canvas.MarkTextDirty(col, row, len(s))
}

func blinkOn() bool {
	return time.Now().UnixMilli()/loopconfig.PromptBlinkMillis%2 == 0
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.chunkWriter.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(loopconfig.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.chunkWriter.WriteCentered(centerX, centerY, msg)
	c.chunkWriter.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawModeSelectScreen draws the title screen with the mode choice.
func (c *Client) drawModeSelectScreen(termWidth, termHeight int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___  ___  ___  ___ _  _  ___ _____ `,
		` | _ \/ _ \| _ \/ __| || |/ _ \_   _|`,
		` |  _/ (_) |  _/\__ \ __ | (_) || |  `,
		` |_|  \___/|_|  |___/_||_|\___/ |_|  `,
		`                                     `,
	}
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := c.chunkWriter
	centerX := termWidth / 2
	titleStartY := termHeight/2 - 8
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}
	c.chunkWriter.WriteCentered(centerX, titleStartY+len(titleArt)+1, "~ Aim trainer for your terminal ~")

	s := c.settings.Settings()
	menuY := titleStartY + len(titleArt) + 3
	menu := []string{
		"1  . . . . . .  Dynamic targets",
		"2  . . . . . . . Static targets",
		fmt.Sprintf("T  . . . . . .  Duration: %3ds", s.DurationSeconds),
		"S  . . . . . . . . . . Settings",
		"Q  . . . . . . . . . . . . Quit",
	}
	for i, line := range menu {
		c.chunkWriter.WriteCentered(centerX, menuY+i, line)
	}

	controlsY := menuY + len(menu) + 1
	c.chunkWriter.WriteCentered(centerX, controlsY, "Click targets to pop them. ESC pauses.")

	if blinkOn() {
		mode := "dynamic"
		if !s.Moving {
			mode = "static"
		}
		prompt := fmt.Sprintf(">>  Press SPACE to play %-7s  <<", mode)
		c.chunkWriter.WriteCentered(centerX, controlsY+2, prompt)
	}

	if last := c.state.LastSummary; last != nil {
		lastText := fmt.Sprintf("Last match: %d points, best combo %dx, accuracy %s%%",
			last.Score, last.BestCombo, last.Accuracy)
		c.chunkWriter.WriteCentered(centerX, controlsY+4, lastText)
	}

	if c.server != nil {
		players := fmt.Sprintf("Players: %-4d", c.server.Players())
		cw.WriteAt(termWidth-len(players)-1, termHeight, players)
	}
}

// drawSettingsScreen draws the settings menu with the current values.
func (c *Client) drawSettingsScreen(centerX, centerY int) {
	s := c.settings.Settings()
	cw := c.chunkWriter

	lines := []string{
		fmt.Sprintf("O  Osu mode (Z/X to shoot) . . %-6s", onOff(s.OsuMode)),
		fmt.Sprintf("C  Target colour . . . . . . . %-6s", s.Color),
		fmt.Sprintf("S  Sound . . . . . . . . . . . %-6s", s.Sound),
		fmt.Sprintf("B  Break animation . . . . . . %-6s", onOff(s.BreakAnim)),
	}
	width := len(lines[0])
	left := centerX - width/2
	top := centerY - len(lines)

	c.chunkWriter.WriteCentered(centerX, top-2, "SETTINGS")
	for i, line := range lines {
		cw.WriteAt(left, top+i*2, line)
	}

	// Colour swatch next to the colour line
	swatch := draw.Fg(draw.ParseColor(s.Color)) + strings.Repeat(string(draw.BlockFull), 4) + draw.ColorReset
	cw.WriteAt(left+width+1, top+2, swatch)

	c.chunkWriter.WriteCentered(centerX, top+len(lines)*2+1, "ESC  Back")
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, hud game.HUD) {
	cw := c.chunkWriter

	scoreText := fmt.Sprintf("Score: %-6d", hud.Score)
	cw.WriteAt(2, 1, scoreText)

	comboText := fmt.Sprintf("Combo: %-5s x%-3d", fmt.Sprintf("%dx", hud.Combo), hud.Multiplier)
	if hud.Multiplier > 1 {
		cw.WriteStyled(termWidth/2-len(comboText)/2, 1, draw.ColorYellow, comboText)
	} else {
		cw.WriteCentered(termWidth/2, 1, comboText)
	}

	timeText := fmt.Sprintf("Time: %-3d", int(math.Ceil(hud.Remaining)))
	cw.WriteAt(termWidth-len(timeText)-1, 1, timeText)

	// Progress bar along the bottom row
	barWidth := termWidth - 2*loopconfig.ProgressBarMargin
	if barWidth <= 0 {
		return
	}
	filled := int(hud.Progress / 100 * float64(barWidth))
	filled = min(max(filled, 0), barWidth)
	bar := draw.ColorBrightCyan + strings.Repeat(string(draw.BlockFull), filled) +
		draw.ColorDim + strings.Repeat(string(draw.BlockLight), barWidth-filled) + draw.ColorReset
	cw.WriteAt(loopconfig.ProgressBarMargin+1, termHeight, bar)
}

// drawPausedOverlay draws the pause menu on top of the frozen field.
func (c *Client) drawPausedOverlay(centerX, centerY int) {
	lines := []string{
		"            PAUSED            ",
		"                              ",
		"  ESC  . . . . . . .  Resume  ",
		"  R  . . . . . . . .  Restart ",
		"  M  . . . . . . Mode select  ",
	}
	for i, line := range lines {
		c.writeOverlay(centerX, centerY-len(lines)/2+i, line)
	}
}

// drawResultsScreen draws the end-of-match summary.
func (c *Client) drawResultsScreen(centerX, centerY int) {
	summary, ok := c.match.Summary()
	if !ok {
		return
	}

	titleArt := []string{
		` _____ ___ __  __ ___ _ ___   _   _ ___  `,
		`|_   _|_ _|  \/  | __( ) __| | | | | _ \ `,
		`  | |  | || |\/| | _||/\__ \ | |_| |  _/ `,
		`  |_| |___|_|  |_|___| |___/  \___/|_|   `,
		`                                         `,
	}
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := c.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteStyled(centerX-titleWidth/2, titleStartY+i, draw.ColorBold, line)
	}

	statsY := titleStartY + len(titleArt) + 1
	c.chunkWriter.WriteCentered(centerX, statsY, fmt.Sprintf("Score: %d", summary.Score))
	c.chunkWriter.WriteCentered(centerX, statsY+1, fmt.Sprintf("Best combo: %dx", summary.BestCombo))
	c.chunkWriter.WriteCentered(centerX, statsY+2, fmt.Sprintf("Accuracy: %s%%", summary.Accuracy))

	if blinkOn() {
		c.chunkWriter.WriteCentered(centerX, statsY+4, ">>  Press SPACE to Retry  <<")
	}
	c.chunkWriter.WriteCentered(centerX, statsY+6, "M  . . . . . . Mode select")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.chunkWriter.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.chunkWriter.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.chunkWriter.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.chunkWriter.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.chunkWriter.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}
