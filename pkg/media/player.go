// Package media launches playback of a revealed URL. Players are external
// collaborators behind a one-method interface; nothing here inspects the
// media itself.
package media

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Player starts playback of a URL and returns once the player process is
// launched.
type Player interface {
	Play(url string) error
}

// BrowserPlayer opens the URL with the platform's default handler.
type BrowserPlayer struct {
	Logger *slog.Logger
}

func NewBrowserPlayer() *BrowserPlayer {
	return &BrowserPlayer{Logger: slog.Default()}
}

func (p *BrowserPlayer) Play(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	p.Logger.Info("opened media in default browser")
	return nil
}

// CommandPlayer launches a specific player binary, e.g. vlc or mpv.
type CommandPlayer struct {
	Path   string
	Args   []string
	Logger *slog.Logger
}

func NewCommandPlayer(path string, args ...string) *CommandPlayer {
	return &CommandPlayer{Path: path, Args: args, Logger: slog.Default()}
}

func (p *CommandPlayer) Play(url string) error {
	if p.Path == "" {
		return fmt.Errorf("no media player configured")
	}
	if _, err := exec.LookPath(p.Path); err != nil {
		return fmt.Errorf("media player not found: %w", err)
	}

	args := append(append([]string{}, p.Args...), url)
	if err := exec.Command(p.Path, args...).Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", p.Path, err)
	}

	p.Logger.Info("launched media player", "player", p.Path)
	return nil
}
