// Package player launches an external media player for a resolved stream.
package player

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/open"
)

const (
	MPV    = "mpv"
	IINA   = "iina"
	VLC    = "vlc"
	System = "open"
)

// Player plays one stream at a time in a separate process.
type Player interface {
	// Play starts playback, replacing any running playback of this player.
	Play(url, title string) error
	// Wait returns a channel closed when the playback process exits.
	Wait() <-chan struct{}
	Close() error
}

// Available lists the supported player names.
func Available() []string {
	return []string{MPV, IINA, VLC, System}
}

// New returns the player called name.
func New(name string) (Player, error) {
	switch strings.ToLower(name) {
	case MPV:
		return &process{name: MPV, args: mpvArgs}, nil
	case VLC:
		return &process{name: VLC, args: vlcArgs}, nil
	case IINA:
		if runtime.GOOS != constant.Darwin {
			return nil, fmt.Errorf("iina is only available on macOS")
		}
		return &process{name: "open", args: iinaArgs}, nil
	case System:
		return &system{}, nil
	default:
		return nil, fmt.Errorf("unknown player %q, available: %s", name, strings.Join(Available(), ", "))
	}
}

// Binary returns the executable the named player runs, or an empty string when it needs none.
func Binary(name string) string {
	switch strings.ToLower(name) {
	case MPV, VLC:
		return strings.ToLower(name)
	default:
		return ""
	}
}

// process runs a player binary with arguments built for each stream.
type process struct {
	name   string
	args   func(url, title string) []string
	cmd    *exec.Cmd
	exited chan struct{}
}

func (p *process) Play(rawURL, title string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	_ = p.Close()

	p.cmd = exec.Command(p.name, p.args(target, sanitizeTitle(title))...)
	p.cmd.SysProcAttr = sysProcAttr()

	log.Infof("player: starting %s for %q", p.name, title)
	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.name, err)
	}

	exited := make(chan struct{})
	p.exited = exited
	cmd := p.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	return nil
}

func (p *process) Wait() <-chan struct{} {
	if p.exited == nil {
		return closed()
	}
	return p.exited
}

func (p *process) Close() error {
	if p.cmd == nil {
		return nil
	}
	select {
	case <-p.exited:
		return nil
	default:
		return killProcess(p.cmd)
	}
}

// system hands the stream to the default handler of the OS and does not track it.
type system struct{}

func (system) Play(rawURL, _ string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	return open.Start(target)
}

func (system) Wait() <-chan struct{} { return closed() }
func (system) Close() error          { return nil }

func closed() <-chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}

func mpvArgs(target, title string) []string {
	return []string{
		"--no-terminal",
		"--really-quiet",
		"--force-window=yes",
		"--force-media-title=" + title,
		"--user-agent=" + constant.UserAgent,
		target,
	}
}

func vlcArgs(target, title string) []string {
	return []string{
		"--play-and-exit",
		"--meta-title=" + title,
		"--http-user-agent=" + constant.UserAgent,
		target,
	}
}

func iinaArgs(target, title string) []string {
	return []string{"-a", "IINA", "--args", "--mpv-force-media-title=" + title, target}
}

func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	switch {
	case l == "":
		return "", fmt.Errorf("empty URL")
	case strings.ContainsAny(l, "\x00\n\r"):
		return "", fmt.Errorf("invalid control characters in URL")
	case strings.HasPrefix(l, "-"):
		return "", fmt.Errorf("url must not start with '-'")
	}

	u, err := url.Parse(l)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if !lo.Contains([]string{"http", "https"}, strings.ToLower(u.Scheme)) {
		return "", fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
	}
	return l, nil
}

func sanitizeTitle(title string) string {
	return strings.TrimSpace(strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title))
}
