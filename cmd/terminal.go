package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tabata/internal/audio"
	"tabata/internal/core/session"
	"tabata/internal/core/timekeeper"
	"tabata/internal/i18n"
	"tabata/internal/platform"
	"tabata/internal/ui/display"
)

const (
	keyCtrlC = 3
	keyCtrlD = 4

	progressWidth = 20
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workout in the terminal",
	Long:  "Run starts a workout immediately and shows it on a single status line.\nSpace pauses or resumes, r resets and q quits.",
	Args:  cobra.NoArgs,
	RunE:  runTerminal,
}

var (
	badgeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Padding(0, 1)
	timeStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	phaseBadges = map[session.Phase]lipgloss.Style{
		session.PhaseIdle:     badgeStyle.Background(lipgloss.Color("#2d2d2d")),
		session.PhaseGetReady: badgeStyle.Background(lipgloss.Color("#f39c12")),
		session.PhaseWork:     badgeStyle.Background(lipgloss.Color("#e74c3c")),
		session.PhaseRest:     badgeStyle.Background(lipgloss.Color("#27ae60")),
		session.PhaseComplete: badgeStyle.Background(lipgloss.Color("#8e44ad")),
	}
)

// controller is the part of the timekeeper driven by key presses.
type controller interface {
	Toggle()
	Reset()
}

func runTerminal(cmd *cobra.Command, _ []string) error {
	settings, _ := loadSettings(cmd)

	keeper, err := timekeeper.New(settings.WorkoutConfig(), timekeeper.Config{})
	if err != nil {
		return err
	}
	defer keeper.Close()

	player := audio.NewPlayer(settings.Sound)
	defer player.Close()

	awake := newAwakeGuard(platform.NewWakeLock(appName), settings.KeepAwake)
	defer awake.Release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	keys := make(chan byte)
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("terminal raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, state)
		}()
		go readKeys(ctx, os.Stdin, keys)
	}

	out := newScreen(cmd.OutOrStdout())
	out.println(display.Description(keeper.Config()))
	out.println(mutedStyle.Render(i18n.T("Press Space to start/pause • Press R to reset") + " • " + i18n.T("Press Q to quit")))

	events := keeper.Subscribe(16)
	keeper.Start()

	completed := drive(ctx, keeper, events, keys, out, player.Handle, awake.Handle)
	stop()
	if completed {
		// Let the final cue finish before the speaker closes.
		if plan, ok := audio.PlanFor(session.CueTriple); ok && settings.Sound {
			time.Sleep(plan.Duration())
		}
	}
	return nil
}

// drive renders events and handles keys until the workout completes or
// the user quits. It reports whether the workout completed.
func drive(ctx context.Context, keeper controller, events <-chan session.Event, keys <-chan byte, out *screen, hooks ...func(session.Event)) bool {
	for {
		select {
		case <-ctx.Done():
			out.finish()
			return false
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if handleKey(keeper, key) {
				out.finish()
				return false
			}
		case event, ok := <-events:
			if !ok {
				out.finish()
				return false
			}
			for _, hook := range hooks {
				hook(event)
			}
			out.render(event.Snapshot)
			if event.Type == session.EventCompleted {
				out.finish()
				out.println(doneStyle.Render(i18n.T("Workout Complete!")))
				return true
			}
		}
	}
}

// handleKey applies a key press and reports whether to quit.
func handleKey(keeper controller, key byte) bool {
	switch key {
	case ' ':
		keeper.Toggle()
	case 'r', 'R':
		keeper.Reset()
	case 'q', 'Q', keyCtrlC, keyCtrlD:
		return true
	}
	return false
}

// readKeys forwards bytes from in until it fails or ctx is done.
func readKeys(ctx context.Context, in io.Reader, keys chan<- byte) {
	defer close(keys)
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case keys <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

// screen redraws a single status line. Lines end in \r\n so output stays
// aligned in raw mode.
type screen struct {
	out   io.Writer
	dirty bool
}

func newScreen(out io.Writer) *screen {
	return &screen{out: out}
}

func (out *screen) render(snapshot session.Snapshot) {
	fmt.Fprintf(out.out, "\r\x1b[2K%s", statusLine(snapshot))
	out.dirty = true
}

func (out *screen) println(text string) {
	fmt.Fprintf(out.out, "%s\r\n", text)
}

func (out *screen) finish() {
	if out.dirty {
		fmt.Fprint(out.out, "\r\n")
		out.dirty = false
	}
}

func statusLine(snapshot session.Snapshot) string {
	view := display.ViewOf(snapshot)
	badge, ok := phaseBadges[snapshot.Phase]
	if !ok {
		badge = badgeStyle
	}

	parts := []string{
		badge.Render(view.Phase),
		timeStyle.Render(view.Time),
		fmt.Sprintf("%s %d/%d", i18n.T("Round"), snapshot.Round, snapshot.TotalRounds),
		mutedStyle.Render(progressBar(snapshot.Progress, progressWidth)),
	}
	return strings.Join(parts, "  ")
}

func progressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
