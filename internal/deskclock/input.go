package deskclock

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/larsks/deskclock/internal/gesture"
)

// Presser is a button driver whose buttons can be pressed from software
type Presser interface {
	Set(name string, pressed bool) error
}

type pressCommand struct {
	button gesture.ButtonID
	long   bool
}

// parseCommand reads one line of dry-run input. The first letter of a
// button name presses it briefly; the uppercase letter holds it for a
// long press. Full names are accepted with an optional "long" suffix.
func parseCommand(line string) (pressCommand, error) {
	line = strings.TrimSpace(line)

	if len(line) == 1 {
		for _, b := range gesture.Buttons {
			name := b.String()
			switch line {
			case name[:1]:
				return pressCommand{button: b}, nil
			case strings.ToUpper(name[:1]):
				return pressCommand{button: b, long: true}, nil
			}
		}
		return pressCommand{}, fmt.Errorf("%w: %q", ErrInvalidInput, line)
	}

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 || len(fields) > 2 {
		return pressCommand{}, fmt.Errorf("%w: %q", ErrInvalidInput, line)
	}

	b, err := gesture.ParseButtonID(fields[0])
	if err != nil {
		return pressCommand{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	cmd := pressCommand{button: b}
	if len(fields) == 2 {
		if fields[1] != "long" {
			return pressCommand{}, fmt.Errorf("%w: %q", ErrInvalidInput, line)
		}
		cmd.long = true
	}
	return cmd, nil
}

// holdTimes returns how long a simulated short and long press are held
func holdTimes(longPress, tick time.Duration) (short, long time.Duration) {
	short = 5 * tick
	if short >= longPress {
		short = longPress / 2
	}
	return short, longPress + 5*tick
}

// feedInput presses buttons on p for every command read from r until r is
// exhausted or ctx is canceled.
func feedInput(ctx context.Context, r io.Reader, p Presser, short, long time.Duration) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}

		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			log.Printf("%v (try t, m, b, or T, M, B for a long press)", err)
			continue
		}

		hold := short
		if cmd.long {
			hold = long
		}

		if err := press(ctx, p, cmd.button.String(), hold); err != nil {
			log.Printf("failed to press %s: %v", cmd.button, err)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func press(ctx context.Context, p Presser, name string, hold time.Duration) error {
	if err := p.Set(name, true); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-time.After(hold):
	}

	return p.Set(name, false)
}
