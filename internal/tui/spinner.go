package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hoteldesk/go-hotel-client/internal/colors"
)

const spinnerInterval = 80 * time.Millisecond

var (
	allChars      = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ@#$%&*+=~^|/<>?")
	hotelVisible  = []string{"H", "O", "T", "E", "L"}
	hotelRevealAt = 20 // ticks per revealed letter
)

type spinnerTickMsg struct{}

// Spinner scrambles random characters around "HOTEL", revealing one letter every
// hotelRevealAt ticks.
type Spinner struct {
	counter    int
	running    bool
	leftChars  []rune
	rightChars []rune
	letters    []string
}

func NewSpinner() *Spinner {
	s := &Spinner{}
	s.Reset()
	return s
}

func (s *Spinner) Reset() {
	s.counter = 0
	s.leftChars = randomChars(6)
	s.rightChars = randomChars(6)
	s.letters = []string{"*", "*", "*", "*", "*"}
}

func randomChars(count int) []rune {
	result := make([]rune, count)
	for i := range result {
		result[i] = allChars[rand.Intn(len(allChars))]
	}
	return result
}

// Start returns the first tick when the spinner is not running yet.
func (s *Spinner) Start() tea.Cmd {
	if s.running {
		return nil
	}
	s.running = true
	s.Reset()
	return s.tick()
}

func (s *Spinner) Running() bool {
	return s.running
}

// Update advances the spinner and schedules the next tick while busy is true.
func (s *Spinner) Update(busy bool) tea.Cmd {
	if !busy {
		s.running = false
		return nil
	}
	s.counter++
	s.leftChars = randomChars(6)
	s.rightChars = randomChars(6)
	for i := range s.letters {
		if s.counter >= (i+1)*hotelRevealAt {
			s.letters[i] = hotelVisible[i]
		}
	}
	if s.counter >= (len(hotelVisible)+1)*hotelRevealAt {
		s.Reset()
	}
	return s.tick()
}

func (s *Spinner) tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return spinnerTickMsg{} })
}

func (s *Spinner) View() string {
	line := fmt.Sprintf("%s%s%s", string(s.leftChars), strings.Join(s.letters, ""), string(s.rightChars))
	return "[" + colors.ApplyGradient([]string{line})[0] + "]"
}
