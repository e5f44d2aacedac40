package progress

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"MapsScraper/internal/models"
)

// Console is a spinner-based observer for interactive runs.
type Console struct {
	sp *spinner.Spinner
}

func NewConsole() *Console {
	sp := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	sp.Suffix = " Starting..."
	sp.Start()
	return &Console{sp: sp}
}

func (c *Console) OnAccepted(current, total int, b models.Business) {
	c.sp.Suffix = fmt.Sprintf(" Scraped %d of %d: %s", current, total, b.Name)
}

func (c *Console) OnStatus(message string) {
	c.sp.Suffix = " " + message
}

func (c *Console) Stop() {
	c.sp.Stop()
}

// Log is an observer that writes progress to the leveled logger. Useful for
// headless runs where a spinner has no terminal to animate.
type Log struct{}

func (Log) OnAccepted(current, total int, b models.Business) {
	log.Infof("Scraped %d of %d: %s", current, total, b.Name)
}

func (Log) OnStatus(message string) {
	log.Info(message)
}
