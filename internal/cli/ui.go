//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate defines the refresh frequency of the progress spinner.
const SpinnerRefreshRate = 150 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the console reporter from a specific
// spinner implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to implement the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() { rs.s.Start() }

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// newSpinner constructs the production spinner. Declared as a variable so
// tests can substitute a mock.
var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// nopSpinner is used in quiet mode and when output is not a terminal.
type nopSpinner struct{}

func (nopSpinner) Start()              {}
func (nopSpinner) Stop()               {}
func (nopSpinner) UpdateSuffix(string) {}
