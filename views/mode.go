package views

import (
	"errors"
	"sync"

	"github.com/jrsteele09/internship-portal/internships"
	"github.com/jrsteele09/internship-portal/session"
)

var (
	ErrInternshipClosed = errors.New("internship is closed")
	ErrNotPermitted     = errors.New("only mentors and admins can manage internships")
)

// Mode is the single thing a page is currently showing
type Mode interface {
	Name() string
	isMode()
}

// Browsing is the default list view
type Browsing struct{}

// ViewingDetails shows one posting
type ViewingDetails struct {
	Internship internships.Internship
}

// Applying shows the application form for an open posting
type Applying struct {
	Internship internships.Internship
}

// LoggedOutPrompt asks a visitor to log in before applying
type LoggedOutPrompt struct {
	Internship internships.Internship
}

// Editing is the mentor/admin edit form for an existing posting
type Editing struct {
	Internship internships.Internship
}

// Adding is the mentor/admin form for a new posting
type Adding struct{}

func (Browsing) Name() string        { return "browsing" }
func (ViewingDetails) Name() string  { return "viewing_details" }
func (Applying) Name() string        { return "applying" }
func (LoggedOutPrompt) Name() string { return "logged_out_prompt" }
func (Editing) Name() string         { return "editing" }
func (Adding) Name() string          { return "adding" }

func (Browsing) isMode()        {}
func (ViewingDetails) isMode()  {}
func (Applying) isMode()        {}
func (LoggedOutPrompt) isMode() {}
func (Editing) isMode()         {}
func (Adding) isMode()          {}

// Page tracks the mode of one page against the shared session. Ending the
// session drops the page back to Browsing.
type Page struct {
	mu      sync.Mutex
	mode    Mode
	session *session.Context
}

func NewPage(s *session.Context) *Page {
	p := &Page{mode: Browsing{}, session: s}
	s.OnInvalidate(func(session.Reason, string) {
		p.set(Browsing{})
	})
	return p
}

func (p *Page) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *Page) ViewDetails(i internships.Internship) Mode {
	return p.set(ViewingDetails{Internship: i})
}

// Apply opens the application form, or the login prompt for visitors
func (p *Page) Apply(i internships.Internship) (Mode, error) {
	if !i.IsOpen() {
		return p.Mode(), ErrInternshipClosed
	}
	if !p.session.LoggedIn() {
		return p.set(LoggedOutPrompt{Internship: i}), nil
	}
	return p.set(Applying{Internship: i}), nil
}

// ResumeApply continues an application interrupted by the login prompt
func (p *Page) ResumeApply() (Mode, error) {
	prompt, ok := p.Mode().(LoggedOutPrompt)
	if !ok {
		return p.Mode(), nil
	}
	return p.Apply(prompt.Internship)
}

func (p *Page) Edit(i internships.Internship) (Mode, error) {
	if err := p.requireAdmin(); err != nil {
		return p.Mode(), err
	}
	return p.set(Editing{Internship: i}), nil
}

func (p *Page) Add() (Mode, error) {
	if err := p.requireAdmin(); err != nil {
		return p.Mode(), err
	}
	return p.set(Adding{}), nil
}

// Close returns to the list
func (p *Page) Close() Mode {
	return p.set(Browsing{})
}

func (p *Page) requireAdmin() error {
	u, ok := p.session.User()
	if !ok || !u.IsAdmin() {
		return ErrNotPermitted
	}
	return nil
}

func (p *Page) set(m Mode) Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = m
	return m
}
