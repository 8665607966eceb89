package home

import (
	"context"
	"errors"
	"fmt"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/sdk"
)

// Action is a user trigger on the home screen.
type Action uint8

const (
	ActionAuthenticate Action = iota
	ActionCheckSensors
	ActionEnableSensors
	ActionOpenSettings

	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionAuthenticate:
		return "authenticate"
	case ActionCheckSensors:
		return "check_sensors"
	case ActionEnableSensors:
		return "enable_sensors"
	case ActionOpenSettings:
		return "open_settings"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Phase tracks startup. Only PhaseReady accepts user actions.
type Phase uint8

const (
	PhaseLoading Phase = iota
	PhaseConfiguring
	PhaseReady
	// PhaseFailed is terminal for the session.
	PhaseFailed
)

// State is owned by the UI loop. Transitions never perform I/O.
type State struct {
	Phase       Phase
	Credentials credentials.Credentials

	AuthChecked   bool
	Authenticated bool
	// AuthErr holds the failure of the last status check until one succeeds.
	AuthErr error
	// authSettled is set once an explicit authenticate completes, so a late
	// startup check cannot overwrite it.
	authSettled bool

	SensorChecked bool
	SensorStatus  sdk.SensorStatus

	ConfigureErr error

	inFlight [actionCount]bool

	notice   string
	noticeID uint64

	// Focus indexes the credential fields followed by the action buttons.
	Focus int
}

func New() State {
	return State{
		Phase:        PhaseLoading,
		SensorStatus: sdk.SensorStatusPending,
	}
}

func (s State) Ready() bool { return s.Phase == PhaseReady }

func (s State) InFlight(a Action) bool {
	return a < actionCount && s.inFlight[a]
}

// Allowed reports whether a trigger for a would be accepted.
func (s State) Allowed(a Action) bool {
	if !s.Ready() || s.InFlight(a) {
		return false
	}
	if a == ActionEnableSensors {
		return s.SensorStatus.CanEnable()
	}
	return a < actionCount
}

// AwaitingSetup is true when the last status check came back pending.
func (s State) AwaitingSetup() bool {
	return s.SensorChecked && s.SensorStatus == sdk.SensorStatusPending
}

func (s State) Notice() string   { return s.notice }
func (s State) NoticeID() uint64 { return s.noticeID }

func (s *State) CredentialsLoaded(c credentials.Credentials) {
	s.Credentials = c
	if s.Phase == PhaseLoading {
		s.Phase = PhaseConfiguring
	}
}

// Configured reports whether the startup checks should be issued.
func (s *State) Configured(err error) bool {
	if s.Phase != PhaseConfiguring {
		return false
	}
	if err != nil {
		s.Phase = PhaseFailed
		s.ConfigureErr = err
		return false
	}
	s.Phase = PhaseReady
	s.inFlight[ActionCheckSensors] = true
	return true
}

// Begin marks a as in flight. It returns false when the trigger is rejected.
// ActionOpenSettings has no completion and is never marked.
func (s *State) Begin(a Action) bool {
	if !s.Allowed(a) {
		return false
	}
	if a != ActionOpenSettings {
		s.inFlight[a] = true
	}
	return true
}

// AuthStatusResolved records a startup check. A failed check leaves the
// indicator unresolved instead of reporting the profile as signed out.
func (s *State) AuthStatusResolved(authenticated bool, err error) {
	if err != nil {
		if !s.authSettled {
			s.AuthErr = err
		}
		s.fail("Auth check failed", err)
		return
	}
	s.AuthChecked = true
	s.AuthErr = nil
	if !s.authSettled {
		s.Authenticated = authenticated
	}
}

func (s *State) AuthenticateDone(authenticated bool, err error) {
	s.inFlight[ActionAuthenticate] = false
	if errors.Is(err, sdk.ErrUnauthorized) {
		s.setNotice("Authentication was rejected: check the app id and secret")
		return
	}
	if err != nil {
		s.fail("Authentication failed", err)
		return
	}
	s.AuthChecked = true
	s.AuthErr = nil
	s.authSettled = true
	s.Authenticated = authenticated
	if !authenticated {
		s.setNotice("Authentication was rejected")
	}
}

// SensorStatusResolved completes a check or enable started by a.
func (s *State) SensorStatusResolved(a Action, status sdk.SensorStatus, err error) {
	if a < actionCount {
		s.inFlight[a] = false
	}
	if err == nil && !status.Valid() {
		err = fmt.Errorf("%w: %d", sdk.ErrUnknownStatus, uint8(status))
	}
	if err != nil {
		switch a {
		case ActionEnableSensors:
			s.fail("Enabling sensors failed", err)
		default:
			s.fail("Sensor check failed", err)
		}
		return
	}
	s.SensorChecked = true
	s.SensorStatus = status
}

// ExpireNotice clears the notice if it is still the one identified by id.
func (s *State) ExpireNotice(id uint64) {
	if s.noticeID == id {
		s.notice = ""
	}
}

func (s *State) fail(prefix string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		s.setNotice(prefix + ": timed out")
		return
	}
	s.setNotice(prefix + ": " + err.Error())
}

func (s *State) setNotice(text string) {
	s.noticeID++
	s.notice = text
}

var (
	fieldCount = len(credentials.Keys)
	focusCount = fieldCount + int(actionCount)
)

func (s *State) FocusNext() {
	s.Focus = (s.Focus + 1) % focusCount
}

func (s *State) FocusPrev() {
	s.Focus = (s.Focus - 1 + focusCount) % focusCount
}

// FocusedField returns the credential key of the focused field, if any.
func (s State) FocusedField() (string, bool) {
	if s.Focus < 0 || s.Focus >= fieldCount {
		return "", false
	}
	return credentials.Keys[s.Focus], true
}

func (s State) FocusedAction() (Action, bool) {
	if s.Focus < fieldCount || s.Focus >= focusCount {
		return 0, false
	}
	return Action(s.Focus - fieldCount), true
}

func (s *State) Edit(key string, value string) {
	s.Credentials = s.Credentials.With(key, value)
}
