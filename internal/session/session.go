// Package session holds the state of one combination-rate query workflow.
// The session is an explicit object handed through the handlers; every
// mutation comes from one sequential user interaction, so there is no
// locking here.
package session

import (
	"errors"
	"fmt"
	"strings"

	"ratehub/internal/schema"
)

var (
	ErrSelectionListFull = errors.New("container selection list is full")
	ErrDuplicateType     = errors.New("container type already selected")
	ErrUnknownType       = errors.New("unknown container type")
	ErrLastSelection     = errors.New("at least one container selection is required")
	ErrSelectionNotFound = errors.New("container type not in selection list")
)

// MissingSelectionError reports a leg whose service flag is on but which has
// no selected rate. "Generate" must be blocked until it is resolved.
type MissingSelectionError struct {
	Leg schema.LegKind
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("please select a %s rate", e.Leg)
}

// QuerySession owns everything one query/quotation workflow accumulates:
// criteria, container selections, matched candidates and the per-leg
// selected rate. Discarded wholesale on Reset.
type QuerySession struct {
	CargoMode schema.CargoMode
	Flags     schema.ServiceFlags
	Query     schema.RateQueryParams

	selections []schema.ContainerSelection

	Matched schema.RateSearchResult

	SelectedPrecarriage *schema.PrecarriageRate
	SelectedMainline    *schema.MainlineRate
	SelectedOncarriage  *schema.OncarriageRate
}

// New starts a session with the default single 20GP selection, mirroring a
// fresh query form.
func New(mode schema.CargoMode, flags schema.ServiceFlags) *QuerySession {
	return &QuerySession{
		CargoMode:  mode,
		Flags:      flags,
		selections: []schema.ContainerSelection{{Type: schema.C20GP, Count: 1}},
	}
}

// FromRequest rebuilds the session state a stateless request describes,
// pushing the payload's container selections through the same guards the
// interactive mutators enforce. An empty list keeps the default selection.
func FromRequest(mode schema.CargoMode, flags schema.ServiceFlags, selections []schema.ContainerSelection) (*QuerySession, error) {
	s := New(mode, flags)
	if len(selections) == 0 {
		return s, nil
	}
	s.selections = s.selections[:0]
	for _, sel := range selections {
		containerType := schema.ContainerType(strings.ToUpper(string(sel.Type)))
		if err := s.AddSelection(containerType, sel.Count); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Selections returns a copy; callers must go through the mutators.
func (s *QuerySession) Selections() []schema.ContainerSelection {
	out := make([]schema.ContainerSelection, len(s.selections))
	copy(out, s.selections)
	return out
}

// AddSelection appends a container type. The list is capped at
// schema.MaxContainerSelections entries, one per type.
func (s *QuerySession) AddSelection(containerType schema.ContainerType, count int) error {
	if !containerType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, containerType)
	}
	if len(s.selections) >= schema.MaxContainerSelections {
		return ErrSelectionListFull
	}
	for _, sel := range s.selections {
		if sel.Type == containerType {
			return fmt.Errorf("%w: %s", ErrDuplicateType, containerType)
		}
	}
	if count < 0 {
		count = 0
	}
	s.selections = append(s.selections, schema.ContainerSelection{Type: containerType, Count: count})
	return nil
}

func (s *QuerySession) UpdateSelection(containerType schema.ContainerType, count int) error {
	for i, sel := range s.selections {
		if sel.Type == containerType {
			if count < 0 {
				count = 0
			}
			s.selections[i].Count = count
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSelectionNotFound, containerType)
}

// RemoveSelection drops a type; the last remaining entry stays put.
func (s *QuerySession) RemoveSelection(containerType schema.ContainerType) error {
	if len(s.selections) <= 1 {
		return ErrLastSelection
	}
	for i, sel := range s.selections {
		if sel.Type == containerType {
			s.selections = append(s.selections[:i], s.selections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSelectionNotFound, containerType)
}

// SetMatched replaces the candidate lists; a re-run supersedes the old
// results and invalidates prior picks that are no longer listed.
func (s *QuerySession) SetMatched(matched schema.RateSearchResult) {
	s.Matched = matched
	s.SelectedPrecarriage = nil
	s.SelectedMainline = nil
	s.SelectedOncarriage = nil
}

func (s *QuerySession) SelectPrecarriage(rate *schema.PrecarriageRate) { s.SelectedPrecarriage = rate }

func (s *QuerySession) SelectMainline(rate *schema.MainlineRate) { s.SelectedMainline = rate }

func (s *QuerySession) SelectOncarriage(rate *schema.OncarriageRate) { s.SelectedOncarriage = rate }

// EnsureReady verifies every enabled leg has a selected rate. Mainline is
// checked first so the warning order matches the console.
func (s *QuerySession) EnsureReady() error {
	if s.Flags.Mainline && s.SelectedMainline == nil {
		return &MissingSelectionError{Leg: schema.Mainline}
	}
	if s.Flags.Precarriage && s.SelectedPrecarriage == nil {
		return &MissingSelectionError{Leg: schema.Precarriage}
	}
	if s.Flags.Oncarriage && s.SelectedOncarriage == nil {
		return &MissingSelectionError{Leg: schema.Oncarriage}
	}
	return nil
}

// Reset discards all accumulated state, returning the session to a fresh
// query form.
func (s *QuerySession) Reset() {
	*s = *New(s.CargoMode, s.Flags)
}
