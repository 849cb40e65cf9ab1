// Package navigation decides what a client may do at a given location for a
// given identity. Decide is pure: same inputs, same decision, no side
// effects, which is what keeps redirect loops impossible.
package navigation

import (
	"github.com/LuthandoGubevu/tutorhub/internal/models"
)

// Location is a logical route in the application
type Location string

const (
	LocationLanding          Location = "landing"
	LocationSignIn           Location = "sign-in"
	LocationRegistration     Location = "registration"
	LocationStudentHome      Location = "student-home"
	LocationTutorHome        Location = "tutor-home"
	LocationLesson           Location = "lesson"
	LocationSubmissionDetail Location = "submission-detail"
	LocationBookSession      Location = "book-session"
)

// DecisionKind is the outcome category of a navigation decision
type DecisionKind string

const (
	Allow           DecisionKind = "allow"
	RedirectTo      DecisionKind = "redirect"
	ShowLoading     DecisionKind = "loading"
	ShowRedirecting DecisionKind = "redirecting"
)

// Decision is the navigator's verdict. Target is set only for RedirectTo.
type Decision struct {
	Kind   DecisionKind `json:"kind"`
	Target Location     `json:"target,omitempty"`
}

var publicLocations = map[Location]struct{}{
	LocationLanding:      {},
	LocationSignIn:       {},
	LocationRegistration: {},
}

// Locations that require exactly the tutor role.
var tutorOnlyLocations = map[Location]struct{}{
	LocationTutorHome: {},
}

// IsPublic reports whether the location is reachable without an identity
func IsPublic(location Location) bool {
	_, ok := publicLocations[location]
	return ok
}

// Valid reports whether the location is a known route
func Valid(location Location) bool {
	switch location {
	case LocationLanding, LocationSignIn, LocationRegistration, LocationStudentHome,
		LocationTutorHome, LocationLesson, LocationSubmissionDetail, LocationBookSession:
		return true
	}
	return false
}

// HomeFor returns the dashboard for a role
func HomeFor(role models.UserRole) Location {
	if role == models.RoleTutor {
		return LocationTutorHome
	}
	return LocationStudentHome
}

// Decide maps (identity, resolution-in-progress, location) to a single
// decision. Rules are evaluated in order; the first match wins.
func Decide(identity *models.Identity, isResolving bool, location Location) Decision {
	if isResolving && !IsPublic(location) {
		return Decision{Kind: ShowLoading}
	}

	// A signed-in client on an auth page during a refresh pass is about to
	// be sent to its dashboard; show the redirecting placeholder instead of
	// flashing the form while the pass settles.
	if isResolving && identity != nil &&
		(location == LocationSignIn || location == LocationRegistration) {
		return Decision{Kind: ShowRedirecting}
	}

	if identity == nil {
		if !IsPublic(location) {
			return Decision{Kind: RedirectTo, Target: LocationSignIn}
		}
		return Decision{Kind: Allow}
	}

	if location == LocationSignIn || location == LocationRegistration {
		return Decision{Kind: RedirectTo, Target: HomeFor(identity.Role)}
	}

	if _, tutorOnly := tutorOnlyLocations[location]; tutorOnly && identity.Role != models.RoleTutor {
		return Decision{Kind: RedirectTo, Target: LocationStudentHome}
	}

	return Decision{Kind: Allow}
}
