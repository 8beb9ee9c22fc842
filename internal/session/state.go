package session

import (
	"carte/internal/cart"
	"carte/internal/domain"
)

// State is what a client renders: the current menu, its cart and the
// status of the latest translation request.
type State struct {
	Generation uint64
	Loading    bool
	Error      string
	Language   string
	Menu       *domain.ParsedMenu
	Cart       cart.Cart
}

// Initial returns an idle session with an empty cart.
func Initial() State {
	return State{Cart: cart.New()}
}

// Event is a session transition.
type Event interface {
	sessionEvent()
}

// RequestIssued starts a translation request. Its generation supersedes
// every earlier request.
type RequestIssued struct {
	Generation uint64
	Language   string
}

// MenuReceived delivers the result of the request with the same generation.
type MenuReceived struct {
	Generation uint64
	Menu       *domain.ParsedMenu
	Language   string
}

// RequestFailed delivers the failure of the request with the same generation.
type RequestFailed struct {
	Generation uint64
	Message    string
}

// Retaken discards the menu and cart and supersedes any request in flight.
type Retaken struct{}

// CartEvent applies a cart transition.
type CartEvent struct {
	Event cart.Event
}

func (RequestIssued) sessionEvent() {}
func (MenuReceived) sessionEvent()  {}
func (RequestFailed) sessionEvent() {}
func (Retaken) sessionEvent()       {}
func (CartEvent) sessionEvent()     {}

// Reduce returns the state that results from applying ev to s. Results of
// superseded requests leave s unchanged.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case RequestIssued:
		s.Generation = e.Generation
		s.Loading = true
		s.Error = ""
		s.Language = e.Language

	case MenuReceived:
		if e.Generation != s.Generation {
			return s
		}
		s.Loading = false
		s.Error = ""
		s.Menu = e.Menu
		s.Language = e.Language
		// A new menu invalidates every line of the old cart.
		s.Cart = cart.New()

	case RequestFailed:
		if e.Generation != s.Generation {
			return s
		}
		s.Loading = false
		s.Error = e.Message

	case Retaken:
		s = State{Generation: s.Generation + 1, Language: s.Language, Cart: cart.New()}

	case CartEvent:
		if e.Event != nil {
			s.Cart = cart.Reduce(s.Cart, e.Event)
		}
	}
	return s
}
