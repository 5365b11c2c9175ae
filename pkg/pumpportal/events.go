// pkg/pumpportal/events.go
package pumpportal

import (
	"errors"
	"fmt"
	"strings"
)

// Event is one of the feed topics a Stream can subscribe to.
type Event uint8

const (
	NewToken Event = iota + 1
	TokenTrade
	AccountTrade
	RaydiumLiquidity
)

var ErrUnknownEvent = errors.New("unknown event")

type methodPair struct {
	name        string
	subscribe   string
	unsubscribe string
}

// Every event maps to its own verb pair; unsubscribe verbs are never derived by slicing.
var eventMethods = map[Event]methodPair{
	NewToken:         {name: "newToken", subscribe: "subscribeNewToken", unsubscribe: "unsubscribeNewToken"},
	TokenTrade:       {name: "tokenTrade", subscribe: "subscribeTokenTrade", unsubscribe: "unsubscribeTokenTrade"},
	AccountTrade:     {name: "accountTrade", subscribe: "subscribeAccountTrade", unsubscribe: "unsubscribeAccountTrade"},
	RaydiumLiquidity: {name: "raydiumLiquidity", subscribe: "subscribeRaydiumLiquidity", unsubscribe: "unsubscribeRaydiumLiquidity"},
}

// Events returns all known events in declaration order.
func Events() []Event {
	return []Event{NewToken, TokenTrade, AccountTrade, RaydiumLiquidity}
}

func (e Event) String() string {
	if m, ok := eventMethods[e]; ok {
		return m.name
	}
	return fmt.Sprintf("Event(%d)", uint8(e))
}

// Valid reports whether e is one of the known events.
func (e Event) Valid() bool {
	_, ok := eventMethods[e]
	return ok
}

// SubscribeMethod returns the wire verb used to subscribe to e.
func (e Event) SubscribeMethod() string {
	return eventMethods[e].subscribe
}

// UnsubscribeMethod returns the wire verb used to unsubscribe from e.
func (e Event) UnsubscribeMethod() string {
	return eventMethods[e].unsubscribe
}

// ParseEvent accepts either the short name ("tokenTrade") or the subscribe verb
// ("subscribeTokenTrade"), case-insensitively.
func ParseEvent(s string) (Event, error) {
	needle := strings.TrimSpace(s)
	for _, e := range Events() {
		m := eventMethods[e]
		if strings.EqualFold(needle, m.name) || strings.EqualFold(needle, m.subscribe) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// ControlMessage is the envelope sent over the feed connection to (un)subscribe.
type ControlMessage struct {
	Method string   `json:"method"`
	Keys   []string `json:"keys,omitempty"`
}
