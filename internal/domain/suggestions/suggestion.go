// Package suggestions defines candidate content suggestions and the
// preference-aware ranking that orders them for a user.
package suggestions

// Suggestion is one candidate piece of content attached to a persona.
// Priority is the base rank (lower shows first); after ranking it is
// renumbered 1..N in final order.
type Suggestion struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ActionID    string    `json:"actionId"`
	Icon        string    `json:"icon"`
	Priority    int       `json:"priority"`
	ContentType string    `json:"contentType"`
	Source      string    `json:"source"`
	DeepLink    *DeepLink `json:"deepLink,omitempty"`
}

// DeepLink describes the content a suggestion opens in the client app.
type DeepLink struct {
	Screen    string `json:"screen"`
	ContentID string `json:"contentId"`
	Params    string `json:"params,omitempty"`
}
