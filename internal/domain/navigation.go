package domain

// Screen names handed to the navigation collaborator.
const (
	ScreenRecordDetail = "RecordDetail"
	ScreenLeave        = "Leave"
)

// NavigationDirective tells the external navigation collaborator where to
// go. The engine knows nothing about animation or stack depth.
type NavigationDirective struct {
	Screen string                 `json:"screen"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Navigator is the external navigation collaborator.
type Navigator interface {
	Navigate(screen string, params map[string]interface{})
}
