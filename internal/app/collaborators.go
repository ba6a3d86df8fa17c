package app

// Renderer is told that the state changed. It re-reads whatever it needs.
type Renderer interface {
	Refresh()
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func()

// Refresh implements Renderer.
func (f RendererFunc) Refresh() {
	if f != nil {
		f()
	}
}

type nopRenderer struct{}

func (nopRenderer) Refresh() {}

// Confirmer answers yes/no questions before destructive bulk operations.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

// Confirm implements Confirmer. A nil func declines.
func (f ConfirmFunc) Confirm(message string) bool {
	if f == nil {
		return false
	}
	return f(message)
}

// Always is a Confirmer that accepts everything, for callers that asked already.
var Always = ConfirmFunc(func(string) bool { return true })

// Prompter asks for a line of text. A nil result means the user cancelled.
type Prompter interface {
	PromptText(message, current string) (*string, error)
}

// PromptFunc adapts a function to Prompter.
type PromptFunc func(message, current string) (*string, error)

// PromptText implements Prompter.
func (f PromptFunc) PromptText(message, current string) (*string, error) {
	if f == nil {
		return nil, nil
	}
	return f(message, current)
}
