package workspace

import (
	"zhbatch/internal/convert"
)

// TextPair is the input and converted output of the text converter.
type TextPair struct {
	Input  string
	Output string
}

// Text returns the current text pair.
func (w *Workspace) Text() TextPair {
	return w.text
}

// SetInput replaces the input text.
func (w *Workspace) SetInput(input string) {
	w.textUndo.Push(w.text)
	w.text.Input = input
}

// ConvertText converts the input into the output. A provider failure leaves
// the error text as output and returns the error.
func (w *Workspace) ConvertText(dir convert.Direction, vocab *convert.Vocabulary, vocabEnabled bool) (string, error) {
	w.textUndo.Push(w.text)
	out, err := w.dispatcher.Apply(w.text.Input, dir, vocab, vocabEnabled)
	w.text.Output = out
	return out, err
}

// ClearText empties both sides.
func (w *Workspace) ClearText() {
	w.textUndo.Push(w.text)
	w.text = TextPair{}
}

// UndoText restores the text pair before the last change.
func (w *Workspace) UndoText() error {
	prev, err := w.textUndo.Pop()
	if err != nil {
		return err
	}
	w.text = prev
	return nil
}
