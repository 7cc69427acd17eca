package model

import "unicode/utf8"

// Content length limits, in Unicode code points.
const (
	MinContentLength = 5
	MaxContentLength = 240
)

// Content is the text of a notification. Values can only be obtained from
// NewContent, so any Content in circulation satisfies the length invariant.
type Content struct {
	text string
}

// NewContent validates the notification text and returns it as a Content
// value. A ValidationError is returned if the text is shorter than
// MinContentLength or longer than MaxContentLength.
func NewContent(text string) (Content, error) {
	length := utf8.RuneCountInString(text)
	if length < MinContentLength || length > MaxContentLength {
		return Content{}, NewValidationError(
			"content length out of range: got %d code points, want %d to %d",
			length, MinContentLength, MaxContentLength)
	}
	return Content{text: text}, nil
}

// Text returns the notification text.
func (c Content) Text() string {
	return c.text
}
