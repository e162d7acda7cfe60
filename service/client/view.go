package client

import "errors"

// ConfirmFunc asks the operator to approve a destructive action.
type ConfirmFunc func(prompt string) bool

type viewConfig struct {
	confirm  ConfirmFunc
	pageSize int
}

// ViewOption configures a list view.
type ViewOption func(c *viewConfig)

// WithConfirm sets the destructive action confirmation prompt, the default approves everything.
func WithConfirm(confirm ConfirmFunc) ViewOption {
	return func(c *viewConfig) {
		c.confirm = confirm
	}
}

// WithPageSize sets the users page size the server pages by.
func WithPageSize(pageSize int) ViewOption {
	return func(c *viewConfig) {
		c.pageSize = pageSize
	}
}

func newViewConfig(opts ...ViewOption) viewConfig {
	c := viewConfig{
		confirm:  func(string) bool { return true },
		pageSize: 50,
	}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// inlineMessage returns the view message for err.
func inlineMessage(err error) string {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Inline()
	}

	return err.Error()
}
