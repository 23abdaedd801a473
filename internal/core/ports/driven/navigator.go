package driven

import "context"

// Navigator follows a result target. A target is either an absolute URL
// or an in-app route such as "/foods/apple".
type Navigator interface {
	NavigateTo(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string) error

// NavigateTo calls f.
func (f NavigatorFunc) NavigateTo(ctx context.Context, target string) error {
	return f(ctx, target)
}
