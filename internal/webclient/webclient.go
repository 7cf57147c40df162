package webclient

import "context"

// WebClient performs a single HTTP exchange.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}
