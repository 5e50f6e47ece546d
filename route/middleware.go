package route

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/usherkit/usher/hterror"
)

// BeforeFunc is a middleware callback that runs before the inner handler.
type BeforeFunc func(w http.ResponseWriter, r *http.Request) error

// NextFunc is a continuation-style middleware callback. Control resumes only
// when proceed is invoked: proceed(nil) continues to the inner handler, and
// proceed(err) fails the request with err. The callback must invoke proceed
// exactly once; a second invocation panics.
type NextFunc func(w http.ResponseWriter, r *http.Request, proceed func(error))

// Before returns a decorator that runs fn before the inner handler. An error
// returned by fn propagates unmodified and the inner handler never runs.
func Before(fn BeforeFunc) Decorator {
	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (any, error) {
			if err := fn(w, r); err != nil {
				return nil, err
			}
			return next(w, r)
		}
	}
}

// Next returns a decorator for continuation-style middleware. It waits until
// the callback invokes proceed, so a callback that never does blocks the
// request until the client goes away; use NextWithTimeout to bound the wait.
func Next(fn NextFunc) Decorator {
	return nextDecorator(fn, 0)
}

// NextWithTimeout is like Next, but fails the request with a 500 error if
// the callback hasn't invoked proceed within d.
func NextWithTimeout(fn NextFunc, d time.Duration) Decorator {
	return nextDecorator(fn, d)
}

func nextDecorator(fn NextFunc, timeout time.Duration) Decorator {
	return func(next Handler) Handler {
		return func(w http.ResponseWriter, r *http.Request) (any, error) {
			var (
				signal = make(chan error, 1)
				fired  atomic.Bool
			)
			proceed := func(err error) {
				if !fired.CompareAndSwap(false, true) {
					panic("middleware invoked proceed more than once")
				}
				signal <- err
			}

			fn(w, r, proceed)

			var expired <-chan time.Time
			if timeout > 0 {
				t := time.NewTimer(timeout)
				defer t.Stop()
				expired = t.C
			}

			select {
			case err := <-signal:
				if err != nil {
					return nil, err
				}
			case <-expired:
				return nil, hterror.ServerInternal("middleware never invoked proceed")
			case <-r.Context().Done():
				return nil, r.Context().Err()
			}

			return next(w, r)
		}
	}
}
