// Package resilience groups the guards around news API calls.
//
// Every call goes through the circuit breaker first; retry wraps the breaker
// and is disabled unless NEWS_API_RETRY_ATTEMPTS is above 1:
//
//	b := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	err := retry.WithBackoff(ctx, retry.NewsAPIConfig(attempts), func() error {
//	    body, err := circuitbreaker.Do(b, fetch)
//	    ...
//	})
package resilience
