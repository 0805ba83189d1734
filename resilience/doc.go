// Package resilience retries transient failures with capped exponential
// backoff. The speech platform answers 429 and 5xx under load; callers
// supply a RetryIf predicate and optionally honour a server-provided delay.
package resilience
