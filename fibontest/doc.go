// Package fibontest provides mocks and helpers for testing extensions.
// Mocks count their calls, so tests can assert not only the returned values
// but also the expected interactions.
package fibontest
