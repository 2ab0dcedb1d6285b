// Package session houses concrete implementations of core.SessionStore.
// The interface itself (and the Session struct) live in the core package to
// centralize domain contracts; keeping only implementations here prevents
// higher level packages from depending on concrete storage.
//
// Additional backends (Redis, Postgres, etc.) can be added in sub-packages
// without changing any calling code.
package session
