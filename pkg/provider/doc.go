// Package provider defines the LLM provider interface and implementations
// for communicating with language model APIs (Anthropic, OpenAI, etc).
//
// Requests are sent exactly once; failures are returned to the caller
// without retry so that every eval row reflects a single API round-trip.
package provider
