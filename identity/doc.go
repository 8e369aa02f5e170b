// Package identity models the external identity provider as an opaque
// capability: a source of token-change events plus an asynchronous
// sign-out operation. The provider is optional: a Binding is either
// Inactive (no provider configured) or Active with a concrete Provider,
// so every consumption site handles both variants explicitly instead of
// checking for nil.
//
// The provider's internal protocol (token refresh, OAuth flows) is owned
// by the provider client library and is out of scope here.
package identity
