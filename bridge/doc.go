// Package bridge exposes container-constructed services to code that
// runs outside the container. A Registry holds one immutable snapshot of
// the declared services; Publish resolves every declared name from the
// container and swaps the whole snapshot in atomically, so readers never
// observe a partially populated registry. The first successful publish
// closes the readiness channel; later publishes replace the snapshot and
// re-notify listeners.
package bridge
