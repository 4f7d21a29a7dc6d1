// Package tracker implements the change tracker (spec.md §4.7): the
// initial sorted-list diff between a live project and its pack, a
// mutex-protected live change set fed by filesystem notifications, and
// the persistence/rebuild loop that writes the change set to an atomic
// sidecar file and triggers a full rebuild once the set has grown past a
// threshold and gone quiet.
package tracker
