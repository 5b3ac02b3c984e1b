// Package watch reports changes to a set of files.
//
// Editors often save by writing a temporary file and renaming it over the
// original, which removes the original inode. The watcher therefore
// watches each file's directory and filters events by name, so a file keeps
// being observed across such saves.
//
// Bursts of events for the same file are coalesced: an Event is delivered
// once the file has been quiet for the debounce delay.
package watch
